package a2a

/*
Part is a discriminated union over text, file and data parts. All optional
fields live in one struct, Kind says which of them is set.
*/
type Part struct {
	Kind PartKind `json:"kind"`

	Text string         `json:"text,omitempty"`
	File *FilePart      `json:"file,omitempty"`
	Data map[string]any `json:"data,omitempty"`

	Metadata map[string]any `json:"metadata,omitempty"`
}

// PartKind is the discriminator for a Part union.
type PartKind string

const (
	PartKindText PartKind = "text"
	PartKindFile PartKind = "file"
	PartKindData PartKind = "data"
)

/*
FilePart carries either inline base64 bytes or a URI.
*/
type FilePart struct {
	Name     string `json:"name,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Bytes    string `json:"bytes,omitempty"`
	URI      string `json:"uri,omitempty"`
}

func NewTextPart(text string) Part {
	return Part{
		Kind: PartKindText,
		Text: text,
	}
}
