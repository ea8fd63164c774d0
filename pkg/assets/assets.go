/*
Package assets resolves the reference files that get uploaded to the agent
service. A location is either a local path or an s3://bucket/key URI.
*/
package assets

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"strings"
)

const DefaultPath = "sample_data/product_info_1.md"

/*
The default asset ships inside the binary, so it is found whatever the
working directory is. A file at DefaultPath on disk still takes precedence.
*/
//go:embed sample_data/product_info_1.md
var bundled embed.FS

/*
Asset is an opened reference file. Name is the base name the service will
see.
*/
type Asset struct {
	io.ReadCloser
	Name string
}

/*
Location is a parsed asset location.
*/
type Location struct {
	Path   string
	Bucket string
	Key    string
}

func (location Location) Remote() bool {
	return location.Bucket != ""
}

func ParseLocation(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)

	if raw == "" {
		return Location{}, fmt.Errorf("empty asset location")
	}

	if !strings.HasPrefix(raw, "s3://") {
		return Location{Path: raw}, nil
	}

	uri, err := url.Parse(raw)

	if err != nil {
		return Location{}, fmt.Errorf("asset location %s: %w", raw, err)
	}

	key := strings.TrimPrefix(uri.Path, "/")

	if uri.Host == "" || key == "" {
		return Location{}, fmt.Errorf("asset location %s: want s3://bucket/key", raw)
	}

	return Location{Bucket: uri.Host, Key: key}, nil
}

/*
Loader opens assets. The object store connection is only made for remote
locations.
*/
type Loader struct {
	s3   S3Config
	conn *Conn
}

func NewLoader(s3 S3Config) *Loader {
	return &Loader{s3: s3}
}

func (loader *Loader) Open(ctx context.Context, raw string) (*Asset, error) {
	location, err := ParseLocation(raw)

	if err != nil {
		return nil, err
	}

	if !location.Remote() {
		file, err := os.Open(location.Path)

		if errors.Is(err, fs.ErrNotExist) && location.Path == DefaultPath {
			return openBundled()
		}

		if err != nil {
			return nil, fmt.Errorf("open asset: %w", err)
		}

		return &Asset{ReadCloser: file, Name: path.Base(strings.ReplaceAll(location.Path, "\\", "/"))}, nil
	}

	if loader.conn == nil {
		if loader.conn, err = NewConn(loader.s3); err != nil {
			return nil, err
		}
	}

	body, err := loader.conn.Get(ctx, location.Bucket, location.Key)

	if err != nil {
		return nil, fmt.Errorf("fetch asset %s: %w", raw, err)
	}

	return &Asset{ReadCloser: body, Name: path.Base(location.Key)}, nil
}

func openBundled() (*Asset, error) {
	file, err := bundled.Open(DefaultPath)

	if err != nil {
		return nil, fmt.Errorf("open bundled asset: %w", err)
	}

	return &Asset{ReadCloser: file, Name: path.Base(DefaultPath)}, nil
}
