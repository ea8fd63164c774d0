package a2a

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type MessageSendConfiguration struct {
	AcceptedOutputModes []string `json:"acceptedOutputModes,omitempty"`
	HistoryLength       *int     `json:"historyLength,omitempty"`
	Blocking            *bool    `json:"blocking,omitempty"`
}

type MessageSendParams struct {
	Message       Message                   `json:"message"`
	Configuration *MessageSendConfiguration `json:"configuration,omitempty"`
	Metadata      map[string]any            `json:"metadata,omitempty"`
}

/*
SendMessageRequest is a message/send call before it is put on the wire. The
ID becomes the JSON-RPC request ID.
*/
type SendMessageRequest struct {
	ID     string
	Params MessageSendParams
}

func NewSendMessageRequest(message Message) SendMessageRequest {
	return SendMessageRequest{
		ID:     uuid.NewString(),
		Params: MessageSendParams{Message: message},
	}
}

type SendMessageResponse struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      any               `json:"id,omitempty"`
	Result  SendMessageResult `json:"result"`
}

/*
Dump renders the response as indented JSON. Unset fields are left out.
*/
func (res *SendMessageResponse) Dump() (string, error) {
	buf, err := json.MarshalIndent(res, "", "  ")

	if err != nil {
		return "", err
	}

	return string(buf), nil
}

/*
Text flattens whatever text the agent answered with.
*/
func (res *SendMessageResponse) Text() string {
	return res.Result.Text()
}

/*
SendMessageResult holds either a Task or a Message, told apart on the wire
by their kind field.
*/
type SendMessageResult struct {
	Task    *Task
	Message *Message
}

func (result *SendMessageResult) Text() string {
	switch {
	case result.Task != nil:
		return result.Task.Text()
	case result.Message != nil:
		return result.Message.Text()
	}

	return ""
}

func (result SendMessageResult) MarshalJSON() ([]byte, error) {
	switch {
	case result.Task != nil:
		return json.Marshal(result.Task)
	case result.Message != nil:
		return json.Marshal(result.Message)
	}

	return []byte("null"), nil
}

func (result *SendMessageResult) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var probe struct {
		Kind   string          `json:"kind"`
		Status json.RawMessage `json:"status"`
	}

	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	kind := probe.Kind

	// Older agents leave out the kind, a status only exists on tasks.
	if kind == "" && len(probe.Status) > 0 {
		kind = KindTask
	} else if kind == "" {
		kind = KindMessage
	}

	switch kind {
	case KindTask:
		result.Task = &Task{}
		return json.Unmarshal(data, result.Task)
	case KindMessage:
		result.Message = &Message{}
		return json.Unmarshal(data, result.Message)
	}

	return fmt.Errorf("unknown result kind %q", probe.Kind)
}
