package jsonrpc

import (
	"encoding/json"

	"github.com/google/uuid"
)

const Version = "2.0"

/*
Request is a JSON-RPC 2.0 request envelope. Params stay raw so the envelope
can be built once and sent by any transport.
*/
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

/*
NewRequest builds a request with a fresh random ID and the params already
marshaled.
*/
func NewRequest(method string, params any) (Request, error) {
	req := Request{
		JSONRPC: Version,
		ID:      uuid.NewString(),
		Method:  method,
	}

	if params == nil {
		return req, nil
	}

	buf, err := json.Marshal(params)

	if err != nil {
		return Request{}, err
	}

	req.Params = buf
	return req, nil
}
