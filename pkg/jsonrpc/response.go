package jsonrpc

import (
	"encoding/json"
	"fmt"

	"github.com/theapemachine/a2a-foundry/pkg/errors"
)

type Response struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      any              `json:"id,omitempty"`
	Result  json.RawMessage  `json:"result,omitempty"`
	Error   *errors.RpcError `json:"error,omitempty"`
}

/*
Decode returns the error carried by the response, or unmarshals the result
into v when there is none.
*/
func (res *Response) Decode(v any) error {
	if res.Error != nil {
		return res.Error
	}

	if len(res.Result) == 0 {
		return fmt.Errorf("jsonrpc: response %v has neither result nor error", res.ID)
	}

	if v == nil {
		return nil
	}

	return json.Unmarshal(res.Result, v)
}
