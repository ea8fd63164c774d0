package errors

import (
	"fmt"
)

/*
RpcError represents a JSON-RPC error response.
*/
type RpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

/*
Error implements the error interface for RpcError.
*/
func (e *RpcError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

/*
Is matches two RpcErrors on their code, so a decoded error compares equal
to the package level value with the same code.
*/
func (e *RpcError) Is(target error) bool {
	t, ok := target.(*RpcError)

	if !ok {
		return false
	}

	return e.Code == t.Code
}

// Codes from the JSON-RPC reserved range and the A2A range this client
// tells apart.
var (
	ErrInternal = &RpcError{Code: -32603, Message: "Internal error"}

	ErrTaskNotFound      = &RpcError{Code: -32001, Message: "Task not found"}
	ErrTaskNotCancelable = &RpcError{Code: -32002, Message: "Task cannot be canceled"}
)

// WithMessagef creates a *copy* of an RpcError with a formatted message.
// It does not modify the original error variable.
func (e *RpcError) WithMessagef(format string, args ...any) *RpcError {
	newErr := *e
	newErr.Message = fmt.Sprintf(format, args...)
	return &newErr
}
