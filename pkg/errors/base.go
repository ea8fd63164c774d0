package errors

import (
	"fmt"
	"strings"
)

/*
Error aggregates wrapped errors and free-form messages into a single error
value. Cleanup and decoding failures that collect several causes return
one, the causes stay reachable through errors.Is and errors.As.
*/
type Error struct {
	Errs []error
	Msgs []any
}

func NewError(errs ...any) error {
	err := &Error{}

	for _, msg := range errs {
		switch v := msg.(type) {
		case error:
			err.Errs = append(err.Errs, v)
		case string:
			err.Msgs = append(err.Msgs, v)
		}
	}

	return err
}

func (err *Error) Error() string {
	builder := &strings.Builder{}

	for _, err := range err.Errs {
		builder.WriteString(err.Error())
		builder.WriteString("\n")
	}

	for _, msg := range err.Msgs {
		builder.WriteString(fmt.Sprintf("%v\n", msg))
	}

	return strings.TrimSuffix(builder.String(), "\n")
}

/*
Unwrap exposes the aggregated errors to errors.Is and errors.As.
*/
func (err *Error) Unwrap() []error {
	return err.Errs
}
