package errors

import (
	stderrors "errors"
	"io"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewError(t *testing.T) {
	Convey("Given a mix of errors and messages", t, func() {
		err := NewError(io.EOF, "while reading", 42)

		Convey("Then errors come before messages and unknown values are dropped", func() {
			So(err.Error(), ShouldEqual, "EOF\nwhile reading")
		})

		Convey("And the wrapped errors stay reachable", func() {
			So(stderrors.Is(err, io.EOF), ShouldBeTrue)
		})
	})
}

func TestErrMissingCredential(t *testing.T) {
	Convey("Given a missing asynchronous credential", t, func() {
		err := NewErrMissingCredential("asynchronous")

		Convey("Then the message names the variant", func() {
			So(err.Error(), ShouldEqual, "no asynchronous token provider were supplied")
		})

		Convey("And it can be matched through a wrapping error", func() {
			var target *ErrMissingCredential
			wrapped := NewError(err)
			So(stderrors.As(wrapped, &target), ShouldBeTrue)
			So(target.Variant, ShouldEqual, "asynchronous")
		})
	})
}

func TestErrMissingConfig(t *testing.T) {
	Convey("Given a missing setting bound to an environment variable", t, func() {
		err := NewErrMissingConfig("foundry.endpoint", "PROJECT_ENDPOINT")

		Convey("Then the message points at the variable", func() {
			So(err.Error(), ShouldEqual, "missing required setting foundry.endpoint (set PROJECT_ENDPOINT)")
		})
	})
}

func TestRpcError(t *testing.T) {
	Convey("Given a package level rpc error", t, func() {
		custom := ErrTaskNotFound.WithMessagef("task %s not found", "t-1")

		Convey("Then WithMessagef leaves the original untouched", func() {
			So(ErrTaskNotFound.Message, ShouldEqual, "Task not found")
			So(custom.Message, ShouldEqual, "task t-1 not found")
		})

		Convey("And errors.Is matches on the code", func() {
			So(stderrors.Is(custom, ErrTaskNotFound), ShouldBeTrue)
			So(stderrors.Is(custom, ErrInternal), ShouldBeFalse)
		})
	})
}
