package cmd

import (
	"fmt"
	"io"

	"github.com/theapemachine/a2a-foundry/pkg/a2a"
)

/*
printer writes the human readable scenario output. Diagnostics go through
the logger, not here.
*/
type printer struct {
	out   io.Writer
	style a2a.Style
}

func newPrinter(out io.Writer) *printer {
	return &printer{out: out, style: a2a.DefaultStyle}
}

func (p *printer) field(label, value string) {
	fmt.Fprintln(p.out, p.style.Label.Render(label+":")+" "+p.style.Value.Render(value))
}

func (p *printer) done(what string) {
	fmt.Fprintln(p.out, p.style.Muted.Render(what))
}

func (p *printer) fail(label string, err error) {
	fmt.Fprintln(p.out, p.style.Fail.Render(label+":")+" "+err.Error())
}

func (p *printer) message(role, text string) {
	fmt.Fprintln(p.out, p.style.Role.Render(role+":")+" "+text)
}

func (p *printer) block(text string) {
	fmt.Fprintln(p.out, text)
}
