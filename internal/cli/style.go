package cli

import (
	"io"

	"github.com/muesli/termenv"
)

// Styler colors CLI output when the writer is a terminal.
type Styler struct {
	out *termenv.Output
}

func NewStyler(w io.Writer) *Styler {
	return &Styler{out: termenv.NewOutput(w)}
}

func (s *Styler) Accept(text string) string {
	return s.out.String(text).Foreground(s.out.Color("#22c55e")).Bold().String()
}

func (s *Styler) Reject(text string) string {
	return s.out.String(text).Foreground(s.out.Color("#ef4444")).Bold().String()
}

func (s *Styler) Dim(text string) string {
	return s.out.String(text).Faint().String()
}
