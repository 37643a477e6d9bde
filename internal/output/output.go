// Package output owns the engine's terminal surface: prompt-prefixed
// message lines and the bordered grids SELECT renders. Result messages are
// single lines prefixed with the session prompt; table blocks print bare.
package output

import (
	"fmt"
	"io"
)

// Printer writes the session's output.
type Printer struct {
	w      io.Writer
	prompt string
}

// New returns a Printer writing to w with the given prompt string (without
// the trailing space; Msg and Prompt add it).
func New(w io.Writer, prompt string) *Printer {
	return &Printer{w: w, prompt: prompt}
}

// Msg prints one prompt-prefixed message line.
func (p *Printer) Msg(s string) {
	fmt.Fprintf(p.w, "%s %s\n", p.prompt, s)
}

// Prompt prints the input prompt without a newline.
func (p *Printer) Prompt() {
	fmt.Fprintf(p.w, "%s ", p.prompt)
}

// Line prints one bare output line.
func (p *Printer) Line(s string) {
	fmt.Fprintln(p.w, s)
}

// Lines prints several bare output lines.
func (p *Printer) Lines(lines []string) {
	for _, l := range lines {
		p.Line(l)
	}
}
