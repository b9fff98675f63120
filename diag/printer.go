package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes glyph-prefixed status lines. All diagnostic output goes
// through it so tests can capture the stream.
type Printer struct {
	out io.Writer
}

// NewPrinter returns a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Header prints a section header.
func (p *Printer) Header(format string, a ...interface{}) {
	color.New(color.FgCyan, color.Bold).Fprintf(p.out, "🔍 "+format+"\n", a...)
}

// OK prints a success status line.
func (p *Printer) OK(format string, a ...interface{}) {
	color.New(color.FgGreen).Fprintf(p.out, "✅ "+format+"\n", a...)
}

// Fail prints a failure status line.
func (p *Printer) Fail(format string, a ...interface{}) {
	color.New(color.FgRed).Fprintf(p.out, "❌ "+format+"\n", a...)
}

// Warn prints a non-fatal warning line.
func (p *Printer) Warn(format string, a ...interface{}) {
	color.New(color.FgYellow).Fprintf(p.out, "⚠️  "+format+"\n", a...)
}

// Line prints an unprefixed detail line.
func (p *Printer) Line(format string, a ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", a...)
}

// Blank prints an empty line.
func (p *Printer) Blank() {
	fmt.Fprintln(p.out)
}

// Hints prints the remediation block for a failure kind.
func (p *Printer) Hints(kind Kind) {
	p.Blank()
	color.New(color.FgYellow, color.Bold).Fprintln(p.out, "💡 Troubleshooting:")
	for _, hint := range kind.Hints() {
		color.New(color.FgYellow).Fprintf(p.out, "   - %s\n", hint)
	}
}
