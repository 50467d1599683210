package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Status markers
const (
	markHeader  = "🔍"
	markSuccess = "✅"
	markWarning = "⚠️ "
	markFailure = "❌"
)

type styleKind int

const (
	styleHeader styleKind = iota
	styleSuccess
	styleWarning
	styleFailure
	styleItem
)

// palette holds the styles bound to one writer's renderer
type palette map[styleKind]lipgloss.Style

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	return palette{
		styleHeader:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		styleSuccess: r.NewStyle().Foreground(lipgloss.Color("2")),
		styleWarning: r.NewStyle().Foreground(lipgloss.Color("3")),
		styleFailure: r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		styleItem:    r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// Printer writes status lines. Success lines and the summary go to out,
// warnings and failures to err. Each writer is styled independently; a nil
// palette prints plain text.
type Printer struct {
	out       io.Writer
	err       io.Writer
	outColors palette
	errColors palette
}

// NewPrinter creates a printer that colors each writer only when that writer
// is a terminal and NO_COLOR is unset
func NewPrinter(out, err io.Writer) *Printer {
	p := &Printer{out: out, err: err}
	if ColorEnabled(out) {
		p.outColors = newPalette(out)
	}
	if ColorEnabled(err) {
		p.errColors = newPalette(err)
	}
	return p
}

// NewPrinterWithWriters creates a printer with custom writers (for testing)
func NewPrinterWithWriters(out, err io.Writer, useColor bool) *Printer {
	p := &Printer{out: out, err: err}
	if useColor {
		p.outColors = newPalette(out)
		p.errColors = newPalette(err)
	}
	return p
}

func line(w io.Writer, colors palette, kind styleKind, text string) {
	if colors != nil {
		text = colors[kind].Render(text)
	}
	_, _ = fmt.Fprintln(w, text)
}

// Header prints the opening line followed by a blank line
func (p *Printer) Header(format string, args ...interface{}) {
	line(p.out, p.outColors, styleHeader, markHeader+" "+fmt.Sprintf(format, args...))
	_, _ = fmt.Fprintln(p.out)
}

// Success prints a passed check
func (p *Printer) Success(format string, args ...interface{}) {
	line(p.out, p.outColors, styleSuccess, markSuccess+" "+fmt.Sprintf(format, args...))
}

// Warning prints a non-fatal finding
func (p *Printer) Warning(format string, args ...interface{}) {
	line(p.err, p.errColors, styleWarning, markWarning+" "+fmt.Sprintf(format, args...))
}

// Failure prints a fatal finding
func (p *Printer) Failure(format string, args ...interface{}) {
	line(p.err, p.errColors, styleFailure, markFailure+" "+fmt.Sprintf(format, args...))
}

// Item prints an indented list entry under a failure
func (p *Printer) Item(format string, args ...interface{}) {
	line(p.err, p.errColors, styleItem, "   - "+fmt.Sprintf(format, args...))
}

// Summary prints a blank line followed by the closing success line
func (p *Printer) Summary(format string, args ...interface{}) {
	_, _ = fmt.Fprintln(p.out)
	line(p.out, p.outColors, styleSuccess, markSuccess+" "+fmt.Sprintf(format, args...))
}

// ColorEnabled reports whether w is a terminal and NO_COLOR is unset
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
