// Package printer writes styled status lines for CLI commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/cuesync/internal/core/styles"
)

type ctxKey struct{}

// Printer writes user-facing messages. Errors and warnings go to err,
// everything else to out.
type Printer struct {
	out io.Writer
	err io.Writer
}

// New returns a Printer writing to out and err. Nil writers default to
// stdout and stderr.
func New(out, err io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}
	if err == nil {
		err = os.Stderr
	}
	return &Printer{out: out, err: err}
}

// NewContext returns a context carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one writing to stdout/stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stdout, os.Stderr)
}

func (p *Printer) line(w io.Writer, prefix string, style lipgloss.Style, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if prefix == "" {
		_, _ = fmt.Fprintln(w, msg)
		return
	}
	_, _ = fmt.Fprintln(w, style.Render(prefix)+" "+msg)
}

// Printf writes an unstyled line.
func (p *Printer) Printf(format string, args ...any) {
	p.line(p.out, "", lipgloss.Style{}, format, args...)
}

// Infof writes an informational line.
func (p *Printer) Infof(format string, args ...any) {
	p.line(p.out, "•", styles.NoticeInfoStyle, format, args...)
}

// Successf writes a success line.
func (p *Printer) Successf(format string, args ...any) {
	p.line(p.out, "✔", styles.NoticeInfoStyle, format, args...)
}

// Warnf writes a warning line to the error stream.
func (p *Printer) Warnf(format string, args ...any) {
	p.line(p.err, "!", styles.NoticeWarnStyle, format, args...)
}

// Errorf writes an error line to the error stream.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(p.err, "✘", styles.NoticeErrorStyle, format, args...)
}
