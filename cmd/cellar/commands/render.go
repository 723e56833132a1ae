package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/cellar/internal/core/domain"
	"go.trai.ch/cellar/internal/ui/output"
	"go.trai.ch/cellar/internal/ui/style"
)

type printer struct {
	out *termenv.Output
}

func newPrinter(w io.Writer) *printer {
	return &printer{out: output.New(w)}
}

func (p *printer) paint(s, color string) string {
	return p.out.String(s).Foreground(p.out.Color(color)).String()
}

func (p *printer) ok(msg string) {
	_, _ = fmt.Fprintf(p.out, "%s %s\n", p.paint(style.Check, style.Green), msg)
}

func (p *printer) warn(msg string) {
	_, _ = fmt.Fprintf(p.out, "%s %s\n", p.paint(style.Warning, style.Yellow), msg)
}

func (p *printer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
}

func (p *printer) cacheNotice(usingCache bool) {
	if usingCache {
		p.warn("offline: showing cached data")
	}
}

func (p *printer) network(s domain.NetworkStatus) string {
	if s.IsOnline {
		label := "online"
		if s.EffectiveType != "" {
			label += " (" + s.EffectiveType + ")"
		}
		return p.paint(style.Dot, style.Green) + " " + label
	}
	if s.IsConnecting {
		return p.paint(style.Circle, style.Yellow) + " connecting"
	}
	return p.paint(style.Circle, style.Red) + " offline"
}

func (p *printer) operationState(op domain.PendingOperation) string {
	switch op.State() {
	case domain.StateTerminal:
		return p.paint(style.Cross, style.Red) + " " + string(domain.StateTerminal)
	case domain.StateRetryable:
		return p.paint(style.Warning, style.Yellow) + " " + string(domain.StateRetryable)
	default:
		return p.paint(style.Dot, style.Slate) + " " + string(domain.StatePending)
	}
}

func age(t time.Time, now time.Time) string {
	return now.Sub(t).Round(time.Second).String()
}
