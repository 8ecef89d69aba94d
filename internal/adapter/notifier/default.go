package notifier

import (
	"context"
	"os/exec"

	"github.com/gen2brain/beeep"

	"github.com/strogmv/notify-mcp/internal/domain"
	"github.com/strogmv/notify-mcp/internal/port"
)

// Options configures the platform backends built by NewDefault.
type Options struct {
	Runner           CommandRunner
	TerminalNotifier string
	LookPath         func(file string) (string, error)
}

// Beeep delivers through gen2brain/beeep, which picks the mechanism itself.
type Beeep struct{}

func (Beeep) Notify(_ context.Context, req domain.Request) (domain.Delivery, error) {
	if domain.Flag(req.Sound) {
		return domain.Delivery{}, beeep.Alert(req.Title, req.Message, req.Icon)
	}
	return domain.Delivery{}, beeep.Notify(req.Title, req.Message, req.Icon)
}

// NewDefault picks the native mechanism for goos, the way the default tool
// leaves the choice to the platform. beeep covers everything else, including
// macOS hosts without terminal-notifier.
func NewDefault(goos string, opts Options) port.Notifier {
	if opts.LookPath == nil {
		opts.LookPath = exec.LookPath
	}
	switch goos {
	case "darwin":
		center := NewMacOSCenter(opts.TerminalNotifier, opts.Runner)
		if _, err := opts.LookPath(center.binary); err == nil {
			center.goos = goos
			return center
		}
	case "windows":
		return NewWindowsToast()
	case "linux", "freebsd", "openbsd", "netbsd":
		l := NewLinuxNotify(opts.Runner)
		l.goos = goos
		return l
	}
	return Beeep{}
}
