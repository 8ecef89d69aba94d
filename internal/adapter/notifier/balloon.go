package notifier

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/strogmv/notify-mcp/internal/domain"
)

const defaultBalloonMillis = 5000

var balloonIcons = map[string]string{
	"info":  "Info",
	"warn":  "Warning",
	"error": "Error",
}

// WindowsBalloon shows a tray balloon tip through a PowerShell NotifyIcon.
type WindowsBalloon struct {
	runner CommandRunner
	goos   string
}

func NewWindowsBalloon(runner CommandRunner) *WindowsBalloon {
	if runner == nil {
		runner = ExecRunner()
	}
	return &WindowsBalloon{runner: runner, goos: runtime.GOOS}
}

func (w *WindowsBalloon) Notify(ctx context.Context, req domain.Request) (domain.Delivery, error) {
	if w.goos != "windows" {
		return domain.Delivery{}, unsupported(w.goos, "Windows balloon notifications")
	}
	script, err := balloonScript(req)
	if err != nil {
		return domain.Delivery{}, err
	}
	_, err = w.runner.Run(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", script)
	return domain.Delivery{}, err
}

func balloonScript(req domain.Request) (string, error) {
	tipIcon := "None"
	if req.Type != "" {
		v, ok := balloonIcons[req.Type]
		if !ok {
			return "", fmt.Errorf("unknown balloon type %q, expected info, warn or error", req.Type)
		}
		tipIcon = v
	}
	millis := defaultBalloonMillis
	if d := req.TimeoutDuration(); d > 0 {
		millis = int(d.Milliseconds())
	}

	trayIcon := "[System.Drawing.SystemIcons]::Information"
	if strings.HasSuffix(strings.ToLower(req.Icon), ".ico") {
		trayIcon = "New-Object System.Drawing.Icon(" + psQuote(req.Icon) + ")"
	}

	var b strings.Builder
	b.WriteString("Add-Type -AssemblyName System.Windows.Forms\n")
	b.WriteString("Add-Type -AssemblyName System.Drawing\n")
	b.WriteString("$n = New-Object System.Windows.Forms.NotifyIcon\n")
	b.WriteString("$n.Icon = " + trayIcon + "\n")
	b.WriteString("$n.BalloonTipIcon = [System.Windows.Forms.ToolTipIcon]::" + tipIcon + "\n")
	b.WriteString("$n.BalloonTipTitle = " + psQuote(req.Title) + "\n")
	b.WriteString("$n.BalloonTipText = " + psQuote(req.Message) + "\n")
	b.WriteString("$n.Visible = $true\n")
	b.WriteString("$n.ShowBalloonTip(" + strconv.Itoa(millis) + ")\n")
	b.WriteString("Start-Sleep -Milliseconds " + strconv.Itoa(millis) + "\n")
	b.WriteString("$n.Dispose()\n")
	return b.String(), nil
}

// PowerShell treats the typographic single quotes as quote characters too.
var psQuoter = strings.NewReplacer(
	"'", "''",
	"\u2018", "\u2018\u2018",
	"\u2019", "\u2019\u2019",
	"\u201a", "\u201a\u201a",
	"\u201b", "\u201b\u201b",
)

// psQuote renders s as a single-quoted PowerShell literal.
func psQuote(s string) string {
	return "'" + psQuoter.Replace(s) + "'"
}
