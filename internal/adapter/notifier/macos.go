package notifier

import (
	"context"
	"encoding/json"
	"runtime"
	"strconv"
	"strings"

	"github.com/strogmv/notify-mcp/internal/domain"
)

const defaultMacSound = "Bottle"

// activation types reported by terminal-notifier -json, mapped onto the
// response values clients already know.
var macActivations = map[string]string{
	"contentsClicked": "activate",
	"actionClicked":   "activate",
	"replied":         "replied",
	"timeout":         "timeout",
	"closed":          "closed",
}

// MacOSCenter posts to the macOS Notification Center through terminal-notifier.
type MacOSCenter struct {
	binary string
	runner CommandRunner
	goos   string
}

func NewMacOSCenter(binary string, runner CommandRunner) *MacOSCenter {
	if binary == "" {
		binary = "terminal-notifier"
	}
	if runner == nil {
		runner = ExecRunner()
	}
	return &MacOSCenter{binary: binary, runner: runner, goos: runtime.GOOS}
}

func (m *MacOSCenter) Notify(ctx context.Context, req domain.Request) (domain.Delivery, error) {
	if m.goos != "darwin" {
		return domain.Delivery{}, unsupported(m.goos, "macOS Notification Center")
	}
	out, err := m.runner.Run(ctx, m.binary, macOSArgs(req)...)
	if err != nil {
		return domain.Delivery{}, err
	}
	return parseTerminalNotifierOutput(out), nil
}

func macOSArgs(req domain.Request) []string {
	args := []string{"-title", req.Title, "-message", req.Message, "-json"}
	if domain.Flag(req.Sound) {
		args = append(args, "-sound", defaultMacSound)
	}
	if req.Icon != "" {
		args = append(args, "-appIcon", req.Icon)
	}
	if req.Timeout != nil {
		args = append(args, "-timeout", strconv.FormatFloat(*req.Timeout, 'f', -1, 64))
	}
	if len(req.Actions) > 0 {
		args = append(args, "-actions", strings.Join(req.Actions, ","))
	}
	if req.CloseLabel != "" {
		args = append(args, "-closeLabel", req.CloseLabel)
	}
	if req.DropdownLabel != "" {
		args = append(args, "-dropdownLabel", req.DropdownLabel)
	}
	if domain.Flag(req.Reply) {
		args = append(args, "-reply", "Reply")
	}
	if req.Sender != "" {
		args = append(args, "-sender", req.Sender)
	}
	return args
}

// parseTerminalNotifierOutput turns the -json report into metadata and a
// response. Output that is not JSON is returned verbatim as the response.
func parseTerminalNotifierOutput(out []byte) domain.Delivery {
	text := strings.TrimSpace(string(out))
	if text == "" {
		return domain.Delivery{}
	}
	var meta map[string]any
	if err := json.Unmarshal([]byte(text), &meta); err != nil {
		return domain.Delivery{Response: text}
	}
	d := domain.Delivery{Metadata: meta}
	if kind, ok := meta["activationType"].(string); ok && kind != "" {
		if mapped, ok := macActivations[kind]; ok {
			d.Response = mapped
		} else {
			d.Response = kind
		}
	}
	return d
}
