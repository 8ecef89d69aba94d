package notifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strogmv/notify-mcp/internal/domain"
)

func TestBalloonScript(t *testing.T) {
	script, err := balloonScript(domain.Request{
		Title:   "It's done",
		Message: "build ok",
		Type:    "warn",
		Timeout: ptr(2.0),
		Icon:    `C:\icons\app.ICO`,
	})
	require.NoError(t, err)

	assert.Contains(t, script, "$n.BalloonTipIcon = [System.Windows.Forms.ToolTipIcon]::Warning")
	assert.Contains(t, script, "$n.BalloonTipTitle = 'It''s done'")
	assert.Contains(t, script, "$n.BalloonTipText = 'build ok'")
	assert.Contains(t, script, `$n.Icon = New-Object System.Drawing.Icon('C:\icons\app.ICO')`)
	assert.Contains(t, script, "$n.ShowBalloonTip(2000)")
}

func TestBalloonScript_Defaults(t *testing.T) {
	script, err := balloonScript(domain.Request{Title: "t", Message: "m", Icon: "/x.png"})
	require.NoError(t, err)
	assert.Contains(t, script, "::None")
	assert.Contains(t, script, "$n.Icon = [System.Drawing.SystemIcons]::Information")
	assert.Contains(t, script, "$n.ShowBalloonTip(5000)")
}

func TestBalloonScript_UnknownType(t *testing.T) {
	_, err := balloonScript(domain.Request{Type: "fatal"})
	assert.EqualError(t, err, `unknown balloon type "fatal", expected info, warn or error`)
}

func TestPSQuote(t *testing.T) {
	assert.Equal(t, "''", psQuote(""))
	assert.Equal(t, "'a''b'", psQuote("a'b"))
	assert.Equal(t, "'\u2019\u2019'", psQuote("\u2019"))
	assert.Equal(t, "'$env:PATH'", psQuote("$env:PATH"))
}

func TestWindowsBalloon_Notify(t *testing.T) {
	runner := &fakeRunner{}
	w := NewWindowsBalloon(runner)
	w.goos = "windows"

	_, err := w.Notify(context.Background(), domain.Request{Title: "t", Message: "m", Type: "info"})
	require.NoError(t, err)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "powershell", runner.calls[0].Name)
	assert.Equal(t, []string{"-NoProfile", "-NonInteractive", "-Command"}, runner.calls[0].Args[:3])
}

func TestWindowsBalloon_UnsupportedElsewhere(t *testing.T) {
	runner := &fakeRunner{}
	w := NewWindowsBalloon(runner)
	w.goos = "linux"

	_, err := w.Notify(context.Background(), domain.Request{Title: "t", Message: "m"})
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
	assert.Empty(t, runner.calls)
}
