package notifier

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strogmv/notify-mcp/internal/domain"
)

type fakeBus struct {
	sent []desktopNotification
	err  error
}

func (f *fakeBus) Notify(_ context.Context, n desktopNotification) (uint32, error) {
	f.sent = append(f.sent, n)
	return 7, f.err
}

func newTestLinux(bus notificationBus, runner CommandRunner) *LinuxNotify {
	return &LinuxNotify{bus: bus, runner: runner, goos: "linux"}
}

func TestParseHint(t *testing.T) {
	cases := []struct {
		hint string
		name string
		want any
	}{
		{"string:desktop-entry:firefox", "desktop-entry", "firefox"},
		{"int:x:42", "x", int32(42)},
		{"double:value:0.5", "value", 0.5},
		{"byte:urgency:2", "urgency", byte(2)},
		{"boolean:transient:true", "transient", true},
		{"STRING:image-path:/a:b.png", "image-path", "/a:b.png"},
	}
	for _, tc := range cases {
		t.Run(tc.hint, func(t *testing.T) {
			name, v, err := parseHint(tc.hint)
			require.NoError(t, err)
			assert.Equal(t, tc.name, name)
			assert.Equal(t, tc.want, v.Value())
		})
	}
}

func TestParseHint_Invalid(t *testing.T) {
	for _, hint := range []string{"nocolons", "int::1", "int:x:abc", "byte:x:300", "boolean:x:maybe", "float:x:1"} {
		_, _, err := parseHint(hint)
		assert.Error(t, err, hint)
	}
}

func TestDesktopNotificationFor(t *testing.T) {
	n, err := desktopNotificationFor(domain.Request{
		Title:    "t",
		Message:  "m",
		Icon:     "/i.png",
		Urgency:  "critical",
		Category: "im.received",
		Sound:    ptr(true),
		Hint:     "int:x:3",
		Timeout:  ptr(2.5),
	})
	require.NoError(t, err)

	assert.Equal(t, "notify-mcp", n.AppName)
	assert.Equal(t, "/i.png", n.AppIcon)
	assert.Equal(t, "t", n.Summary)
	assert.Equal(t, "m", n.Body)
	assert.Equal(t, int32(2500), n.ExpireTimeout)
	assert.Equal(t, dbus.MakeVariant(byte(2)), n.Hints["urgency"])
	assert.Equal(t, dbus.MakeVariant("im.received"), n.Hints["category"])
	assert.Equal(t, dbus.MakeVariant("message-new-instant"), n.Hints["sound-name"])
	assert.Equal(t, dbus.MakeVariant(int32(3)), n.Hints["x"])
}

func TestDesktopNotificationFor_SilentAndAppName(t *testing.T) {
	n, err := desktopNotificationFor(domain.Request{Title: "t", Message: "m", Sound: ptr(false), AppName: "ci"})
	require.NoError(t, err)
	assert.Equal(t, "ci", n.AppName)
	assert.Equal(t, dbus.MakeVariant(true), n.Hints["suppress-sound"])
	assert.Equal(t, int32(-1), n.ExpireTimeout)
}

func TestDesktopNotificationFor_UnknownUrgency(t *testing.T) {
	_, err := desktopNotificationFor(domain.Request{Urgency: "urgent"})
	assert.EqualError(t, err, `unknown urgency "urgent", expected low, normal or critical`)
}

func TestExpireTimeout(t *testing.T) {
	assert.Equal(t, int32(-1), expireTimeout(domain.Request{}))
	assert.Equal(t, int32(0), expireTimeout(domain.Request{Wait: ptr(true)}))
	assert.Equal(t, int32(3000), expireTimeout(domain.Request{Wait: ptr(true), Timeout: ptr(3.0)}))
	assert.Equal(t, int32(-1), expireTimeout(domain.Request{Timeout: ptr(-4.0)}))
	assert.Equal(t, int32(math.MaxInt32), expireTimeout(domain.Request{Timeout: ptr(1e7)}))
	assert.Equal(t, []string{"-t", "2147483647"}, notifySendArgs(domain.Request{Timeout: ptr(1e7)})[:2])
}

func TestNotifySendArgs(t *testing.T) {
	args := notifySendArgs(domain.Request{
		Title:    "t",
		Message:  "-m",
		Urgency:  "low",
		Timeout:  ptr(1.0),
		Icon:     "/i.png",
		Category: "email",
		Hint:     "string:a:b",
	})
	assert.Equal(t, []string{
		"-u", "low", "-t", "1000", "-i", "/i.png", "-c", "email", "-h", "string:a:b",
		"-a", "notify-mcp", "--", "t", "-m",
	}, args)
}

func TestLinuxNotify_SendsOverBus(t *testing.T) {
	bus := &fakeBus{}
	runner := &fakeRunner{}
	l := newTestLinux(bus, runner)

	d, err := l.Notify(context.Background(), domain.Request{Title: "t", Message: "m"})
	require.NoError(t, err)
	assert.Equal(t, domain.Delivery{}, d)
	require.Len(t, bus.sent, 1)
	assert.Empty(t, runner.calls)
}

func TestLinuxNotify_FallsBackToNotifySend(t *testing.T) {
	bus := &fakeBus{err: fmt.Errorf("%w: no DBUS_SESSION_BUS_ADDRESS", errBusUnavailable)}
	runner := &fakeRunner{}
	l := newTestLinux(bus, runner)

	_, err := l.Notify(context.Background(), domain.Request{Title: "t", Message: "m"})
	require.NoError(t, err)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "notify-send", runner.calls[0].Name)
}

func TestLinuxNotify_DaemonErrorIsReported(t *testing.T) {
	bus := &fakeBus{err: errors.New("notify over d-bus: org.freedesktop.DBus.Error.ServiceUnknown")}
	runner := &fakeRunner{}
	l := newTestLinux(bus, runner)

	_, err := l.Notify(context.Background(), domain.Request{Title: "t", Message: "m"})
	assert.EqualError(t, err, "notify over d-bus: org.freedesktop.DBus.Error.ServiceUnknown")
	assert.Empty(t, runner.calls)
}

func TestLinuxNotify_InvalidHintSkipsDelivery(t *testing.T) {
	bus := &fakeBus{}
	l := newTestLinux(bus, &fakeRunner{})

	_, err := l.Notify(context.Background(), domain.Request{Title: "t", Message: "m", Hint: "bogus"})
	assert.Error(t, err)
	assert.Empty(t, bus.sent)
}

func TestLinuxNotify_UnsupportedOnDarwin(t *testing.T) {
	l := newTestLinux(&fakeBus{}, &fakeRunner{})
	l.goos = "darwin"

	_, err := l.Notify(context.Background(), domain.Request{Title: "t", Message: "m"})
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
}
