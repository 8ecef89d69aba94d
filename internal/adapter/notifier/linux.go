package notifier

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"strconv"
	"strings"

	"github.com/godbus/dbus/v5"

	"github.com/strogmv/notify-mcp/internal/domain"
	"github.com/strogmv/notify-mcp/internal/pkg/logger"
)

const (
	notificationsDest   = "org.freedesktop.Notifications"
	notificationsPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	notificationsNotify = "org.freedesktop.Notifications.Notify"

	defaultLinuxAppName = "notify-mcp"
	linuxSoundName      = "message-new-instant"
)

var errBusUnavailable = errors.New("session bus unavailable")

var urgencyLevels = map[string]byte{
	"low":      0,
	"normal":   1,
	"critical": 2,
}

// desktopNotification mirrors the arguments of the freedesktop Notify call.
type desktopNotification struct {
	AppName       string
	AppIcon       string
	Summary       string
	Body          string
	Hints         map[string]dbus.Variant
	ExpireTimeout int32
}

type notificationBus interface {
	Notify(ctx context.Context, n desktopNotification) (uint32, error)
}

type sessionBus struct{}

func (sessionBus) Notify(ctx context.Context, n desktopNotification) (uint32, error) {
	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errBusUnavailable, err)
	}
	defer conn.Close()

	obj := conn.Object(notificationsDest, notificationsPath)
	call := obj.CallWithContext(ctx, notificationsNotify, 0,
		n.AppName,
		uint32(0), // replaces_id
		n.AppIcon,
		n.Summary,
		n.Body,
		[]string{}, // actions
		n.Hints,
		n.ExpireTimeout,
	)
	if call.Err != nil {
		return 0, fmt.Errorf("notify over d-bus: %w", call.Err)
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("read notification id: %w", err)
	}
	return id, nil
}

// LinuxNotify talks to the desktop notification daemon over the session bus
// and falls back to notify-send when no bus is reachable.
type LinuxNotify struct {
	bus    notificationBus
	runner CommandRunner
	goos   string
}

func NewLinuxNotify(runner CommandRunner) *LinuxNotify {
	if runner == nil {
		runner = ExecRunner()
	}
	return &LinuxNotify{bus: sessionBus{}, runner: runner, goos: runtime.GOOS}
}

func (l *LinuxNotify) Notify(ctx context.Context, req domain.Request) (domain.Delivery, error) {
	if l.goos == "darwin" || l.goos == "windows" {
		return domain.Delivery{}, unsupported(l.goos, "freedesktop notifications")
	}
	n, err := desktopNotificationFor(req)
	if err != nil {
		return domain.Delivery{}, err
	}
	_, err = l.bus.Notify(ctx, n)
	if errors.Is(err, errBusUnavailable) {
		logger.From(ctx).Debug("falling back to notify-send", "error", err)
		_, err = l.runner.Run(ctx, "notify-send", notifySendArgs(req)...)
	}
	return domain.Delivery{}, err
}

func desktopNotificationFor(req domain.Request) (desktopNotification, error) {
	n := desktopNotification{
		AppName:       req.AppName,
		AppIcon:       req.Icon,
		Summary:       req.Title,
		Body:          req.Message,
		Hints:         map[string]dbus.Variant{},
		ExpireTimeout: expireTimeout(req),
	}
	if n.AppName == "" {
		n.AppName = defaultLinuxAppName
	}
	if req.Urgency != "" {
		level, ok := urgencyLevels[req.Urgency]
		if !ok {
			return n, fmt.Errorf("unknown urgency %q, expected low, normal or critical", req.Urgency)
		}
		n.Hints["urgency"] = dbus.MakeVariant(level)
	}
	if req.Category != "" {
		n.Hints["category"] = dbus.MakeVariant(req.Category)
	}
	if req.Sound != nil {
		if *req.Sound {
			n.Hints["sound-name"] = dbus.MakeVariant(linuxSoundName)
		} else {
			n.Hints["suppress-sound"] = dbus.MakeVariant(true)
		}
	}
	if req.Hint != "" {
		name, value, err := parseHint(req.Hint)
		if err != nil {
			return n, err
		}
		n.Hints[name] = value
	}
	return n, nil
}

// expireTimeout follows the freedesktop convention: -1 lets the server
// decide and 0 keeps the notification until dismissed.
func expireTimeout(req domain.Request) int32 {
	if req.Timeout != nil && *req.Timeout > 0 {
		return int32(math.Min(*req.Timeout*1000, math.MaxInt32))
	}
	if domain.Flag(req.Wait) {
		return 0
	}
	return -1
}

// parseHint accepts the notify-send TYPE:NAME:VALUE syntax.
func parseHint(hint string) (string, dbus.Variant, error) {
	parts := strings.SplitN(hint, ":", 3)
	if len(parts) != 3 || parts[1] == "" {
		return "", dbus.Variant{}, fmt.Errorf("invalid hint %q, expected TYPE:NAME:VALUE", hint)
	}
	kind, name, raw := strings.ToLower(parts[0]), parts[1], parts[2]
	switch kind {
	case "string":
		return name, dbus.MakeVariant(raw), nil
	case "int":
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return "", dbus.Variant{}, fmt.Errorf("invalid int hint %q: %w", hint, err)
		}
		return name, dbus.MakeVariant(int32(v)), nil
	case "double":
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", dbus.Variant{}, fmt.Errorf("invalid double hint %q: %w", hint, err)
		}
		return name, dbus.MakeVariant(v), nil
	case "byte":
		v, err := strconv.ParseUint(raw, 10, 8)
		if err != nil {
			return "", dbus.Variant{}, fmt.Errorf("invalid byte hint %q: %w", hint, err)
		}
		return name, dbus.MakeVariant(byte(v)), nil
	case "boolean":
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return "", dbus.Variant{}, fmt.Errorf("invalid boolean hint %q: %w", hint, err)
		}
		return name, dbus.MakeVariant(v), nil
	default:
		return "", dbus.Variant{}, fmt.Errorf("invalid hint type %q, expected int, double, string, byte or boolean", parts[0])
	}
}

func notifySendArgs(req domain.Request) []string {
	var args []string
	if req.Urgency != "" {
		args = append(args, "-u", req.Urgency)
	}
	if t := expireTimeout(req); t >= 0 {
		args = append(args, "-t", strconv.Itoa(int(t)))
	}
	if req.Icon != "" {
		args = append(args, "-i", req.Icon)
	}
	if req.Category != "" {
		args = append(args, "-c", req.Category)
	}
	if req.Hint != "" {
		args = append(args, "-h", req.Hint)
	}
	appName := req.AppName
	if appName == "" {
		appName = defaultLinuxAppName
	}
	args = append(args, "-a", appName, "--", req.Title, req.Message)
	return args
}
