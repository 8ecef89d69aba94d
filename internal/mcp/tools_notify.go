package mcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/strogmv/notify-mcp/internal/dispatch"
	"github.com/strogmv/notify-mcp/internal/domain"
	"github.com/strogmv/notify-mcp/internal/pkg/logger"
)

const (
	ToolShowNotification        = "show-notification"
	ToolShowNotificationMacOS   = "show-notification-macos"
	ToolShowNotificationLinux   = "show-notification-linux"
	ToolShowNotificationToast   = "show-notification-windows-toast"
	ToolShowNotificationBalloon = "show-notification-windows-balloon"
	ToolShowNotificationGrowl   = "show-notification-growl"
)

type notificationTool struct {
	Name        string
	Description string
	Backend     domain.Backend
	Extra       []mcp.ToolOption
}

var notificationTools = []notificationTool{
	{
		Name:        ToolShowNotification,
		Description: "Show a system notification using the default notifier for the current platform",
		Backend:     domain.BackendDefault,
	},
	{
		Name:        ToolShowNotificationMacOS,
		Description: "Show a notification using macOS Notification Center",
		Backend:     domain.BackendMacOSCenter,
	},
	{
		Name:        ToolShowNotificationLinux,
		Description: "Show a notification using Linux notify-send",
		Backend:     domain.BackendLinuxNotify,
		Extra: []mcp.ToolOption{
			mcp.WithString("category", mcp.Description("Category of notification")),
			mcp.WithString("hint", mcp.Description("Hint for notification display")),
			mcp.WithString("app-name", mcp.Description("Application name")),
		},
	},
	{
		Name:        ToolShowNotificationToast,
		Description: "Show a notification using Windows Toast notifications (Windows 8+)",
		Backend:     domain.BackendWindowsToast,
		Extra: []mcp.ToolOption{
			mcp.WithString("shortcutPath", mcp.Description("Path to shortcut file for notification")),
			mcp.WithString("appID", mcp.Description("Application identifier")),
			mcp.WithString("install", mcp.Description("Path to installer when notification is clicked")),
		},
	},
	{
		Name:        ToolShowNotificationBalloon,
		Description: "Show a notification using Windows Balloon notifications (Windows 7 and earlier)",
		Backend:     domain.BackendWindowsBalloon,
		Extra: []mcp.ToolOption{
			mcp.WithString("type", mcp.Enum("info", "warn", "error"), mcp.Description("Notification type")),
		},
	},
	{
		Name:        ToolShowNotificationGrowl,
		Description: "Show a notification using Growl",
		Backend:     domain.BackendGrowl,
		Extra: []mcp.ToolOption{
			mcp.WithString("name", mcp.Description("Application name for Growl")),
			mcp.WithString("host", mcp.Description("Growl server host")),
			mcp.WithNumber("port", mcp.Description("Growl server port")),
			mcp.WithBoolean("sticky", mcp.Description("Keep notification visible")),
			mcp.WithString("label", mcp.Description("Label for notification")),
			mcp.WithNumber("priority", mcp.Description("Notification priority (-2 to 2)")),
		},
	},
}

func commonNotificationOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("title", mcp.Required(), mcp.Description("Title of the notification")),
		mcp.WithString("message", mcp.Required(), mcp.Description("Message content of the notification")),
		mcp.WithBoolean("sound", mcp.Description("Play a sound with the notification (default: false)")),
		mcp.WithBoolean("wait", mcp.Description("Wait for user action before removing notification (default: false)")),
		mcp.WithString("icon", mcp.Description("Path to icon file (.ico, .png, .jpg, or platform specific)")),
		mcp.WithNumber("timeout", mcp.Description("Time in seconds before notification expires (Linux/Windows)")),
		mcp.WithString("urgency", mcp.Enum("low", "normal", "critical"), mcp.Description("Notification urgency level (Linux only)")),
		mcp.WithString("appID", mcp.Description("Application identifier (Windows only)")),
		mcp.WithArray("actions", mcp.Items(map[string]any{"type": "string"}), mcp.Description("Action buttons to add to notification (macOS only)")),
		mcp.WithString("closeLabel", mcp.Description("Label for closing notification (macOS only)")),
		mcp.WithString("dropdownLabel", mcp.Description("Label for dropdown (macOS only)")),
		mcp.WithBoolean("reply", mcp.Description("Enable reply functionality (macOS only)")),
		mcp.WithString("type", mcp.Enum("info", "warn", "error"), mcp.Description("Notification type (Windows Balloon only)")),
		mcp.WithString("install", mcp.Description("Path to installer when notification is clicked (Windows Toaster only)")),
		mcp.WithString("sender", mcp.Description("Sender of notification (Growl only)")),
	}
}

func registerNotificationTools(addTool toolAdder, d *dispatch.Dispatcher) {
	for _, nt := range notificationTools {
		opts := []mcp.ToolOption{mcp.WithDescription(nt.Description)}
		opts = append(opts, commonNotificationOptions()...)
		opts = append(opts, nt.Extra...)

		backend := nt.Backend
		addTool(nt.Name, mcp.NewTool(nt.Name, opts...), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			ctx = logger.WithRequestID(ctx, uuid.NewString())
			req := requestFromArguments(request.GetArguments())
			return textResult(d.Dispatch(ctx, backend, req)), nil
		})
	}
}
