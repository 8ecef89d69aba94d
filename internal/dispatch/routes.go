package dispatch

import "github.com/strogmv/notify-mcp/internal/domain"

const (
	DefaultTitle = "Notification"
	DefaultAppID = "MCP Notify"
)

// Route describes how one backend's outcome is reported.
type Route struct {
	Backend domain.Backend
	Success string
	// Details appends backend metadata and response segments on success.
	Details bool
	// Defaults fills empty title, icon and appID before delivery.
	Defaults bool
}

var routes = map[domain.Backend]Route{
	domain.BackendDefault: {
		Backend:  domain.BackendDefault,
		Success:  "Notification shown successfully",
		Details:  true,
		Defaults: true,
	},
	domain.BackendMacOSCenter: {
		Backend: domain.BackendMacOSCenter,
		Success: "macOS notification shown successfully",
		Details: true,
	},
	domain.BackendLinuxNotify: {
		Backend: domain.BackendLinuxNotify,
		Success: "Linux notification shown successfully",
	},
	domain.BackendWindowsToast: {
		Backend: domain.BackendWindowsToast,
		Success: "Windows Toast notification shown successfully",
	},
	domain.BackendWindowsBalloon: {
		Backend: domain.BackendWindowsBalloon,
		Success: "Windows Balloon notification shown successfully",
	},
	domain.BackendGrowl: {
		Backend: domain.BackendGrowl,
		Success: "Growl notification shown successfully",
	},
}

// RouteFor returns the reporting rules for b.
func RouteFor(b domain.Backend) (Route, bool) {
	r, ok := routes[b]
	return r, ok
}

// ApplyDefaults fills the fields the default tool never leaves empty.
func ApplyDefaults(req domain.Request, iconPath string) domain.Request {
	if req.Icon == "" {
		req.Icon = iconPath
	}
	if req.Title == "" {
		req.Title = DefaultTitle
	}
	if req.AppID == "" {
		req.AppID = DefaultAppID
	}
	return req
}
