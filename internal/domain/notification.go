package domain

import "time"

// Backend identifies the notification mechanism a request is routed to.
type Backend int

const (
	BackendDefault Backend = iota
	BackendMacOSCenter
	BackendLinuxNotify
	BackendWindowsToast
	BackendWindowsBalloon
	BackendGrowl
)

var backendNames = map[Backend]string{
	BackendDefault:        "default",
	BackendMacOSCenter:    "macos",
	BackendLinuxNotify:    "linux",
	BackendWindowsToast:   "windows-toast",
	BackendWindowsBalloon: "windows-balloon",
	BackendGrowl:          "growl",
}

func (b Backend) String() string {
	if name, ok := backendNames[b]; ok {
		return name
	}
	return "unknown"
}

// Backends lists every backend in tool registration order.
func Backends() []Backend {
	return []Backend{
		BackendDefault,
		BackendMacOSCenter,
		BackendLinuxNotify,
		BackendWindowsToast,
		BackendWindowsBalloon,
		BackendGrowl,
	}
}

// Request is a single notification request. Optional booleans and numbers are
// pointers so that "absent" and "zero" stay distinguishable for backends.
type Request struct {
	Title   string `json:"title"`
	Message string `json:"message"`

	Sound         *bool    `json:"sound,omitempty"`
	Wait          *bool    `json:"wait,omitempty"`
	Icon          string   `json:"icon,omitempty"`
	Timeout       *float64 `json:"timeout,omitempty"`
	Urgency       string   `json:"urgency,omitempty"`
	AppID         string   `json:"appID,omitempty"`
	Actions       []string `json:"actions,omitempty"`
	CloseLabel    string   `json:"closeLabel,omitempty"`
	DropdownLabel string   `json:"dropdownLabel,omitempty"`
	Reply         *bool    `json:"reply,omitempty"`
	Type          string   `json:"type,omitempty"`
	Install       string   `json:"install,omitempty"`
	Sender        string   `json:"sender,omitempty"`

	// linux
	Category string `json:"category,omitempty"`
	Hint     string `json:"hint,omitempty"`
	AppName  string `json:"app-name,omitempty"`

	// windows toast
	ShortcutPath string `json:"shortcutPath,omitempty"`

	// growl
	Name     string   `json:"name,omitempty"`
	Host     string   `json:"host,omitempty"`
	Port     *float64 `json:"port,omitempty"`
	Sticky   *bool    `json:"sticky,omitempty"`
	Label    string   `json:"label,omitempty"`
	Priority *float64 `json:"priority,omitempty"`
}

// Flag reports the value of an optional boolean, false when absent.
func Flag(v *bool) bool {
	return v != nil && *v
}

// TimeoutDuration converts the optional timeout hint into a duration.
// Zero means the backend should use its own default.
func (r Request) TimeoutDuration() time.Duration {
	if r.Timeout == nil || *r.Timeout <= 0 {
		return 0
	}
	return time.Duration(*r.Timeout * float64(time.Second))
}

// Delivery carries whatever a backend reported back after showing a
// notification. Both fields are optional.
type Delivery struct {
	Metadata map[string]any
	Response any
}

// Outcome is the resolved result of a single delivery attempt.
type Outcome struct {
	Failed   bool
	Error    string
	Metadata map[string]any
	Response any
}

func Success(d Delivery) Outcome {
	return Outcome{Metadata: d.Metadata, Response: d.Response}
}

func Failure(message string) Outcome {
	return Outcome{Failed: true, Error: message}
}
