//go:build windows

package notifier

import (
	"context"
	"time"

	"github.com/go-toast/toast"

	"github.com/strogmv/notify-mcp/internal/domain"
)

// toasts with the short duration stay on screen for roughly seven seconds.
const toastShortDuration = 7 * time.Second

func pushToast(_ context.Context, req domain.Request) error {
	n := toast.Notification{
		AppID:   req.AppID,
		Title:   req.Title,
		Message: req.Message,
		Icon:    req.Icon,
		Audio:   toast.Silent,
	}
	if n.AppID == "" {
		n.AppID = defaultToastAppID
	}
	if domain.Flag(req.Sound) {
		n.Audio = toast.Default
	}
	if domain.Flag(req.Wait) || req.TimeoutDuration() > toastShortDuration {
		n.Duration = toast.Long
	}
	if req.Install != "" {
		n.ActivationType = "protocol"
		n.ActivationArguments = req.Install
	}
	for _, label := range req.Actions {
		n.Actions = append(n.Actions, toast.Action{Type: "protocol", Label: label, Arguments: label})
	}
	return n.Push()
}
