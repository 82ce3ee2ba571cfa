package notify

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Desktop shells out to the platform notification command: notify-send
// on Linux, osascript on macOS. Anywhere else it degrades to a no-op.
type Desktop struct{}

func (Desktop) Supported() bool {
	switch runtime.GOOS {
	case "linux", "darwin":
		return true
	default:
		return false
	}
}

func (d Desktop) RequestPermission(context.Context) error {
	// Desktop notification daemons grant per-binary permission out of
	// band; there is nothing to request here.
	if !d.Supported() {
		return ErrPermissionDenied
	}
	return nil
}

func (d Desktop) Show(ctx context.Context, n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.CommandContext(ctx, "notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.CommandContext(ctx, "osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
