//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify shows the message through osascript. Notification Center attributes
// it to Script Editor, so the app name goes in the subtitle.
func Notify(title, body string, opts Options) error {
	script := fmt.Sprintf("display notification %q with title %q subtitle %q", body, title, opts.app())
	return exec.Command("osascript", "-e", script).Run()
}
