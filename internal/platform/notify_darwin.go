//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Supported reports whether Notify reaches the user on this platform.
const Supported = true

// Notify posts to Notification Center through osascript. The system picks
// the icon and how long the banner stays up, so opts is not used.
func Notify(title, body string, _ Options) error {
	script := fmt.Sprintf("display notification %q with title %q subtitle %q", body, title, AppName)
	if out, err := exec.Command("osascript", "-e", script).CombinedOutput(); err != nil {
		return fmt.Errorf("osascript: %w: %s", err, out)
	}
	return nil
}
