package platform

import "time"

// AppName identifies the program to notification daemons when Options.AppName
// is empty.
const AppName = "Colorbook"

// DefaultTimeout is how long a notification stays up when Options.Timeout is
// zero.
const DefaultTimeout = 5 * time.Second

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName names the sender. Windows uses it as the toast application id
	// and the freedesktop daemon groups notifications by it.
	AppName string
	// IconPath, when non-empty, is an image shown beside the text. A saved
	// drawing uses its own file.
	IconPath string
	// Timeout bounds how long the notification stays visible where the
	// platform honours it.
	Timeout time.Duration
	// Category is a freedesktop category hint such as "transfer.complete".
	Category string
}

func (o Options) app() string {
	if o.AppName == "" {
		return AppName
	}
	return o.AppName
}

// expireMillis returns the timeout in the unit the freedesktop API expects.
func (o Options) expireMillis() int32 {
	d := o.Timeout
	if d <= 0 {
		d = DefaultTimeout
	}
	return int32(d / time.Millisecond)
}
