package platform

import (
	"testing"
	"time"
)

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if got := o.app(); got != AppName {
		t.Errorf("app() = %q, want %q", got, AppName)
	}
	if got := o.expireMillis(); got != 5000 {
		t.Errorf("expireMillis() = %d, want 5000", got)
	}
	o = Options{AppName: "Paint", Timeout: 1500 * time.Millisecond}
	if got := o.app(); got != "Paint" {
		t.Errorf("app() = %q", got)
	}
	if got := o.expireMillis(); got != 1500 {
		t.Errorf("expireMillis() = %d, want 1500", got)
	}
}
