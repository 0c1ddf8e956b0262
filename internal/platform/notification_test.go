package platform

import (
	"errors"
	"testing"
)

func TestAXStatus(t *testing.T) {
	if err := AXStatus(0); err != nil {
		t.Fatalf("AXStatus(0) = %v, want nil", err)
	}

	err := AXStatus(-25212)
	if err == nil {
		t.Fatal("AXStatus(-25212) = nil, want error")
	}

	var axErr AXError
	if !errors.As(err, &axErr) {
		t.Fatalf("error %T is not an AXError", err)
	}
	if axErr != AXErrorNoValue {
		t.Errorf("code = %d, want %d", axErr, AXErrorNoValue)
	}
}

func TestAXErrorMessages(t *testing.T) {
	tests := []struct {
		err  AXError
		want string
	}{
		{AXErrorNoValue, "ax: no value"},
		{AXErrorInvalidUIElement, "ax: invalid ui element"},
		{AXError(-1), "ax: error -1"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("AXError(%d).Error() = %q, want %q", int(tt.err), got, tt.want)
		}
	}
}

func TestNotificationNames(t *testing.T) {
	if len(Notifications) != 5 {
		t.Fatalf("expected 5 subscribed notification kinds, got %d", len(Notifications))
	}

	seen := make(map[string]bool)
	for _, n := range Notifications {
		name := n.String()
		if seen[name] {
			t.Errorf("duplicate notification name %s", name)
		}
		seen[name] = true
	}

	if got := Notification(42).String(); got != "Notification(42)" {
		t.Errorf("unknown notification String() = %q", got)
	}
}

func TestNewProviderUnsupported(t *testing.T) {
	saved := NewProviderFunc
	NewProviderFunc = nil
	defer func() { NewProviderFunc = saved }()

	if _, err := NewProvider(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("NewProvider() error = %v, want ErrUnsupported", err)
	}
}
