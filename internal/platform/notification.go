package platform

import "fmt"

// Notification is an accessibility notification kind.
type Notification int

const (
	FocusedWindowChanged Notification = iota
	WindowMoved
	WindowResized
	WindowMiniaturized
	UIElementDestroyed
)

// Notifications lists every kind the border subscribes to, in
// registration order.
var Notifications = []Notification{
	FocusedWindowChanged,
	WindowMoved,
	WindowResized,
	WindowMiniaturized,
	UIElementDestroyed,
}

// String returns the accessibility constant name of the notification
func (n Notification) String() string {
	switch n {
	case FocusedWindowChanged:
		return "AXFocusedWindowChanged"
	case WindowMoved:
		return "AXWindowMoved"
	case WindowResized:
		return "AXWindowResized"
	case WindowMiniaturized:
		return "AXWindowMiniaturized"
	case UIElementDestroyed:
		return "AXUIElementDestroyed"
	default:
		return fmt.Sprintf("Notification(%d)", int(n))
	}
}

// AXError is a non-success accessibility status code.
type AXError int

const (
	AXErrorFailure                       AXError = -25200
	AXErrorIllegalArgument               AXError = -25201
	AXErrorInvalidUIElement              AXError = -25202
	AXErrorInvalidUIElementObserver      AXError = -25203
	AXErrorCannotComplete                AXError = -25204
	AXErrorAttributeUnsupported          AXError = -25205
	AXErrorNotificationUnsupported       AXError = -25207
	AXErrorNotificationAlreadyRegistered AXError = -25209
	AXErrorNotificationNotRegistered     AXError = -25210
	AXErrorAPIDisabled                   AXError = -25211
	AXErrorNoValue                       AXError = -25212
)

func (e AXError) Error() string {
	switch e {
	case AXErrorFailure:
		return "ax: failure"
	case AXErrorIllegalArgument:
		return "ax: illegal argument"
	case AXErrorInvalidUIElement:
		return "ax: invalid ui element"
	case AXErrorInvalidUIElementObserver:
		return "ax: invalid observer"
	case AXErrorCannotComplete:
		return "ax: cannot complete"
	case AXErrorAttributeUnsupported:
		return "ax: attribute unsupported"
	case AXErrorNotificationUnsupported:
		return "ax: notification unsupported"
	case AXErrorNotificationAlreadyRegistered:
		return "ax: notification already registered"
	case AXErrorNotificationNotRegistered:
		return "ax: notification not registered"
	case AXErrorAPIDisabled:
		return "ax: api disabled"
	case AXErrorNoValue:
		return "ax: no value"
	default:
		return fmt.Sprintf("ax: error %d", int(e))
	}
}

// AXStatus converts a raw status code into an error, nil on success.
func AXStatus(code int) error {
	if code == 0 {
		return nil
	}
	return AXError(code)
}
