// Package message interprets the token lists sent to the daemon's command
// socket.
package message

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yourusername/borders/internal/logging"
	"github.com/yourusername/borders/internal/models"
)

// FailureMarker prefixes every failure reply.
const FailureMarker = "\a"

// Domains and commands
const (
	DomainConfig = "config"
	DomainQuery  = "query"

	CommandDebugOutput = "debug_output"
	CommandState       = "state"

	ValueOn  = "on"
	ValueOff = "off"
)

// Reply is the textual answer to one message.
type Reply struct {
	Output string
	Failed bool
}

// String returns the reply as written to the socket.
func (r Reply) String() string {
	if r.Failed {
		return FailureMarker + r.Output
	}
	return r.Output
}

// IsFailure reports whether raw is a marked failure reply.
func IsFailure(raw string) bool {
	return strings.HasPrefix(raw, FailureMarker)
}

// TrimFailure strips the failure marker and trailing newline.
func TrimFailure(raw string) string {
	return strings.TrimSuffix(strings.TrimPrefix(raw, FailureMarker), "\n")
}

// StatusSource provides the daemon snapshot for "query state".
type StatusSource interface {
	Status() models.Status
}

// Handler dispatches messages by domain. It must run on the run loop.
type Handler struct {
	status StatusSource
}

// NewHandler returns a Handler answering queries from status.
func NewHandler(status StatusSource) *Handler {
	return &Handler{status: status}
}

// Handle executes one message. args[0] is the domain.
func (h *Handler) Handle(args []string) Reply {
	domain := token(args, 0)
	logging.Debug().Strs("args", args).Msg("handling message")

	switch domain {
	case DomainConfig:
		return h.handleConfig(domain, args[1:])
	case DomainQuery:
		return h.handleQuery(domain, args[1:])
	default:
		return fail("unknown domain '%s'\n", domain)
	}
}

func (h *Handler) handleConfig(domain string, args []string) Reply {
	command := token(args, 0)
	if command != CommandDebugOutput {
		return fail("unknown command '%s' for domain '%s'\n", command, domain)
	}

	value := token(args, 1)
	switch value {
	case "":
		if logging.Verbose() {
			return Reply{Output: ValueOn + "\n"}
		}
		return Reply{Output: ValueOff + "\n"}
	case ValueOn:
		logging.SetVerbose(true)
	case ValueOff:
		logging.SetVerbose(false)
	default:
		return fail("unknown value '%s' given to command '%s' for domain '%s'\n", value, command, domain)
	}

	logging.Info().Str("value", value).Msg("debug output changed")
	return Reply{}
}

func (h *Handler) handleQuery(domain string, args []string) Reply {
	command := token(args, 0)
	if command != CommandState {
		return fail("unknown command '%s' for domain '%s'\n", command, domain)
	}

	data, err := json.Marshal(h.status.Status())
	if err != nil {
		return fail("cannot encode state: %v\n", err)
	}
	return Reply{Output: string(data) + "\n"}
}

func token(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func fail(format string, a ...interface{}) Reply {
	return Reply{Output: fmt.Sprintf(format, a...), Failed: true}
}
