package models

import (
	"encoding/json"
	"fmt"
)

// Envelope types
const (
	TypeRequest  = "request"
	TypeResponse = "response"
)

// MethodMessage carries a command token list to the daemon.
const MethodMessage = "message"

// Error codes
const (
	CodeFailure    = 1 // The command was understood but rejected
	CodeBadRequest = 2 // The envelope could not be handled
)

// MessageEnvelope is the top-level message structure for all communications
type MessageEnvelope struct {
	Type     string    `json:"type"` // "request" or "response"
	Request  *Request  `json:"request,omitempty"`
	Response *Response `json:"response,omitempty"`
}

// Request represents a command sent to the daemon
type Request struct {
	ID     string   `json:"id"`
	Method string   `json:"method"`
	Args   []string `json:"args"`
}

// Response represents the daemon's reply
type Response struct {
	ID     string     `json:"id"`
	Output string     `json:"output,omitempty"`
	Error  *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo represents an error in a response
type ErrorInfo struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorInfo) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

// NewRequest creates a new request envelope
func NewRequest(id, method string, args []string) *MessageEnvelope {
	return &MessageEnvelope{
		Type: TypeRequest,
		Request: &Request{
			ID:     id,
			Method: method,
			Args:   args,
		},
	}
}

// NewResponse creates a successful response envelope
func NewResponse(id, output string) *MessageEnvelope {
	return &MessageEnvelope{
		Type:     TypeResponse,
		Response: &Response{ID: id, Output: output},
	}
}

// NewErrorResponse creates a failed response envelope
func NewErrorResponse(id string, code int, message string) *MessageEnvelope {
	return &MessageEnvelope{
		Type: TypeResponse,
		Response: &Response{
			ID:    id,
			Error: &ErrorInfo{Code: code, Message: message},
		},
	}
}

// IsError returns true if the response contains an error
func (r *Response) IsError() bool {
	return r.Error != nil
}

// GetError returns the error message if present
func (r *Response) GetError() string {
	if r.Error != nil {
		return r.Error.Message
	}
	return ""
}

// Encode returns the envelope as one newline-terminated JSON line
func (m *MessageEnvelope) Encode() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
