package atlas

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration = errors.New("atlas: configuration error")
	ErrRequest       = errors.New("atlas: request error")
	ErrServer        = errors.New("atlas: server error")
)

// ConfigurationError: the package is not set up for use, e.g. no API key.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return "atlas: " + e.Message
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// RequestError is a client-side fault. StatusCode is 0 when the request was
// rejected before being sent.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return "atlas: invalid request: " + e.Message
	}
	return fmt.Sprintf("atlas: your request has an error (code %d): %s", e.StatusCode, e.Message)
}

func (e *RequestError) Is(target error) bool { return target == ErrRequest }

// ServerError covers 5xx statuses and any reply that is not a valid envelope
// with status "OK". StatusCode is the HTTP status of the reply.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("atlas: server error (code %d): %s", e.StatusCode, e.Message)
}

func (e *ServerError) Is(target error) bool { return target == ErrServer }
