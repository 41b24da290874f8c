// Package generate submits staged documents to the generation service and
// normalizes whatever comes back into an Outcome.
package generate

import (
	"context"
	"errors"
	"fmt"

	"podcaster/internal/app/podcaster/upload"
)

// NoSummary is used when service returned no summary
const NoSummary = "No summary returned"

// Generator makes one submission attempt. It never returns a raw error,
// every failure is folded into the Outcome.
type Generator interface {
	Generate(ctx context.Context, file upload.StagedFile) Outcome
}

// Outcome of single submission, success when Err is nil
type Outcome struct {
	Summary  string
	AudioURL string // empty when audio was not generated
	Err      error
}

// Success builds successful outcome with lenient defaults
func Success(summary, audioURL string) Outcome {
	if summary == "" {
		summary = NoSummary
	}
	return Outcome{Summary: summary, AudioURL: audioURL}
}

// Failure builds failed outcome
func Failure(err error) Outcome {
	return Outcome{Err: err}
}

// OK reports successful outcome
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Message to show user on failure
func (o Outcome) Message() string {
	if o.Err == nil {
		return ""
	}
	var rejected *RejectedError
	if errors.As(o.Err, &rejected) {
		return rejected.Message
	}
	var transport *TransportError
	if errors.As(o.Err, &transport) {
		return transport.Reason
	}
	return o.Err.Error()
}

// RejectedError is a failure reported by the service itself.
// Status is zero for in-process generation.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("generation rejected: %s", e.Message)
	}
	return fmt.Sprintf("generation rejected with status %d: %s", e.Status, e.Message)
}

// Generic user-facing reasons of transport failures
const (
	ReasonUnavailable = "generation service unavailable"
	ReasonMalformed   = "malformed response from generation service"
	ReasonUnreadable  = "can't read staged file"
)

// TransportError covers unreachable service, broken response and local io
type TransportError struct {
	Reason string
	Cause  error
}

func (e *TransportError) Error() string {
	if e.Cause == nil {
		return e.Reason
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}
