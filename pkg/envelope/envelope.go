// Package envelope defines the message contract between a host (main
// thread, CLI, or HTTP surface) and the background sync worker.
//
// Requests carry a discriminated status tag and, for "start", a payload
// describing the deployment environment to track. Responses are
// open-ended: a tag, a correlation ID, and an opaque JSON body the
// envelope never interprets.
package envelope

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// RequestKind is the discriminated status tag of a host request.
type RequestKind string

const (
	// KindStart begins tracking a deployment environment. Requires a payload.
	KindStart RequestKind = "start"
	// KindStop halts tracking. No payload.
	KindStop RequestKind = "stop"
	// KindBusy signals host activity; the worker syncs at the active cadence.
	KindBusy RequestKind = "busy"
	// KindIdle signals host inactivity; the worker suspends syncing.
	KindIdle RequestKind = "idle"
)

// ErrUnknownKind is returned when a request carries an unrecognized tag.
var ErrUnknownKind = errors.New("unknown request kind")

// ErrPayloadMismatch is returned when a payload is present on a kind that
// forbids it, or absent on a kind that requires it.
var ErrPayloadMismatch = errors.New("payload mismatch for request kind")

// RequestPayload describes the deployment environment a start request
// targets: the host's current selection, the governance canister it is
// scoped to, and the two identifiers that pin the deployment (host URL
// and dfx network name).
type RequestPayload struct {
	Selection            string `json:"selection,omitempty"`
	GovernanceCanisterID string `json:"governanceCanisterId,omitempty"`
	Host                 string `json:"host,omitempty"`
	Network              string `json:"network"`
}

// Request is a host-to-worker message.
type Request struct {
	Msg  RequestKind     `json:"msg"`
	Data *RequestPayload `json:"data,omitempty"`
}

// Response is a worker-to-host message. Data is opaque to the envelope.
type Response struct {
	Msg  string          `json:"msg"`
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data,omitempty"`
}

// NewStart builds a start request for the given payload.
func NewStart(payload RequestPayload) Request {
	return Request{Msg: KindStart, Data: &payload}
}

// NewStop builds a stop request.
func NewStop() Request {
	return Request{Msg: KindStop}
}

// NewBusy builds a busy (host active) request.
func NewBusy() Request {
	return Request{Msg: KindBusy}
}

// NewIdle builds an idle (host inactive) request.
func NewIdle() Request {
	return Request{Msg: KindIdle}
}

// NewResponse builds a response with a fresh correlation ID. The data
// value is marshaled to JSON; a nil data produces an empty body.
func NewResponse(msg string, data any) (Response, error) {
	resp := Response{Msg: msg, ID: uuid.NewString()}
	if data == nil {
		return resp, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return Response{}, fmt.Errorf("failed to marshal response data: %w", err)
	}
	resp.Data = raw

	return resp, nil
}

// Validate checks the kind/payload contract: start requires a payload
// with a non-empty network, every other kind must not carry one.
func (r Request) Validate() error {
	switch r.Msg {
	case KindStart:
		if r.Data == nil {
			return fmt.Errorf("%w: %q requires a payload", ErrPayloadMismatch, r.Msg)
		}
		if r.Data.Network == "" {
			return fmt.Errorf("%w: %q payload is missing the network", ErrPayloadMismatch, r.Msg)
		}
	case KindStop, KindBusy, KindIdle:
		if r.Data != nil {
			return fmt.Errorf("%w: %q must not carry a payload", ErrPayloadMismatch, r.Msg)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, r.Msg)
	}

	return nil
}
