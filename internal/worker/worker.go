// Package worker runs the background sync loop driven by envelope
// requests. It owns the resolve + synthesize pipeline for one tracked
// deployment environment and reports snapshots as envelope responses.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/icpkit/canisterenv/internal/envsynth"
	"github.com/icpkit/canisterenv/pkg/envelope"
)

// Response message tags emitted by the worker.
const (
	MsgSync    = "sync"
	MsgStopped = "stopped"
	MsgError   = "error"
)

// Generator produces the synthesized variable set for a network.
// *canisterenv.Tool satisfies this.
type Generator interface {
	Generate(ctx context.Context, network string) (envsynth.Vars, error)
}

// SyncData is the body of a sync response.
type SyncData struct {
	Network string        `json:"network"`
	Vars    envsynth.Vars `json:"vars"`
	// Elapsed is how long the resolve+synthesize cycle took.
	Elapsed time.Duration `json:"elapsed"`
}

// ErrorData is the body of an error response.
type ErrorData struct {
	Error string `json:"error"`
}

// Worker consumes envelope.Request values and emits envelope.Response
// values. It is single-goroutine: all state lives inside Run.
type Worker struct {
	gen      Generator
	interval time.Duration
	logger   *slog.Logger

	requests  chan envelope.Request
	responses chan envelope.Response
}

type Option func(*Worker)

// WithInterval sets the active sync cadence.
func WithInterval(interval time.Duration) Option {
	return func(w *Worker) {
		w.interval = interval
	}
}

// WithLogger sets the worker logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

// New creates a Worker around the given generator.
func New(gen Generator, opts ...Option) *Worker {
	w := &Worker{
		gen:       gen,
		interval:  5 * time.Second,
		logger:    slog.Default(),
		requests:  make(chan envelope.Request),
		responses: make(chan envelope.Response, 16),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Send delivers a request to the worker. It blocks until the worker
// accepts it or the context is cancelled.
func (w *Worker) Send(ctx context.Context, req envelope.Request) error {
	select {
	case w.requests <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Responses returns the outbound message stream. It is closed when Run
// returns.
func (w *Worker) Responses() <-chan envelope.Response {
	return w.responses
}

// Run processes requests until the context is cancelled or a stop
// request arrives. Invalid or wrong-state requests produce an error
// response and leave the loop state unchanged. Sync failures also
// produce error responses; the loop stays alive (best-effort).
func (w *Worker) Run(ctx context.Context) {
	defer close(w.responses)

	var (
		payload *envelope.RequestPayload
		ticker  *time.Ticker
		tick    <-chan time.Time
	)

	stopTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			tick = nil
		}
	}
	startTicker := func() {
		stopTicker()
		ticker = time.NewTicker(w.interval)
		tick = ticker.C
	}
	defer stopTicker()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("Worker cancelled")
			return

		case <-tick:
			w.sync(ctx, payload)

		case req := <-w.requests:
			if err := req.Validate(); err != nil {
				w.emitError(ctx, err)
				continue
			}

			switch req.Msg {
			case envelope.KindStart:
				if payload != nil {
					w.emitError(ctx, errAlreadyStarted)
					continue
				}
				payload = req.Data
				w.logger.Info("Tracking started", "network", payload.Network, "host", payload.Host)
				startTicker()
				w.sync(ctx, payload) // Immediate first snapshot

			case envelope.KindStop:
				if payload == nil {
					w.emitError(ctx, errNotStarted)
					continue
				}
				w.logger.Info("Tracking stopped", "network", payload.Network)
				w.emit(ctx, MsgStopped, nil)
				return

			case envelope.KindBusy:
				if payload == nil {
					w.emitError(ctx, errNotStarted)
					continue
				}
				if ticker == nil {
					w.logger.Debug("Host busy, resuming sync")
					startTicker()
					w.sync(ctx, payload)
				}

			case envelope.KindIdle:
				if payload == nil {
					w.emitError(ctx, errNotStarted)
					continue
				}
				w.logger.Debug("Host idle, suspending sync")
				stopTicker()
			}
		}
	}
}

func (w *Worker) sync(ctx context.Context, payload *envelope.RequestPayload) {
	start := time.Now()
	vars, err := w.gen.Generate(ctx, payload.Network)
	if err != nil {
		w.logger.Warn("Sync cycle failed", "network", payload.Network, "err", err)
		w.emitError(ctx, err)
		return
	}

	w.emit(ctx, MsgSync, SyncData{
		Network: payload.Network,
		Vars:    vars,
		Elapsed: time.Since(start),
	})
}

func (w *Worker) emit(ctx context.Context, msg string, data any) {
	resp, err := envelope.NewResponse(msg, data)
	if err != nil {
		w.logger.Error("Failed to build response", "msg", msg, "err", err)
		return
	}

	select {
	case w.responses <- resp:
	case <-ctx.Done():
	}
}

func (w *Worker) emitError(ctx context.Context, err error) {
	w.emit(ctx, MsgError, ErrorData{Error: err.Error()})
}
