package mocks

import (
	"context"
	"hostel/infras/otel"
	"sync"
)

type otelImpl struct {
}

// NewScope implements otel.Otel.
func (o *otelImpl) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func NewOtel() otel.Otel {
	return &otelImpl{}
}

// Recorder hands out scopes that remember every error traced through them.
type Recorder struct {
	mu     sync.Mutex
	errors []error
}

// NewScope implements otel.Otel.
func (r *Recorder) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, &recordingScope{scopeImpl: &scopeImpl{}, recorder: r}
}

// Errors returns the errors traced so far.
func (r *Recorder) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]error(nil), r.errors...)
}

func (r *Recorder) record(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.errors = append(r.errors, err)
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

type recordingScope struct {
	*scopeImpl
	recorder *Recorder
}

func (s *recordingScope) TraceError(err error) {
	s.recorder.record(err)
}

func (s *recordingScope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}
