// Package async provides a reusable controller around one asynchronous
// call: loading, error and not-found state, plus single-flight semantics
// where starting a new execution cancels and supersedes the previous one.
package async

import (
	"context"
	"errors"
	"sync"

	"campaignboard/internal/core/domain"
)

// genericErrorMessage is the fallback shown when a failure carries no
// server-supplied message.
const genericErrorMessage = "An error occurred. Please try again."

// Operation wraps an async function with observable state. A is the
// argument type of the wrapped function and R its result. The zero state is
// data absent, not loading, no error.
//
// At most one execution is outstanding per Operation: Execute cancels the
// previous in-flight call, and a superseded call's completion never touches
// state. All methods are safe for concurrent use.
type Operation[A, R any] struct {
	fn        func(context.Context, A) (R, error)
	onSuccess func(R)
	onError   func(error)

	mu       sync.Mutex
	data     R
	hasData  bool
	loading  bool
	errMsg   string
	notFound bool
	cancel   context.CancelFunc
	gen      uint64
}

// Option configures an Operation.
type Option[A, R any] func(*Operation[A, R])

// WithOnSuccess registers a callback invoked with each successful result.
func WithOnSuccess[A, R any](fn func(R)) Option[A, R] {
	return func(o *Operation[A, R]) { o.onSuccess = fn }
}

// WithOnError registers a callback invoked with each non-cancellation
// failure. The callback receives the original, unclassified error.
func WithOnError[A, R any](fn func(error)) Option[A, R] {
	return func(o *Operation[A, R]) { o.onError = fn }
}

// WithInitialLoading starts the controller in the loading state, for callers
// that execute immediately on construction.
func WithInitialLoading[A, R any]() Option[A, R] {
	return func(o *Operation[A, R]) { o.loading = true }
}

// NewOperation wraps fn in a fresh controller.
func NewOperation[A, R any](fn func(context.Context, A) (R, error), opts ...Option[A, R]) *Operation[A, R] {
	o := &Operation[A, R]{fn: fn}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Execute runs the wrapped function. Any prior in-flight execution is
// cancelled first and its completion suppressed. On success the result is
// stored and returned; on failure the error is classified into either the
// notFound flag (missing resource) or a human-readable error message, and
// the original error is returned. A cancelled or superseded execution
// returns context.Canceled without mutating state beyond what the
// cancellation itself did. Loading is false once the call settles.
func (o *Operation[A, R]) Execute(ctx context.Context, arg A) (R, error) {
	o.mu.Lock()
	if o.cancel != nil {
		o.cancel()
	}
	o.gen++
	gen := o.gen
	callCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel
	o.loading = true
	o.errMsg = ""
	o.notFound = false
	o.mu.Unlock()

	res, err := o.fn(callCtx, arg)

	o.mu.Lock()
	if gen != o.gen {
		// Superseded by a newer Execute (or Cancel/Reset); drop the outcome.
		o.mu.Unlock()
		var zero R
		return zero, context.Canceled
	}
	o.cancel = nil
	cancel()
	o.loading = false

	if err != nil {
		if errors.Is(err, context.Canceled) {
			o.mu.Unlock()
			var zero R
			return zero, err
		}
		if domain.IsNotFound(err) {
			o.notFound = true
			o.errMsg = ""
		} else {
			o.notFound = false
			o.errMsg = domain.ErrorMessage(err, genericErrorMessage)
		}
		cb := o.onError
		o.mu.Unlock()
		if cb != nil {
			cb(err)
		}
		var zero R
		return zero, err
	}

	o.data = res
	o.hasData = true
	o.errMsg = ""
	o.notFound = false
	cb := o.onSuccess
	o.mu.Unlock()
	if cb != nil {
		cb(res)
	}
	return res, nil
}

// Retry re-runs the wrapped function with the given argument. It is
// identical to calling Execute again.
func (o *Operation[A, R]) Retry(ctx context.Context, arg A) (R, error) {
	return o.Execute(ctx, arg)
}

// Cancel aborts the in-flight execution, if any, and stops the loading
// indicator. Data and error state are left untouched.
func (o *Operation[A, R]) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
		o.gen++
	}
	o.loading = false
}

// Reset cancels any in-flight execution and restores the initial state.
func (o *Operation[A, R]) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.gen++
	var zero R
	o.data = zero
	o.hasData = false
	o.loading = false
	o.errMsg = ""
	o.notFound = false
}

// ClearError clears the error message and the notFound flag only.
func (o *Operation[A, R]) ClearError() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.errMsg = ""
	o.notFound = false
}

// Data returns the last successful result and whether one exists.
func (o *Operation[A, R]) Data() (R, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.data, o.hasData
}

// Loading reports whether an execution is outstanding.
func (o *Operation[A, R]) Loading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.loading
}

// ErrorMessage returns the current error message, empty when none.
func (o *Operation[A, R]) ErrorMessage() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.errMsg
}

// NotFound reports whether the last failure was a missing resource.
func (o *Operation[A, R]) NotFound() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.notFound
}
