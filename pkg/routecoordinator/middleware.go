package routecoordinator

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// Call is one in-flight route call, as seen by middleware.
type Call struct {
	ID        string    // Unique per route call
	Path      string    // Registered path being routed
	Params    Params    // Untyped parameters handed to the coordinator
	Presenter any       // Presentation context assigned to the coordinator
	Started   time.Time // When the call was dispatched
	Route     Route     // The constructed coordinator

	mu        sync.Mutex
	ctx       context.Context
	observers []Completion
	complete  Completion
	done      atomic.Bool
}

// Completed reports whether the call's completion has fired.
func (c *Call) Completed() bool {
	return c.done.Load()
}

// Context returns the call's context, context.Background() if none was set.
func (c *Call) Context() context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// SetContext replaces the call's context, e.g. to carry a tracing span.
func (c *Call) SetContext(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ctx = ctx
}

// OnComplete registers fn to observe the call's first completion before the
// caller sees it. Register before calling next; a completion that already
// fired is not replayed.
func (c *Call) OnComplete(fn Completion) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// Fail completes the call with err through the same once-only path the
// coordinator uses. Middleware that skips next should call it.
func (c *Call) Fail(err error) {
	c.complete(nil, err)
}

func (c *Call) notify(data []byte, err error) {
	c.mu.Lock()
	observers := make([]Completion, len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(data, err)
	}
}

// Executor runs a call. The innermost executor calls Route.Execute.
type Executor func(call *Call)

// Middleware wraps route execution with cross-cutting logic. It MUST call next
// to continue the chain unless it short-circuits with call.Fail.
type Middleware func(call *Call, next Executor)

// Chain composes multiple middleware into a single Middleware.
// The first middleware in the list is the outermost wrapper.
func Chain(mws ...Middleware) Middleware {
	return func(call *Call, next Executor) {
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(call *Call) {
				mw(call, prev)
			}
		}
		h(call)
	}
}

// Logging returns middleware that logs route start and completion.
func Logging(logger *slog.Logger) Middleware {
	return func(call *Call, next Executor) {
		logger.Info("route started",
			slog.String("path", call.Path),
			slog.String("call_id", call.ID),
		)

		call.OnComplete(func(data []byte, err error) {
			elapsed := time.Since(call.Started)
			if err != nil {
				logger.Error("route failed",
					slog.String("path", call.Path),
					slog.String("call_id", call.ID),
					slog.Duration("elapsed", elapsed),
					slog.String("error", err.Error()),
				)
				return
			}
			logger.Info("route completed",
				slog.String("path", call.Path),
				slog.String("call_id", call.ID),
				slog.Duration("elapsed", elapsed),
				slog.Int("bytes", len(data)),
			)
		})

		next(call)
	}
}

// Recover returns middleware that turns a panic in Execute into an
// ErrHandlerPanicked completion, logged with a stack trace. A call that
// already completed keeps its result and the panic is only logged.
func Recover(logger *slog.Logger) Middleware {
	return func(call *Call, next Executor) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("route handler panicked",
					slog.String("path", call.Path),
					slog.String("call_id", call.ID),
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())),
					slog.Bool("completed", call.Completed()),
				)
				if call.Completed() {
					return
				}
				call.Fail(newRouteError(ErrHandlerPanicked, call.Path, fmt.Errorf("%v", r)))
			}
		}()
		next(call)
	}
}
