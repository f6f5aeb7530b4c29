package routecoordinator

import (
	"log/slog"

	"github.com/tidwall/gjson"
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/routecoordinator/pkg/routecoordinator/codec"
	"github.com/BrandonKowalski/routecoordinator/pkg/routecoordinator/internal"
)

// Params is the untyped parameter mapping handed to a coordinator.
// A nil Params means no parameters were provided.
type Params = map[string]any

// Completion receives a coordinator's result: raw bytes in the manager's codec,
// or an error. It fires at most once per route call.
type Completion func(data []byte, err error)

// Route is a unit the Manager can dispatch to.
// Embedding Coordinator provides everything except a meaningful Execute.
type Route interface {
	// SetPresenter assigns the presentation context. The Manager calls it after
	// construction and before Execute.
	SetPresenter(presenter any)

	// Execute performs the route's work. It may call the completion synchronously
	// or at any later time.
	Execute()
}

// Factory constructs Route instances for one path.
type Factory interface {
	// Path returns the unique path the factory is registered under.
	// An empty path keeps the factory out of the registry.
	Path() string

	// New constructs a route. It must not fail; parameter problems surface
	// when the route executes.
	New(params Params, completion Completion) Route
}

type factoryFunc struct {
	path string
	fn   func(params Params, completion Completion) Route
}

func (f factoryFunc) Path() string { return f.path }

func (f factoryFunc) New(params Params, completion Completion) Route {
	return f.fn(params, completion)
}

// NewFactory creates a Factory from a path and a constructor.
func NewFactory(path string, fn func(params Params, completion Completion) Route) Factory {
	return factoryFunc{path: path, fn: fn}
}

// binding carries what the Manager attaches to a coordinator after construction.
type binding struct {
	path   string
	codec  codec.Codec
	logger *slog.Logger
}

type binder interface {
	bind(b binding)
}

// Coordinator is the base for routes. Embed it and define Execute:
//
//	type detailCoordinator struct {
//	    routecoordinator.Coordinator
//	}
//
//	func (c *detailCoordinator) Execute() {
//	    stack, _ := navigation.From(c.Presenter())
//	    stack.Push(detailScreen{})
//	}
//
// Coordinators can also be constructed and executed directly, without a Manager.
type Coordinator struct {
	parameter  Params
	completion Completion
	presenter  any
	binding    binding
	completed  atomic.Bool
}

// NewCoordinator creates a coordinator holding params and completion. Either may be nil.
func NewCoordinator(params Params, completion Completion) Coordinator {
	return Coordinator{parameter: params, completion: completion}
}

// Parameter returns the untyped parameter mapping, nil if none was provided.
func (c *Coordinator) Parameter() Params {
	return c.parameter
}

// Presenter returns the presentation context assigned by SetPresenter.
func (c *Coordinator) Presenter() any {
	return c.presenter
}

// SetPresenter implements Route.
func (c *Coordinator) SetPresenter(presenter any) {
	c.presenter = presenter
}

// Execute does nothing. Embedding types override it.
func (c *Coordinator) Execute() {}

// Path returns the path the coordinator was routed through, "" when it was
// constructed directly.
func (c *Coordinator) Path() string {
	return c.binding.path
}

// Completed reports whether the completion has fired.
func (c *Coordinator) Completed() bool {
	return c.completed.Load()
}

// Complete reports the result. Only the first call has any effect; later calls
// return ErrCompletionRepeated.
func (c *Coordinator) Complete(data []byte, err error) error {
	if !c.completed.CompareAndSwap(false, true) {
		c.log().Error("completion called more than once", slog.String("path", c.Path()))
		return newRouteError(ErrCompletionRepeated, c.Path(), nil)
	}
	if c.completion != nil {
		c.completion(data, err)
	}
	return nil
}

// Succeed encodes v with the manager's codec and completes with the bytes.
// If v cannot be encoded the completion receives an ErrEncoding error instead,
// which is also returned.
func (c *Coordinator) Succeed(v any) error {
	data, err := c.routeCodec().Marshal(v)
	if err != nil {
		routeErr := newRouteError(ErrEncoding, c.Path(), err)
		if cerr := c.Complete(nil, routeErr); cerr != nil {
			return cerr
		}
		return routeErr
	}
	return c.Complete(data, nil)
}

// Fail completes with err.
func (c *Coordinator) Fail(err error) error {
	return c.Complete(nil, err)
}

// Lookup returns the parameter at a dot-separated path (e.g. "owner.name")
// without decoding the whole mapping.
func (c *Coordinator) Lookup(path string) gjson.Result {
	if c.parameter == nil {
		return gjson.Result{}
	}
	data, err := codec.JSON{}.Marshal(c.parameter)
	if err != nil {
		return gjson.Result{}
	}
	return codec.Field(data, path)
}

func (c *Coordinator) bind(b binding) {
	c.binding = b
}

func (c *Coordinator) routeCodec() codec.Codec {
	if c.binding.codec == nil {
		return codec.JSON{}
	}
	return c.binding.codec
}

func (c *Coordinator) log() *slog.Logger {
	if c.binding.logger == nil {
		return internal.GetLogger()
	}
	return c.binding.logger
}
