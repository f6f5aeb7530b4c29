package routecoordinator

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/routecoordinator/pkg/routecoordinator/codec"
	"github.com/BrandonKowalski/routecoordinator/pkg/routecoordinator/internal"
)

// Manager resolves paths to coordinators, builds them with parameters and
// carries their results back to the caller.
//
// Create one at startup with New and hand it to whatever registers or routes.
// There is no package-level instance.
type Manager struct {
	registry  *Registry
	codec     codec.Codec
	logger    *slog.Logger
	localizer *internal.Localizer
	strict    bool
	suggest   int

	mu         sync.RWMutex
	middleware []Middleware

	stats managerStats
}

type managerStats struct {
	routed    atomic.Int64
	unmatched atomic.Int64
	rejected  atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
	repeated  atomic.Int64
	awaiting  atomic.Int64
}

// Stats is a snapshot of a Manager's counters.
type Stats struct {
	Routed    int64 // Route calls that constructed a coordinator
	Unmatched int64 // Route calls for unregistered paths
	Rejected  int64 // Route calls whose typed parameter could not be encoded
	Completed int64 // First completions carrying data
	Failed    int64 // First completions carrying an error
	Repeated  int64 // Completions dropped because one already fired
	Awaiting  int64 // Constructed coordinators that have not completed (yet, or ever)
}

// New creates a Manager. It fails on an unknown codec or an invalid locale.
func New(opts Options) (*Manager, error) {
	c, err := codec.ByName(opts.Codec)
	if err != nil {
		return nil, err
	}

	localizer, err := internal.NewLocalizer(opts.Locale)
	if err != nil {
		return nil, err
	}

	return &Manager{
		registry:  NewRegistry(),
		codec:     c,
		logger:    opts.logger(),
		localizer: localizer,
		strict:    opts.StrictCompletion,
		suggest:   opts.suggestDistance(),
	}, nil
}

// Register adds coordinator factories. Factories with an empty path are
// skipped. Registering a path twice panics; see Registry.Register.
func (m *Manager) Register(factories ...Factory) *Manager {
	for _, f := range factories {
		path := f.Path()
		if path == "" {
			m.logger.Debug("coordinator has no path, not registered")
			continue
		}

		if m.registry.Has(path) {
			m.logger.Error("route already registered", slog.String("path", path))
		}
		m.registry.Register(f)
		m.logger.Debug("route registered", slog.String("path", path))
	}
	return m
}

// Use appends middleware around every subsequent Execute.
func (m *Manager) Use(mws ...Middleware) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.middleware = append(m.middleware, mws...)
	return m
}

// Lookup returns the factory registered for path.
func (m *Manager) Lookup(path string) (Factory, bool) {
	return m.registry.Lookup(path)
}

// Paths returns all registered paths, sorted.
func (m *Manager) Paths() []string {
	return m.registry.Paths()
}

// RemoveAll unregisters every factory.
func (m *Manager) RemoveAll() {
	m.registry.Clear()
}

// Codec returns the codec used for parameters and results.
func (m *Manager) Codec() codec.Codec {
	return m.codec
}

// Stats returns a snapshot of the dispatch counters.
func (m *Manager) Stats() Stats {
	return Stats{
		Routed:    m.stats.routed.Load(),
		Unmatched: m.stats.unmatched.Load(),
		Rejected:  m.stats.rejected.Load(),
		Completed: m.stats.completed.Load(),
		Failed:    m.stats.failed.Load(),
		Repeated:  m.stats.repeated.Load(),
		Awaiting:  m.stats.awaiting.Load(),
	}
}

// Localize returns the description of err's kind in the first supported
// language of langs, or in the configured locale. Errors outside the
// taxonomy return err.Error().
func (m *Manager) Localize(err error, langs ...string) string {
	if err == nil {
		return ""
	}
	id, ok := messageID(err)
	if !ok {
		return err.Error()
	}
	if msg, ok := m.localizer.Localize(id, langs...); ok {
		return msg
	}
	return Describe(err)
}

// Route dispatches to path with untyped params and hands the raw result to
// completion. params and completion may be nil.
func (m *Manager) Route(path string, params Params, presenter any, completion Completion) {
	m.dispatch(path, rawParams(params), presenter, completion)
}

// RouteWith dispatches to path with a typed parameter, converted to a mapping
// with the manager's codec. A parameter that cannot be converted fails the
// call with ErrEncoding before any coordinator is built.
func RouteWith[P any](m *Manager, path string, param P, presenter any, completion Completion) {
	m.dispatch(path, typedParams(m, param), presenter, completion)
}

// RouteFor dispatches to path with untyped params and decodes the result into R.
// A result that does not decode reaches completion as ErrDecoding.
func RouteFor[R any](m *Manager, path string, params Params, presenter any, completion func(R, error)) {
	m.dispatch(path, rawParams(params), presenter, typedCompletion(m, path, completion))
}

// RouteWithFor combines RouteWith and RouteFor.
func RouteWithFor[P, R any](m *Manager, path string, param P, presenter any, completion func(R, error)) {
	m.dispatch(path, typedParams(m, param), presenter, typedCompletion(m, path, completion))
}

func rawParams(params Params) func() (Params, error) {
	return func() (Params, error) {
		return params, nil
	}
}

func typedParams[P any](m *Manager, param P) func() (Params, error) {
	return func() (Params, error) {
		return codec.EncodeToMapping(m.codec, param)
	}
}

func typedCompletion[R any](m *Manager, path string, completion func(R, error)) Completion {
	if completion == nil {
		return nil
	}
	return func(data []byte, err error) {
		var zero R
		if err != nil {
			completion(zero, err)
			return
		}

		v, err := codec.DecodeFromRaw[R](m.codec, data)
		if err != nil {
			m.logger.Debug("route response decode failed",
				slog.String("path", path),
				slog.String("type", typeName[R]()),
				slog.String("error", err.Error()),
			)
			completion(zero, newRouteError(ErrDecoding, path, err))
			return
		}
		completion(v, nil)
	}
}

// dispatch is the single algorithm behind every Route form. Parameters are
// encoded only after the path resolves.
func (m *Manager) dispatch(path string, params func() (Params, error), presenter any, completion Completion) {
	factory, ok := m.registry.Lookup(path)
	if !ok {
		m.stats.unmatched.Inc()
		routeErr := newRouteError(ErrNoMatchingRoute, path, nil)
		routeErr.Suggestion = m.registry.Suggest(path, m.suggest)
		m.logger.Warn("no matching route",
			slog.String("path", path),
			slog.String("suggestion", routeErr.Suggestion),
		)
		if completion != nil {
			completion(nil, routeErr)
		}
		return
	}

	mapping, err := params()
	if err != nil {
		m.stats.rejected.Inc()
		m.logger.Warn("route parameter encode failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		if completion != nil {
			completion(nil, newRouteError(ErrEncoding, path, err))
		}
		return
	}

	call := &Call{
		ID:        uuid.NewString(),
		Path:      path,
		Params:    mapping,
		Presenter: presenter,
		Started:   time.Now(),
	}
	call.complete = m.once(call, completion)

	m.stats.routed.Inc()
	m.stats.awaiting.Inc()

	route := factory.New(mapping, call.complete)
	if b, ok := route.(binder); ok {
		b.bind(binding{path: path, codec: m.codec, logger: m.logger})
	}
	route.SetPresenter(presenter)
	call.Route = route

	m.logger.Debug("routing",
		slog.String("path", path),
		slog.String("call_id", call.ID),
		slog.Bool("has_params", mapping != nil),
	)

	m.mu.RLock()
	mws := append([]Middleware(nil), m.middleware...)
	m.mu.RUnlock()

	Chain(mws...)(call, func(call *Call) {
		call.Route.Execute()
	})
}

// once wraps the caller's completion so only the first invocation gets through.
func (m *Manager) once(call *Call, completion Completion) Completion {
	return func(data []byte, err error) {
		if !call.done.CompareAndSwap(false, true) {
			m.stats.repeated.Inc()
			m.logger.Error("completion called more than once",
				slog.String("path", call.Path),
				slog.String("call_id", call.ID),
			)
			if m.strict {
				panic(newRouteError(ErrCompletionRepeated, call.Path, nil))
			}
			return
		}

		m.stats.awaiting.Dec()
		if err != nil {
			m.stats.failed.Inc()
		} else {
			m.stats.completed.Inc()
		}

		call.notify(data, err)
		if completion != nil {
			completion(data, err)
		}
	}
}
