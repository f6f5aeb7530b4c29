package otelroute_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/BrandonKowalski/routecoordinator/pkg/routecoordinator"
	"github.com/BrandonKowalski/routecoordinator/pkg/routecoordinator/otelroute"
)

type recordingTracer struct {
	noop.Tracer

	mu    sync.Mutex
	names []string
}

func (r *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	r.mu.Lock()
	r.names = append(r.names, name)
	r.mu.Unlock()
	return r.Tracer.Start(ctx, name, opts...)
}

func (r *recordingTracer) spans() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}

type echoCoordinator struct {
	routecoordinator.Coordinator
	fail bool
}

func (c *echoCoordinator) Execute() {
	if c.fail {
		_ = c.Fail(errors.New("boom"))
		return
	}
	_ = c.Succeed(c.Parameter())
}

func newManager(t *testing.T, tracer trace.Tracer) *routecoordinator.Manager {
	t.Helper()
	m, err := routecoordinator.New(routecoordinator.Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)

	m.Use(otelroute.TracingWithTracer(tracer))
	m.Register(
		routecoordinator.NewFactory("/echo", func(p routecoordinator.Params, c routecoordinator.Completion) routecoordinator.Route {
			return &echoCoordinator{Coordinator: routecoordinator.NewCoordinator(p, c)}
		}),
		routecoordinator.NewFactory("/fail", func(p routecoordinator.Params, c routecoordinator.Completion) routecoordinator.Route {
			return &echoCoordinator{Coordinator: routecoordinator.NewCoordinator(p, c), fail: true}
		}),
	)
	return m
}

func TestTracingRecordsExecuteAndCompletion(t *testing.T) {
	tracer := &recordingTracer{}
	m := newManager(t, tracer)

	var got []byte
	m.Route("/echo", routecoordinator.Params{"title": "x"}, nil, func(data []byte, err error) {
		require.NoError(t, err)
		got = data
	})

	require.JSONEq(t, `{"title":"x"}`, string(got))
	require.Equal(t, []string{otelroute.SpanExecute, otelroute.SpanComplete}, tracer.spans())
}

func TestTracingPassesFailuresThrough(t *testing.T) {
	tracer := &recordingTracer{}
	m := newManager(t, tracer)

	var gotErr error
	m.Route("/fail", nil, nil, func(_ []byte, err error) {
		gotErr = err
	})

	require.EqualError(t, gotErr, "boom")
	require.Equal(t, []string{otelroute.SpanExecute, otelroute.SpanComplete}, tracer.spans())
}

func TestTracingSkipsUnmatchedRoutes(t *testing.T) {
	tracer := &recordingTracer{}
	m := newManager(t, tracer)

	var gotErr error
	m.Route("/missing", nil, nil, func(_ []byte, err error) {
		gotErr = err
	})

	require.ErrorIs(t, gotErr, routecoordinator.ErrNoMatchingRoute)
	require.Empty(t, tracer.spans())
}

func TestTracingWithGlobalProvider(t *testing.T) {
	m, err := routecoordinator.New(routecoordinator.Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)
	m.Use(otelroute.Tracing())
	m.Register(routecoordinator.NewFactory("/echo", func(p routecoordinator.Params, c routecoordinator.Completion) routecoordinator.Route {
		return &echoCoordinator{Coordinator: routecoordinator.NewCoordinator(p, c)}
	}))

	calls := 0
	m.Route("/echo", nil, nil, func(data []byte, err error) {
		calls++
		require.NoError(t, err)
		require.Equal(t, "null", string(data))
	})
	require.Equal(t, 1, calls)
}
