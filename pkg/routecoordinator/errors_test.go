package routecoordinator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/routecoordinator/pkg/routecoordinator"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{routecoordinator.ErrEncoding, "Encoding error"},
		{routecoordinator.ErrDecoding, "Decoding error"},
		{routecoordinator.ErrNoMatchingRoute, "No matching route"},
		{routecoordinator.ErrRouteAlreadyExists, "Route already exists"},
		{routecoordinator.ErrNotAcceptableRoutePath, "Route path not acceptable"},
		{routecoordinator.ErrParameterNotProvided, "Parameter not provided"},
		{routecoordinator.ErrNotAcceptableParameter, "Parameter not acceptable"},
		{fmt.Errorf("wrapped: %w", routecoordinator.ErrNoMatchingRoute), "No matching route"},
		{errors.New("something else"), "something else"},
		{nil, ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, routecoordinator.Describe(tt.err))
	}
}

func TestRouteErrorMessage(t *testing.T) {
	m := newTestManager(t, routecoordinator.Options{})
	m.Register(recorderFactory("/basic", &recorder{}, nil))

	var gotErr error
	m.Route("/basik", nil, nil, func(_ []byte, err error) { gotErr = err })

	require.EqualError(t, gotErr, `routecoordinator: no matching route [path "/basik"] (did you mean "/basic"?)`)
	require.Equal(t, "No matching route", routecoordinator.Describe(gotErr))
}

func TestRouteErrorWrapsCause(t *testing.T) {
	m := newTestManager(t, routecoordinator.Options{})
	m.Register(recorderFactory("/broken", &recorder{}, func(c *recordingCoordinator) {
		_ = c.Complete([]byte(`not json`), nil)
	}))

	var gotErr error
	routecoordinator.RouteFor(m, "/broken", nil, nil, func(_ response, err error) { gotErr = err })

	var routeErr *routecoordinator.RouteError
	require.ErrorAs(t, gotErr, &routeErr)
	require.Equal(t, routecoordinator.ErrDecoding, routeErr.Kind)
	require.NotNil(t, routeErr.Err)
	require.Equal(t, "Decoding error", routecoordinator.Describe(gotErr))
}

func TestRouteErrorIsHelpers(t *testing.T) {
	require.True(t, routecoordinator.IsNoMatchingRoute(routecoordinator.ErrNoMatchingRoute))
	require.False(t, routecoordinator.IsNoMatchingRoute(routecoordinator.ErrDecoding))
	require.True(t, routecoordinator.IsDecodingError(fmt.Errorf("x: %w", routecoordinator.ErrDecoding)))
	require.False(t, routecoordinator.IsDecodingError(nil))
}
