package routecoordinator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/routecoordinator/pkg/routecoordinator"
)

func TestToRouteResponse(t *testing.T) {
	got, ok := routecoordinator.ToRouteResponse[response]([]byte(`{"title":"x"}`), nil)
	require.True(t, ok)
	require.Equal(t, "x", got.Title)

	_, ok = routecoordinator.ToRouteResponse[response]([]byte(`{"title":"x"}`), errors.New("failed"))
	require.False(t, ok)

	_, ok = routecoordinator.ToRouteResponse[response]([]byte(`[1,2]`), nil)
	require.False(t, ok)

	_, ok = routecoordinator.ToRouteResponse[response](nil, nil)
	require.False(t, ok)
}

func TestResponseGet(t *testing.T) {
	r := routecoordinator.Response(`{"title":"x","owner":{"name":"Ana"},"tags":["a","b"]}`)

	require.Equal(t, "x", r.Get("title").String())
	require.Equal(t, "Ana", r.Get("owner.name").String())
	require.Equal(t, int64(2), r.Get("tags.#").Int())
	require.False(t, r.Get("missing").Exists())
}
