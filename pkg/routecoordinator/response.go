package routecoordinator

import (
	"github.com/tidwall/gjson"

	"github.com/BrandonKowalski/routecoordinator/pkg/routecoordinator/codec"
)

// Response is a raw route result in the JSON codec.
type Response []byte

// Get returns the value at a dot-separated path, e.g. "owner.name".
func (r Response) Get(path string) gjson.Result {
	return codec.Field(r, path)
}

// ToRouteResponse decodes a raw completion result into R with the JSON codec.
// It returns false for failures and for bytes that do not fit R.
func ToRouteResponse[R any](data []byte, err error) (R, bool) {
	var zero R
	if err != nil {
		return zero, false
	}
	v, err := codec.DecodeFromRaw[R](codec.JSON{}, data)
	if err != nil {
		return zero, false
	}
	return v, true
}
