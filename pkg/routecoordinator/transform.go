package routecoordinator

import (
	"log/slog"
	"reflect"

	"github.com/BrandonKowalski/routecoordinator/pkg/routecoordinator/codec"
)

// Transform decodes the coordinator's parameter mapping into T.
//
// It returns ErrParameterNotProvided when the coordinator has no mapping and an
// ErrDecoding error when the mapping does not fit T. It is a package-level
// function because Go methods cannot take type parameters.
func Transform[T any](c *Coordinator) (T, error) {
	var zero T
	if c.parameter == nil {
		c.log().Debug("route parameter not provided", slog.String("path", c.Path()))
		return zero, newRouteError(ErrParameterNotProvided, c.Path(), nil)
	}

	v, err := codec.DecodeFromMapping[T](c.routeCodec(), c.parameter)
	if err != nil {
		c.log().Debug("route parameter decode failed",
			slog.String("path", c.Path()),
			slog.String("type", typeName[T]()),
			slog.String("error", err.Error()),
		)
		return zero, newRouteError(ErrDecoding, c.Path(), err)
	}
	return v, nil
}

// TransformedParameter is Transform for coordinators that expect parameters.
// On failure the error goes to the completion and ok is false, so callers only
// need to check ok.
func TransformedParameter[T any](c *Coordinator) (v T, ok bool) {
	v, err := Transform[T](c)
	if err != nil {
		_ = c.Fail(err)
		return v, false
	}
	return v, true
}

// Transformable is a Coordinator that declares its parameter shape T.
type Transformable[T any] struct {
	Coordinator
}

// NewTransformable creates a Transformable holding params and completion.
func NewTransformable[T any](params Params, completion Completion) Transformable[T] {
	return Transformable[T]{Coordinator: NewCoordinator(params, completion)}
}

// TransformedParameter decodes the parameters into T, see the package-level function.
func (t *Transformable[T]) TransformedParameter() (T, bool) {
	return TransformedParameter[T](&t.Coordinator)
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
