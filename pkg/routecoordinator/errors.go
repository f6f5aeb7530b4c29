package routecoordinator

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/routecoordinator/pkg/routecoordinator/codec"
)

// Sentinel errors shared by the registry, the manager and coordinators.
var (
	// ErrEncoding indicates a typed parameter or result could not be serialized.
	ErrEncoding = codec.ErrEncoding

	// ErrDecoding indicates parameters or a result did not match the requested type.
	ErrDecoding = codec.ErrDecoding

	// ErrNoMatchingRoute indicates no coordinator is registered for a path.
	ErrNoMatchingRoute = errors.New("routecoordinator: no matching route")

	// ErrRouteAlreadyExists indicates a second registration for the same path.
	// Registration panics with it.
	ErrRouteAlreadyExists = errors.New("routecoordinator: route already exists")

	// ErrNotAcceptableRoutePath is reserved; nothing returns it yet.
	ErrNotAcceptableRoutePath = errors.New("routecoordinator: route path not acceptable")

	// ErrParameterNotProvided indicates a coordinator asked for parameters it was not given.
	ErrParameterNotProvided = errors.New("routecoordinator: parameter not provided")

	// ErrNotAcceptableParameter is reserved; nothing returns it yet.
	ErrNotAcceptableParameter = errors.New("routecoordinator: parameter not acceptable")

	// ErrCompletionRepeated indicates a completion was invoked after it already fired.
	ErrCompletionRepeated = errors.New("routecoordinator: completion already called")

	// ErrHandlerPanicked indicates Execute panicked and Recover turned it into an error.
	ErrHandlerPanicked = errors.New("routecoordinator: route handler panicked")
)

type errorKind struct {
	err         error
	id          string // i18n message ID
	description string
}

var kinds = []errorKind{
	{ErrEncoding, "EncodingError", "Encoding error"},
	{ErrDecoding, "DecodingError", "Decoding error"},
	{ErrNoMatchingRoute, "NoMatchingRoute", "No matching route"},
	{ErrRouteAlreadyExists, "RouteAlreadyExists", "Route already exists"},
	{ErrNotAcceptableRoutePath, "NotAcceptableRoutePath", "Route path not acceptable"},
	{ErrParameterNotProvided, "ParameterNotProvided", "Parameter not provided"},
	{ErrNotAcceptableParameter, "NotAcceptableParameter", "Parameter not acceptable"},
	{ErrCompletionRepeated, "CompletionRepeated", "Completion already called"},
	{ErrHandlerPanicked, "HandlerPanicked", "Route handler panicked"},
}

// RouteError describes a routing failure for a specific path.
type RouteError struct {
	Kind       error  // One of the sentinel errors above
	Path       string // Path that was being registered or routed
	Suggestion string // Closest registered path, set for ErrNoMatchingRoute
	Err        error  // Underlying cause, if any
}

func (e *RouteError) Error() string {
	var msg string
	switch {
	case e.Err == nil:
		msg = e.Kind.Error()
	case errors.Is(e.Err, e.Kind):
		// codec errors already carry the kind
		msg = e.Err.Error()
	default:
		msg = e.Kind.Error() + ": " + e.Err.Error()
	}

	msg += fmt.Sprintf(" [path %q]", e.Path)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *RouteError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newRouteError(kind error, path string, cause error) *RouteError {
	return &RouteError{Kind: kind, Path: path, Err: cause}
}

// IsNoMatchingRoute checks if an error reports an unregistered path.
func IsNoMatchingRoute(err error) bool {
	return errors.Is(err, ErrNoMatchingRoute)
}

// IsDecodingError checks if an error reports a parameter or result decode failure.
func IsDecodingError(err error) bool {
	return errors.Is(err, ErrDecoding)
}

// Describe returns the short English description of err's kind, such as
// "No matching route". Errors outside the taxonomy return err.Error().
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if k, ok := kindOf(err); ok {
		return k.description
	}
	return err.Error()
}

func messageID(err error) (string, bool) {
	k, ok := kindOf(err)
	if !ok {
		return "", false
	}
	return k.id, true
}

func kindOf(err error) (errorKind, bool) {
	var routeErr *RouteError
	if errors.As(err, &routeErr) {
		err = routeErr.Kind
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k, true
		}
	}
	return errorKind{}, false
}
