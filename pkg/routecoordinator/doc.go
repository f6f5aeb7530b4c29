// Package routecoordinator dispatches path strings to coordinators with typed
// parameters flowing in and typed results flowing back.
//
// A coordinator is any type that embeds Coordinator and defines Execute. Its
// Factory is registered under a unique path; routing to that path builds a
// fresh coordinator, hands it the parameters and a completion, assigns the
// presenter and runs Execute. Parameters travel as an untyped Params mapping
// and results as raw bytes in the manager's codec, so callers and coordinators
// only share path strings and data shapes.
//
// # Basic Usage
//
//	type detailInput struct {
//	    ID string `json:"id"`
//	}
//
//	type detailResult struct {
//	    Saved bool `json:"saved"`
//	}
//
//	type detailCoordinator struct {
//	    routecoordinator.Transformable[detailInput]
//	}
//
//	func (c *detailCoordinator) Execute() {
//	    in, ok := c.TransformedParameter()
//	    if !ok {
//	        return // the completion already has the error
//	    }
//	    stack, _ := navigation.From(c.Presenter())
//	    stack.Push(navigation.Titled("Detail " + in.ID))
//	    _ = c.Succeed(detailResult{Saved: true})
//	}
//
//	m, err := routecoordinator.New(routecoordinator.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//
//	m.Register(routecoordinator.NewFactory("/detail", func(p routecoordinator.Params, done routecoordinator.Completion) routecoordinator.Route {
//	    return &detailCoordinator{routecoordinator.NewTransformable[detailInput](p, done)}
//	}))
//
//	routecoordinator.RouteWithFor(m, "/detail", detailInput{ID: "42"}, stack,
//	    func(res detailResult, err error) {
//	        if routecoordinator.IsNoMatchingRoute(err) {
//	            // ...
//	        }
//	    })
//
// # Completions
//
// A completion fires at most once per route call, synchronously inside Execute
// or later from any goroutine. A coordinator that never completes is not an
// error. Unregistered paths complete immediately with ErrNoMatchingRoute and
// build nothing. Result bytes that do not fit the caller's type arrive as
// ErrDecoding; any other error reaches the caller unchanged.
//
// # Middleware
//
// Use wraps every Execute with Middleware. Logging and Recover are provided
// here; tracing lives in the otelroute package.
package routecoordinator
