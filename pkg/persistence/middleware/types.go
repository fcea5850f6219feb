package middleware

import "github.com/canopyhq/canopy/pkg/ports"

// Middleware allows wrapping a SurfaceStore to add behavior.
type Middleware func(ports.SurfaceStore) ports.SurfaceStore

// Chain applies middlewares outermost-first: Chain(store, a, b) wraps store
// with b, then a, so a observes every call first.
func Chain(store ports.SurfaceStore, middlewares ...Middleware) ports.SurfaceStore {
	for i := len(middlewares) - 1; i >= 0; i-- {
		store = middlewares[i](store)
	}
	return store
}
