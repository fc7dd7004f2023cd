// Package loader provides the feature loading system for the HTTP server.
//
// Each feature implements the Feature interface and is registered with a Manager, which
// loads the enabled ones onto the Fiber router:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Features such as history can then be developed and tested in isolation.
package loader
