// Package loader registers feature modules on the Fiber app.
//
// A feature bundles its handler, service and routes behind the Feature
// interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Manager.LoadAll loads the enabled features in registration order and stops
// at the first failure. The criticality, report, evidence and integrity
// features only meet in cmd/start.go.
package loader
