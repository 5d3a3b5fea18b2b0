// Package di provides the dependency injection runtime shared by all commands.
//
// Commands receive a *Runtime and call Invoke with a handler. Each invocation
// builds a fresh injector, applies the registered modules, runs the handler,
// and shuts the injector down afterwards.
package di

import (
	"github.com/samber/do/v2"
)

// Injector aliases the samber/do injector so callers do not import do directly.
type Injector = do.Injector

// Module registers one or more dependencies on an injector.
type Module func(Injector) error

// Runtime holds the modules applied to every injector it creates.
type Runtime struct {
	modules []Module
}

// New constructs a runtime from the given modules.
func New(modules ...Module) *Runtime {
	return &Runtime{modules: modules}
}

// Invoke builds an injector, applies all modules, and runs the handler.
// The injector is shut down when the handler returns.
func (r *Runtime) Invoke(handler func(Injector) error) error {
	injector := do.New()

	defer func() { _ = injector.Shutdown() }()

	for _, module := range r.modules {
		err := module(injector)
		if err != nil {
			return err
		}
	}

	return handler(injector)
}
