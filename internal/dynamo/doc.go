// Package dynamo provides the numerical primitives the spring pendulum is
// built on.
//
// The package defines the fundamental interfaces and types for integrating
// ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: fixed-step numerical integrator interface
//   - [Hamiltonian]: systems that can report their mechanical energy
//   - [Configurable]: named, live-editable parameter sets
//
// # Example
//
//	dyn := physics.NewSpringPendulum()
//	integ := integrators.NewRK4()
//	next := integ.Step(dyn, x, 0, 0.016)
//
// # Thread Safety
//
// Integrators keep scratch buffers between calls and are NOT safe for
// concurrent use. Allocate one per goroutine.
package dynamo
