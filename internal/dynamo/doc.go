// Package dynamo provides the core primitives shared by the integration
// and termination engine.
//
//   - [State]: vector representing system state
//   - [Field]: vector field dX/dt = f(X, p) with an opaque [Params] value
//   - [Stepper]: fixed-step integrator interface
//   - [Point]: 2-D sample consumed by rendering adapters
//
// # Example
//
//	rk := integrators.NewRK4()
//	s := sim.New(physics.Linear, rk)
//	result, err := s.Run(ctx, dynamo.State{1, 0}, physics.RotationMatrix(), cfg)
//
// # Errors
//
// Failures of a caller-supplied [Field] are returned unchanged. The
// adaptive controller reports [ErrAdaptiveStep] and caller mistakes wrap
// [ErrPrecondition].
package dynamo
