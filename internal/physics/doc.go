// Package physics provides concrete vector fields for the simulator.
//
// Each field has the [dynamo.Field] signature and reads its parameters from
// the opaque Params value:
//
//   - [Linear]: dx/dt = A x, with A a gonum mat.Matrix
//   - [Rotation]: the unit circle flow, closed orbits of period 2π
//   - [VanDerPol]: relaxation oscillator with a limit cycle
//   - [Pendulum]: point pendulum, closed swings when undamped
//   - [Duffing]: unforced cubic oscillator, a double well by default
//   - [Lorenz]: three-dimensional chaotic flow
//
// [Linear] with [RotationMatrix](1) is the same flow as [Rotation]; the
// first form is what configuration files produce. Parameter structs that
// implement [Tunable] accept named overrides through [ApplyParams].
package physics
