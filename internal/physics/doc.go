// Package physics is the numerical core of the spring pendulum: a bob on a
// massless spring hanging from a fixed pivot, with linear drag.
//
// The phase state is (x, theta, x', theta') where x is the spring's
// deviation from its rest length L0 and theta is measured from the downward
// vertical. Nothing in this package keeps time, touches a display or owns
// parameters; callers pass [Params] in on every call.
//
//	s := physics.InitialState(p, 0.1)
//	s = physics.ApplyCollision(physics.Integrate(s, dt, p), p)
//	bob := tr.ToCartesian(s, p)
//
// [SpringPendulum] adapts the equations to [dynamo.System] so any stepper in
// the integrators package can drive them.
package physics
