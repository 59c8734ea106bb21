// Package sim drives the spring pendulum once per display frame and hands
// control back and forth between the user's pointer and the integrator.
//
// A [Session] holds all mutable state: the phase state, the live
// parameters, the drag gesture and the readout. A [Controller] binds a
// Session to a [Scheduler] and a [Surface]; hosts translate their native
// events into Controller calls and implement Surface to draw each [Frame].
//
// Nothing in this package is safe for concurrent use. Hosts deliver input
// and frame callbacks from a single goroutine.
package sim
