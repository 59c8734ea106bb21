// Package analysis inspects recorded pendulum motion.
//
//   - [NewSpectrum]: windowed power spectrum and dominant frequency of one
//     coordinate, to hold against [physics.NaturalFrequencies]
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//   - [NewPhasePortrait]: 2D phase space trajectories rendered as text
//
// # Chaos Detection
//
// The spring pendulum is regular at small amplitudes and chaotic once the
// swinging and bouncing modes exchange energy strongly:
//
//	lambda := analysis.LyapunovExponent(sys, integ, x0, dt, duration, 1e-8)
//	if lambda > 0 {
//	    // System is chaotic
//	}
package analysis
