// Package fit provides the robust one-dimensional fitting primitives used by
// bandpass smoothing.
//
//   - [Polyfit], [Polyval]: least-squares polynomial fit and evaluation.
//     Coefficients are ordered from the highest power down.
//   - [FitIterative]: sigma-clipped polynomial fit. Samples whose residual
//     exceeds sigma standard deviations are replaced by NaN and the fit is
//     repeated.
//   - [Unwrap]: removes period jumps from a sequence of circular values
//     such as phases.
//
// NaN marks a missing sample everywhere in this package. Inputs are never
// modified.
package fit
