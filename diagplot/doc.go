// Package diagplot renders per-unit smoothing diagnostics as PNG plots.
//
// A [Sink] plugs into [smooth.WithDiagnostics] and writes, for every
// (antenna, polarization) unit, an amplitude plot (raw samples, clipped
// samples, polynomial fit) and a phase plot (unwrapped relative phase and
// its linear fit, in degrees).
package diagplot
