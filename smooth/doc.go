// Package smooth turns a noisy, partially flagged bandpass solution into a
// smooth gain curve per antenna and polarization.
//
// For every antenna and co-polarization the [Engine] fits
//
//   - the gain amplitude with an escalating sequence of sigma-clipped
//     polynomial fits (see [Schedule]), and
//   - the phase relative to a reference antenna with a sigma-clipped line
//     after unwrapping,
//
// and recombines them as amp·exp(i·phase). Cross-polarization terms of a
// four-polarization solution are written as NaN.
//
// # Usage
//
//	engine, err := smooth.NewEngine(smooth.WithMaxDegree(3))
//	smoothed, ref, err := engine.Smooth(ctx, raw)
package smooth
