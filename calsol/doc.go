// Package calsol reads, writes and masks complex bandpass calibration
// solutions.
//
// A solution is a 4-D complex array indexed by (solution interval, antenna,
// channel, polarization). NaN and Inf samples mark data that the solver
// flagged or could not solve for.
//
// Supported containers:
//
//   - [FormatAOCal]: the binary solution file written by the AO "calibrate"
//     solver (.bin). The solver stores inverse gains; [ReadAOCal] converts
//     them to gains on load.
//   - [FormatNumPy]: a NumPy .npy array of complex128 values (.npy). This is
//     the container smoothed solutions are written to.
//
// # Usage
//
//	raw, err := calsol.Load("cal.bin")
//	mask, err := calsol.ParseChannelMask("10-20,30,45-50")
//	flagged, err := calsol.ApplyChannelFlags(raw, mask)
package calsol
