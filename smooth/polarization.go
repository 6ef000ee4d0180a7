package smooth

// CoPolarizations returns the polarization indices that are smoothed. For
// a four-polarization solution (XX, XY, YX, YY) these are 0 and 3; the
// cross terms carry no calibration information.
func CoPolarizations(npol int) []int {
	if npol == 4 {
		return []int{0, 3}
	}

	pols := make([]int, npol)
	for i := range pols {
		pols[i] = i
	}

	return pols
}
