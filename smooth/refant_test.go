package smooth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-bandpass/calsol"
)

func filledBandpass(t *testing.T, nant, nchan, npol int) *calsol.Bandpass {
	t.Helper()

	bp, err := calsol.New(1, nant, nchan, npol)
	require.NoError(t, err)

	for i := range bp.Data {
		bp.Data[i] = 1 + 0.5i
	}

	return bp
}

func flagAntenna(bp *calsol.Bandpass, ant int) {
	block := bp.Antenna(0, ant)
	for i := range block {
		block[i] = calsol.NaN()
	}
}

func TestSelectReference(t *testing.T) {
	bp := filledBandpass(t, 3, 50, 2)
	bp.Set(0, 0, 17, 1, calsol.NaN())
	flagAntenna(bp, 1)

	assert.InDelta(t, 0.01, InvalidFraction(bp, 0, 0), 1e-12)
	assert.Equal(t, 1.0, InvalidFraction(bp, 0, 1))
	assert.Equal(t, 0.0, InvalidFraction(bp, 0, 2))

	ref, err := SelectReference(bp, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, ref)
}

func TestSelectReferenceCountsInf(t *testing.T) {
	bp := filledBandpass(t, 2, 4, 1)
	bp.Set(0, 0, 0, 0, complex(math.Inf(1), 0))

	ref, err := SelectReference(bp, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, ref)
}

func TestSelectReferenceTiesPickLowestIndex(t *testing.T) {
	bp := filledBandpass(t, 4, 10, 4)
	flagAntenna(bp, 0)
	bp.Set(0, 1, 3, 0, calsol.NaN())
	bp.Set(0, 2, 7, 3, calsol.NaN())
	bp.Set(0, 3, 7, 3, calsol.NaN())

	ref, err := SelectReference(bp, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, ref)
}

func TestSelectReferenceAllInvalid(t *testing.T) {
	bp := filledBandpass(t, 3, 8, 4)
	for ant := range 3 {
		flagAntenna(bp, ant)
	}

	_, err := SelectReference(bp, 0)
	assert.ErrorIs(t, err, ErrNoReferenceAntenna)
}

func TestSelectReferenceBadSolution(t *testing.T) {
	_, err := SelectReference(filledBandpass(t, 1, 1, 1), 1)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestCheckReference(t *testing.T) {
	bp := filledBandpass(t, 3, 8, 2)
	flagAntenna(bp, 1)
	bp.Set(0, 2, 0, 0, calsol.NaN())

	assert.NoError(t, CheckReference(bp, 0, 0))
	assert.NoError(t, CheckReference(bp, 0, 2), "partially flagged reference is allowed")
	assert.ErrorIs(t, CheckReference(bp, 0, 1), ErrNoReferenceAntenna)
	assert.ErrorIs(t, CheckReference(bp, 0, 3), ErrConfig)
	assert.ErrorIs(t, CheckReference(bp, 0, -1), ErrConfig)
	assert.ErrorIs(t, CheckReference(bp, 2, 0), ErrConfig)
}
