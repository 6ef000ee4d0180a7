package smooth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSchedule(t *testing.T) {
	s := DefaultSchedule()
	require.NoError(t, s.Validate())
	assert.Len(t, s, 7)
	assert.Equal(t, Step{Degree: 0, Sigma: 6}, s[0])
	assert.Equal(t, Step{Degree: 6, Sigma: 3}, s[6])
}

func TestScheduleUpto(t *testing.T) {
	s := DefaultSchedule()

	steps, err := s.Upto(3)
	require.NoError(t, err)
	assert.Equal(t, []Step{{0, 6}, {1, 5}, {2, 5}, {3, 5}}, steps)

	steps[0].Sigma = 99
	assert.Equal(t, 6.0, s[0].Sigma, "Upto must not alias the schedule")

	for _, deg := range []int{-1, 7, 10} {
		_, err := s.Upto(deg)
		assert.ErrorIs(t, err, ErrConfig, "max degree %d", deg)
	}
}

func TestScheduleFromMap(t *testing.T) {
	s, err := ScheduleFromMap(map[int]float64{2: 5, 0: 6, 1: 5})
	require.NoError(t, err)
	assert.Equal(t, Schedule{{0, 6}, {1, 5}, {2, 5}}, s)

	tests := []struct {
		name string
		m    map[int]float64
	}{
		{"empty", map[int]float64{}},
		{"gap", map[int]float64{0: 6, 2: 5}},
		{"not from zero", map[int]float64{1: 5, 2: 5}},
		{"zero sigma", map[int]float64{0: 6, 1: 0}},
		{"negative sigma", map[int]float64{0: -1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ScheduleFromMap(tc.m)
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestNewEngineValidatesEagerly(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"degree beyond schedule", []Option{WithMaxDegree(7)}},
		{"short schedule", []Option{WithSchedule(Schedule{{0, 6}, {1, 5}})}},
		{"negative degree", []Option{WithMaxDegree(-1)}},
		{"zero loops", []Option{WithLoops(0)}},
		{"bad phase sigma", []Option{WithPhaseClipping(0, 3)}},
		{"bad phase loops", []Option{WithPhaseClipping(3, 0)}},
		{"negative solution", []Option{WithSolution(-1)}},
		{"broken schedule", []Option{WithSchedule(Schedule{{0, 6}, {2, 5}}), WithMaxDegree(1)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewEngine(tc.opts...)
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestNewEngineDefaults(t *testing.T) {
	e, err := NewEngine(nil, WithWorkers(0))
	require.NoError(t, err)

	cfg := e.Config()
	assert.Equal(t, 3, cfg.MaxDegree)
	assert.Equal(t, 3, cfg.Loops)
	assert.Equal(t, -1, cfg.Reference)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.Len(t, e.steps, 4)

	e, err = NewEngine(WithMaxDegree(6))
	require.NoError(t, err)
	assert.Len(t, e.steps, 7)
}

func TestCoPolarizations(t *testing.T) {
	assert.Equal(t, []int{0, 3}, CoPolarizations(4))
	assert.Equal(t, []int{0, 1}, CoPolarizations(2))
	assert.Equal(t, []int{0}, CoPolarizations(1))
}
