package smooth

import (
	"fmt"
	"slices"
)

// Step is one stage of the amplitude fit: a polynomial degree and the
// clipping threshold in standard deviations used at that degree.
type Step struct {
	Degree int
	Sigma  float64
}

// Schedule lists amplitude fit steps by increasing degree. Entry i must have
// degree i.
type Schedule []Step

// DefaultSchedule clips loosely at low degree and tightens as the model
// gains freedom.
func DefaultSchedule() Schedule {
	return Schedule{
		{Degree: 0, Sigma: 6},
		{Degree: 1, Sigma: 5},
		{Degree: 2, Sigma: 5},
		{Degree: 3, Sigma: 5},
		{Degree: 4, Sigma: 3},
		{Degree: 5, Sigma: 3},
		{Degree: 6, Sigma: 3},
	}
}

// ScheduleFromMap builds a schedule from a degree → sigma table. The degrees
// must be exactly 0..len(m)-1.
func ScheduleFromMap(m map[int]float64) (Schedule, error) {
	degrees := make([]int, 0, len(m))
	for d := range m {
		degrees = append(degrees, d)
	}

	slices.Sort(degrees)

	s := make(Schedule, len(degrees))
	for i, d := range degrees {
		s[i] = Step{Degree: d, Sigma: m[d]}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks that the schedule is non-empty, contiguous from degree 0
// and uses positive thresholds.
func (s Schedule) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: empty amplitude schedule", ErrConfig)
	}

	for i, step := range s {
		if step.Degree != i {
			return fmt.Errorf("%w: schedule entry %d has degree %d", ErrConfig, i, step.Degree)
		}

		if !(step.Sigma > 0) {
			return fmt.Errorf("%w: schedule degree %d has sigma %g", ErrConfig, step.Degree, step.Sigma)
		}
	}

	return nil
}

// Upto returns the steps for degrees 0..maxDegree.
func (s Schedule) Upto(maxDegree int) ([]Step, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	if maxDegree < 0 || maxDegree+1 > len(s) {
		return nil, fmt.Errorf("%w: max degree %d needs %d schedule entries, have %d",
			ErrConfig, maxDegree, maxDegree+1, len(s))
	}

	return slices.Clone(s[:maxDegree+1]), nil
}
