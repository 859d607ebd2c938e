package sampler

// SequenceSampler replays a fixed list of values, cycling when it runs out.
// Streams are ignored. It is used to drive path construction deterministically.
type SequenceSampler struct {
	values []float64
	next   int
}

// NewSequenceSampler creates a sampler that returns the given values in order
func NewSequenceSampler(values ...float64) *SequenceSampler {
	if len(values) == 0 {
		values = []float64{0.5}
	}
	return &SequenceSampler{values: values}
}

// StartStream is a no-op
func (s *SequenceSampler) StartStream(index int) {}

// Sample returns the next value scaled into [min, max)
func (s *SequenceSampler) Sample(min, max float64) float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return min + v*(max-min)
}

// Drawn returns how many values have been consumed
func (s *SequenceSampler) Drawn() int {
	return s.next
}
