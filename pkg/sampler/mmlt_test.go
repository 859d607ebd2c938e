package sampler

import (
	"math/rand"
	"testing"

	"github.com/davidtemplin/mmlt/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSampler(seed int64, largeStepProbability float64) *MmltSampler {
	config := DefaultConfig()
	config.LargeStepProbability = largeStepProbability
	return NewMmltSampler(config, rand.New(rand.NewSource(seed)))
}

// drawAll draws count values from every stream, the way a path generation does
func drawAll(s *MmltSampler, count int) []float64 {
	var values []float64
	for stream := 0; stream < core.StreamCount; stream++ {
		s.StartStream(stream)
		for i := 0; i < count; i++ {
			values = append(values, s.Sample(0, 1))
		}
	}
	return values
}

func snapshot(s *MmltSampler) []sample {
	return append([]sample(nil), s.samples...)
}

func TestMmltSampler_RejectRestoresState(t *testing.T) {
	for _, p := range []float64{0, 0.3, 1} {
		s := newTestSampler(42, p)
		drawAll(s, 4)

		for i := 0; i < 50; i++ {
			before := snapshot(s)
			iteration := s.Iteration()

			s.Mutate()
			drawAll(s, 4)
			s.Reject()

			require.Equal(t, iteration, s.Iteration(), "p=%v", p)
			after := s.samples[:len(before)]
			for j := range before {
				assert.Equal(t, before[j].value, after[j].value, "p=%v coordinate %d", p, j)
				assert.Equal(t, before[j].modifiedAt, after[j].modifiedAt, "p=%v coordinate %d", p, j)
			}

			// Advance the chain so the next round starts from a different state
			s.Mutate()
			drawAll(s, 4)
			s.Accept()
		}
	}
}

func TestMmltSampler_RejectRestoresNewCoordinates(t *testing.T) {
	s := newTestSampler(3, 0.5)
	drawAll(s, 2)

	s.Mutate()
	drawAll(s, 5) // Creates coordinates that did not exist before
	grown := snapshot(s)
	s.Reject()

	for i := range grown {
		assert.NotEqual(t, s.Iteration()+1, s.samples[i].modifiedAt, "coordinate %d still marked as modified", i)
	}
}

func TestMmltSampler_ReplayIsDeterministic(t *testing.T) {
	a := newTestSampler(99, 0.3)
	b := newTestSampler(99, 0.3)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Mutate(), b.Mutate())
		assert.Equal(t, drawAll(a, 3), drawAll(b, 3))
		if i%3 == 0 {
			a.Reject()
			b.Reject()
		} else {
			a.Accept()
			b.Accept()
		}
	}
}

func TestMmltSampler_StreamInterleaving(t *testing.T) {
	s := newTestSampler(1, 0.3)

	s.StartStream(core.CameraStream)
	camera0 := s.Sample(0, 1)
	camera1 := s.Sample(0, 1)
	s.StartStream(core.TechniqueStream)
	technique0 := s.Sample(0, 1)

	require.Len(t, s.samples, core.StreamCount*1+core.CameraStream+1)
	assert.Equal(t, camera0, s.samples[core.CameraStream].value)
	assert.Equal(t, camera1, s.samples[core.StreamCount+core.CameraStream].value)
	assert.Equal(t, technique0, s.samples[core.TechniqueStream].value)

	// Restarting a stream replays the same coordinates at iteration 0
	s.StartStream(core.CameraStream)
	assert.Equal(t, camera0, s.Sample(0, 1))
}

func TestMmltSampler_StreamIndexOutOfRangePanics(t *testing.T) {
	s := newTestSampler(1, 0.3)
	assert.Panics(t, func() { s.StartStream(core.StreamCount) })
	assert.Panics(t, func() { s.StartStream(-1) })
}

func TestMmltSampler_SampleRange(t *testing.T) {
	s := newTestSampler(5, 0.3)
	for i := 0; i < 200; i++ {
		s.Mutate()
		s.StartStream(core.LightStream)
		for j := 0; j < 10; j++ {
			v := s.Sample(2, 5)
			assert.GreaterOrEqual(t, v, 2.0)
			assert.Less(t, v, 5.0)
		}
		s.Accept()
	}
}

func TestMmltSampler_SmallStepStaysLocal(t *testing.T) {
	s := newTestSampler(11, 0)
	before := drawAll(s, 3)

	assert.Equal(t, SmallStep, s.Mutate())
	after := drawAll(s, 3)

	for i := range before {
		delta := after[i] - before[i]
		// Account for wrapping around the unit interval
		if delta > 0.5 {
			delta -= 1
		} else if delta < -0.5 {
			delta += 1
		}
		assert.InDelta(t, 0, delta, 0.1, "coordinate %d", i)
	}
}

func TestMmltSampler_AcceptRecordsLargeStepOnly(t *testing.T) {
	s := newTestSampler(2, 0)
	s.Mutate()
	s.Accept()
	assert.Equal(t, 0, s.largeStepAt)

	s.config.LargeStepProbability = 1
	assert.Equal(t, LargeStep, s.Mutate())
	s.Accept()
	assert.Equal(t, 2, s.largeStepAt)

	assert.Equal(t, LargeStep, s.Mutate())
	s.Reject()
	assert.Equal(t, 2, s.largeStepAt)
	assert.Equal(t, 2, s.Iteration())
}

func TestMmltSampler_LazyCatchUp(t *testing.T) {
	s := newTestSampler(8, 1)
	drawAll(s, 1)

	// Large step that touches only the technique stream
	s.Mutate()
	s.StartStream(core.TechniqueStream)
	s.Sample(0, 1)
	s.Accept()
	require.Equal(t, 1, s.largeStepAt)

	// A small step that reaches the camera stream first snaps it to the large step
	s.config.LargeStepProbability = 0
	s.Mutate()
	s.StartStream(core.CameraStream)
	s.Sample(0, 1)

	x := s.samples[core.CameraStream]
	assert.Equal(t, 1, x.backupModifiedAt)
	assert.Equal(t, 2, x.modifiedAt)

	s.Reject()
	assert.Equal(t, 1, s.samples[core.CameraStream].modifiedAt)
}
