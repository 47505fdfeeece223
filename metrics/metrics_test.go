package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/sigstream"
	"github.com/AnatoleLucet/sigstream/timer"
)

func TestInstrument(t *testing.T) {
	t.Run("counts live emissions", func(t *testing.T) {
		c, err := NewCollector(prometheus.NewRegistry())
		require.NoError(t, err)

		s := sigstream.New[int]()
		Instrument(c, "input", s)

		s.Emit(1)
		s.Emit(2)

		assert.Equal(t, 2.0, testutil.ToFloat64(c.emissions.WithLabelValues("input")))
		assert.Greater(t, testutil.ToFloat64(c.lastEmission.WithLabelValues("input")), 0.0)
	})

	t.Run("counts replays separately", func(t *testing.T) {
		c, err := NewCollector(prometheus.NewRegistry())
		require.NoError(t, err)

		s := sigstream.NewSequence(1, 2, 3)
		Instrument(c, "seq", s)
		s.Emit(4)

		assert.Equal(t, 3.0, testutil.ToFloat64(c.replays.WithLabelValues("seq")))
		assert.Equal(t, 1.0, testutil.ToFloat64(c.emissions.WithLabelValues("seq")))
	})

	t.Run("unsubscribing stops counting", func(t *testing.T) {
		c, err := NewCollector(prometheus.NewRegistry())
		require.NoError(t, err)

		s := sigstream.New[string]()
		sub := Instrument(c, "s", s)
		s.Emit("a")
		sub.Unsubscribe()
		s.Emit("b")

		assert.Equal(t, 1.0, testutil.ToFloat64(c.emissions.WithLabelValues("s")))
	})
}

func TestThrottleOption(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	clock := timer.NewManual(time.Time{})
	s := sigstream.NewThrottled[int](time.Second,
		sigstream.WithScheduler(clock),
		c.ThrottleOption("a"),
	)

	s.Emit(1)
	s.Emit(2)
	clock.Advance(time.Second)

	assert.Equal(t, 1, testutil.CollectAndCount(c.coalesced, "sigstream_throttle_coalesced_values"))

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, family := range families {
		if family.GetName() != "sigstream_throttle_coalesced_values" {
			continue
		}
		found = true

		h := family.GetMetric()[0].GetHistogram()
		assert.Equal(t, uint64(1), h.GetSampleCount())
		assert.Equal(t, 2.0, h.GetSampleSum())
	}
	assert.True(t, found)
}

func TestNewCollectorTwice(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := NewCollector(reg)
	require.NoError(t, err)

	_, err = NewCollector(reg)
	assert.Error(t, err)
}
