package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryLimiter(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Should allow the burst then refill over the window", func(t *testing.T) {
		m := newMemoryLimiter(2, time.Minute)
		assert.True(t, m.check("a", start).allowed)
		assert.True(t, m.check("a", start).allowed)
		assert.False(t, m.check("a", start).allowed)

		assert.True(t, m.check("a", start.Add(30*time.Second)).allowed)
	})

	t.Run("Should sweep idle clients without a background goroutine", func(t *testing.T) {
		m := newMemoryLimiter(5, time.Minute)
		m.check("idle", start)
		m.check("busy", start)
		assert.Equal(t, 2, m.size())

		later := start.Add(memorySweepInterval)
		m.check("busy", later)
		assert.Equal(t, 1, m.size())
	})
}
