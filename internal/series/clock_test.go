package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestClock_TicksAndStops(t *testing.T) {
	expiry := time.Now().Add(time.Hour).UnixMilli()
	clock := NewClock(expiry, 10*time.Millisecond, zap.NewNop())

	initial := clock.Remaining()
	assert.False(t, initial.Expired)

	time.Sleep(50 * time.Millisecond)
	later := clock.Remaining()
	assert.LessOrEqual(t, later.Ms, initial.Ms)

	clock.Stop()
	frozen := clock.Remaining()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, frozen, clock.Remaining(), "no ticks after Stop")
}

func TestClock_PastExpiryStaysExpired(t *testing.T) {
	clock := NewClock(time.Now().Add(-time.Minute).UnixMilli(), 10*time.Millisecond, zap.NewNop())
	defer clock.Stop()

	assert.True(t, clock.Remaining().Expired)
	time.Sleep(30 * time.Millisecond)
	assert.True(t, clock.Remaining().Expired)
	assert.Equal(t, int64(0), clock.Remaining().Ms)
}

func TestClock_StopTwice(t *testing.T) {
	clock := NewClock(0, time.Second, zap.NewNop())
	clock.Stop()
	clock.Stop() // must not panic
}
