package series

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseExpiry(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int64
	}{
		{
			name: "numeric-epoch-ms",
			raw:  `1760054400000`,
			want: 1760054400000,
		},
		{
			name: "rfc3339-string",
			raw:  `"2025-10-10T00:00:00Z"`,
			want: 1760054400000,
		},
		{
			name: "datetime-without-zone",
			raw:  `"2025-10-10T00:00:00"`,
			want: 1760054400000,
		},
		{
			name: "bare-date",
			raw:  `"2025-10-10"`,
			want: 1760054400000,
		},
		{
			name: "garbage-string",
			raw:  `"not a date"`,
			want: 0,
		},
		{
			name: "null",
			raw:  `null`,
			want: 0,
		},
		{
			name: "object",
			raw:  `{"ts":1}`,
			want: 0,
		},
		{
			name: "empty",
			raw:  ``,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseExpiry(json.RawMessage(tt.raw))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountdownAt_FutureExpiry(t *testing.T) {
	// 2 days, 3 hours, 4 minutes, 5 seconds ahead.
	var now int64 = 1_000_000_000_000
	rem := int64(2*24*3600+3*3600+4*60+5) * 1000

	r := CountdownAt(now+rem, now)
	assert.False(t, r.Expired)
	assert.Equal(t, 2, r.Days)
	assert.Equal(t, 3, r.Hours)
	assert.Equal(t, 4, r.Minutes)
	assert.Equal(t, 5, r.Seconds)
	assert.Equal(t, rem, r.Ms)
	assert.Equal(t, "2d 3h 4m 5s", r.String())
}

func TestCountdownAt_PastExpiry(t *testing.T) {
	// Expiry already behind the first sample: expired, no negative countdown.
	r := CountdownAt(1000, 5000)
	assert.True(t, r.Expired)
	assert.Equal(t, int64(0), r.Ms)
	assert.Equal(t, "0d 0h 0m 0s", r.String())
}

func TestCountdownAt_ZeroExpiry(t *testing.T) {
	// Unparseable expiry resolves to 0 and must read as expired.
	r := CountdownAt(0, 1_000_000)
	assert.True(t, r.Expired)
	assert.Equal(t, 0, r.Days)
	assert.Equal(t, 0, r.Seconds)
}

func TestCountdownAt_ExactExpiry(t *testing.T) {
	r := CountdownAt(5000, 5000)
	assert.True(t, r.Expired)
	assert.Equal(t, int64(0), r.Ms)
}
