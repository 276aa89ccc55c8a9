package series

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

const (
	msPerSecond int64 = 1000
	msPerMinute       = 60 * msPerSecond
	msPerHour         = 60 * msPerMinute
	msPerDay          = 24 * msPerHour
)

// ParseExpiry resolves the raw expiry value into epoch milliseconds.
// A finite JSON number is taken as milliseconds as-is; a string is parsed as
// a date. Anything unparseable yields 0, which downstream forces the expired
// state with a zero countdown.
func ParseExpiry(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		if math.IsNaN(num) || math.IsInf(num, 0) {
			return 0
		}
		return int64(num)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return parseDateMs(s)
	}

	return 0
}

// parseDateMs accepts RFC 3339 timestamps plus the bare forms the execution
// service emits for datetimes without zone or time parts.
func parseDateMs(s string) int64 {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}

// Remaining is the derived countdown state at a given instant.
type Remaining struct {
	Days    int   `json:"days"`
	Hours   int   `json:"hours"`
	Minutes int   `json:"minutes"`
	Seconds int   `json:"seconds"`
	Ms      int64 `json:"remaining_ms"`
	Expired bool  `json:"expired"`
}

// CountdownAt computes the countdown for an expiry at a wall-clock sample,
// both in epoch milliseconds. A past or zero expiry goes straight to the
// expired state; the remaining time never goes negative.
func CountdownAt(expiryMs, nowMs int64) Remaining {
	rem := expiryMs - nowMs
	if rem < 0 {
		rem = 0
	}

	return Remaining{
		Days:    int(rem / msPerDay),
		Hours:   int((rem % msPerDay) / msPerHour),
		Minutes: int((rem % msPerHour) / msPerMinute),
		Seconds: int((rem % msPerMinute) / msPerSecond),
		Ms:      rem,
		Expired: rem <= 0,
	}
}

// String renders the countdown as "2d 3h 4m 5s".
func (r Remaining) String() string {
	return fmt.Sprintf("%dd %dh %dm %ds", r.Days, r.Hours, r.Minutes, r.Seconds)
}
