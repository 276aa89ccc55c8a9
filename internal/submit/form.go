package submit

// Leverage bounds enforced on every submission.
const (
	MinLeverage = 1
	MaxLeverage = 5
)

// EntryForm holds the user's order entry inputs. Size is cleared
// optimistically when a submission starts and restored if it fails, so the
// user never re-submits a stale amount by accident.
type EntryForm struct {
	// Size is the margin amount to commit, in account currency.
	Size float64
	// Leverage is the chosen multiplier, clamped to [MinLeverage, MaxLeverage].
	Leverage int
	// Category is the selected outcome title, e.g. "YES" or a range bucket.
	Category string
}

// clampLeverage forces a leverage choice into the allowed band.
func clampLeverage(l int) int {
	if l < MinLeverage {
		return MinLeverage
	}
	if l > MaxLeverage {
		return MaxLeverage
	}
	return l
}
