package types

import "errors"

var (
	// ErrSizeNotPositive is returned when a submission is attempted with a
	// zero or negative entry size. This is an input-boundary guard, not a
	// server-side validation.
	ErrSizeNotPositive = errors.New("entry size must be a positive number")

	// ErrNoMarkets is returned when the markets endpoint yields an empty
	// sequence; the terminal displays the first group only.
	ErrNoMarkets = errors.New("no market groups available")

	// ErrEmptyOrderID is returned when a refresh or cancel is requested for
	// an entry whose order id was never assigned. Such entries can never be
	// matched against an exchange response.
	ErrEmptyOrderID = errors.New("order id is empty")

	// ErrOrderNotFound is returned when a cancel targets an order id with no
	// ledger entry.
	ErrOrderNotFound = errors.New("order not found in ledger")

	// ErrOrderNotResting is returned when a cancel targets an entry that is
	// not in the resting state.
	ErrOrderNotResting = errors.New("order is not resting")

	// ErrSubmissionsSuspended is returned when the submission circuit
	// breaker is open.
	ErrSubmissionsSuspended = errors.New("order submissions temporarily suspended")
)
