package dcc

// Timestamp is a microsecond instant of a track voltage edge. Comparisons
// between adjacent timestamps are done with unsigned subtraction so that a
// single wrap of the counter is tolerated, since every difference this
// package cares about is bounded by maxStretchedZeroHalfBitPeriod (12ms),
// far below the range of a uint32.
type Timestamp uint32

// elapsed returns the unsigned duration from -> to, tolerating one wrap.
func elapsed(from, to Timestamp) Timestamp {
	return to - from
}

// Half-bit timing bands, in microseconds, from NMRA S-9.2.1 as carried by
// spec.md §4.2. The *Received bands are what this package classifies
// against; the *Sent bands are transmitter-side constants, out of scope for
// a receiver, but kept here (grounded on original_source/logic/src/okdcc/logic.c)
// since they explain why the received bands are wider than what a
// compliant transmitter would ever produce.
const (
	minOneHalfBitSentPeriod     Timestamp = 55
	maxOneHalfBitSentPeriod     Timestamp = 61
	maxOneHalfBitSentPeriodDiff Timestamp = 3

	minZeroHalfBitSentPeriod Timestamp = 95
	maxZeroHalfBitSentPeriod Timestamp = 9900

	minOneHalfBitReceivedPeriod     Timestamp = 52
	maxOneHalfBitReceivedPeriod     Timestamp = 64
	maxOneHalfBitReceivedPeriodDiff Timestamp = 6

	minZeroHalfBitReceivedPeriod Timestamp = 90
	maxZeroHalfBitReceivedPeriod Timestamp = 10000

	maxStretchedZeroHalfBitPeriod Timestamp = 12000
)
