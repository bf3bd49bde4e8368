package dcc

/********************************************************************************
 *
 * Purpose:	Convert a stream of track voltage edge timestamps into a
 *		stream of logical bits by measuring the two half-bit
 *		periods bracketing each candidate bit cell.
 *
 *******************************************************************************/

// Status is the outcome of feeding one unit of input (a timestamp to the
// Classifier, or a bit to the Framer) into a streaming state machine.
type Status int

const (
	// StatusContinue means more input is needed before a result is ready.
	StatusContinue Status = iota
	// StatusFailure means this attempt did not produce a valid result,
	// but the state machine has recovered (or reset) and is ready for
	// more input.
	StatusFailure
	// StatusSuccess means a result (a bit, a frame) was produced.
	StatusSuccess
)

// Classifier turns timestamps into bits by measuring two consecutive
// half-bit periods at a time. It retains up to two timestamps between
// calls to Feed.
type Classifier struct {
	retained    [2]Timestamp
	retainedLen int
}

// NewClassifier returns a Classifier ready to receive its first timestamp.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Feed supplies the next edge timestamp. With fewer than two retained
// timestamps it always returns StatusContinue. Once two are retained, it
// classifies the pair of half-bit periods they form with t:
//
//   - On success, the classified bit is returned and the retained window
//     slides to just [t] (size 1) — t becomes the lone retained timestamp
//     for the next bit cell.
//   - On failure, the window slides by one instead of clearing: the older
//     retained timestamp is dropped and t is appended, so the next input
//     completes a new candidate pair starting from the timestamp that
//     didn't fail. This is deliberate (spec §9's preserved "slide, don't
//     discard" behaviour) — it lets a single noisy or misaligned edge
//     resync against the next edge instead of losing data.
func (c *Classifier) Feed(t Timestamp) (bit byte, status Status) {
	if c.retainedLen < 2 {
		c.retained[c.retainedLen] = t
		c.retainedLen++
		return 0, StatusContinue
	}

	t0, t1 := c.retained[0], c.retained[1]
	p1 := elapsed(t0, t1)
	p2 := elapsed(t1, t)

	b, ok := classifyPeriods(p1, p2)
	if !ok {
		c.retained[0] = t1
		c.retained[1] = t
		return 0, StatusFailure
	}

	c.retained[0] = t
	c.retainedLen = 1
	return b, StatusSuccess
}

// classifyPeriods implements spec.md §4.2's classification table.
// Inputs strictly between the "one" and "zero" received bands (the gap
// (64, 90)) are rejected rather than guessed, per spec.md §9.
func classifyPeriods(p1, p2 Timestamp) (bit byte, ok bool) {
	if p1 >= minOneHalfBitReceivedPeriod && p1 <= maxOneHalfBitReceivedPeriod &&
		absDiff(p1, p2) <= maxOneHalfBitReceivedPeriodDiff {
		return 1, true
	}
	if p1 >= minZeroHalfBitReceivedPeriod && p1 <= maxZeroHalfBitReceivedPeriod &&
		p2 >= minZeroHalfBitReceivedPeriod && p2 <= maxZeroHalfBitReceivedPeriod &&
		p1+p2 <= maxStretchedZeroHalfBitPeriod {
		return 0, true
	}
	return 0, false
}

func absDiff(a, b Timestamp) Timestamp {
	if a > b {
		return a - b
	}
	return b - a
}
