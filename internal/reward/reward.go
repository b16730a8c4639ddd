// Package reward maps completed tasks to experience points and tracks
// the accumulated total.
package reward

import (
	"errors"

	"github.com/jaydenyuan326/todo/internal/task"
)

// ErrAlreadyAwarded reports a second attempt to credit XP for the same
// record.
var ErrAlreadyAwarded = errors.New("xp already awarded")

// DefaultLevelThreshold is the XP needed per level.
const DefaultLevelThreshold = 500

// FocusBonusXP is credited when a focus timer session finishes.
const FocusBonusXP = 10

// XPValue returns the experience awarded for completing a task of the
// given priority.
func XPValue(p task.Priority) int {
	switch p {
	case task.PriorityHigh:
		return 100
	case task.PriorityMedium:
		return 50
	case task.PriorityLow:
		return 20
	}
	return 20
}

// AwardFor computes the XP delta for completing rec. It fails with
// ErrAlreadyAwarded if the record has been credited before; the caller
// is responsible for setting XPAwarded once it applies the delta.
func AwardFor(rec task.Record) (int, error) {
	if rec.XPAwarded {
		return 0, ErrAlreadyAwarded
	}
	return XPValue(rec.Priority), nil
}

// Ledger is the explicit XP aggregate threaded through the app. The
// level is derived, never stored.
type Ledger struct {
	TotalXP   int
	Threshold int
}

// NewLedger returns a ledger with the given XP total. A non-positive
// threshold falls back to the default.
func NewLedger(totalXP, threshold int) Ledger {
	if threshold <= 0 {
		threshold = DefaultLevelThreshold
	}
	return Ledger{TotalXP: totalXP, Threshold: threshold}
}

// Level derives the current level from the total.
func (g Ledger) Level() int {
	return 1 + g.TotalXP/g.Threshold
}

// Award credits rec's XP value to the ledger and marks the record so
// it cannot be credited twice. It returns the delta applied.
func (g *Ledger) Award(rec *task.Record) (int, error) {
	delta, err := AwardFor(*rec)
	if err != nil {
		return 0, err
	}
	rec.XPAwarded = true
	g.TotalXP += delta
	return delta, nil
}

// AddBonus credits flat bonus XP, such as a finished focus session.
func (g *Ledger) AddBonus(xp int) {
	if xp > 0 {
		g.TotalXP += xp
	}
}
