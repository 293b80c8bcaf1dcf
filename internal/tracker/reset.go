package tracker

import "github.com/sgrier/stacker/internal/schedule"

// ResetDay performs the day-boundary rollover: completion and skip flags go
// back to pending everywhere, and any streak that was still waiting on a full
// completion is zeroed. Streaks already credited earlier in the day survive;
// the completion ledger keeps today's entries so re-completing after a reset
// cannot double-credit.
func (t *Tracker) ResetDay() {
	now := t.now()

	for ri := range t.snap.Routines {
		r := &t.snap.Routines[ri]

		// A routine breaks its chain when any of its tracked stacks was
		// due but left unfinished.
		for _, s := range r.Stacks {
			if schedule.IsDue(s, now) && schedule.ShouldTrackStreak(s) && !IsStackCompleted(s) {
				r.Streak = 0
				break
			}
		}

		for si := range r.Stacks {
			s := &r.Stacks[si]
			due := schedule.IsDue(s, now)

			if due && schedule.ShouldTrackStreak(s) &&
				(!allActionsCompleted(*s) || anyActionSkipped(*s)) {
				s.Streak = 0
			}

			for ai := range s.Actions {
				a := &s.Actions[ai]
				if a.Skipped || (due && !a.Completed) {
					a.Streak = 0
				}
				a.Completed = false
				a.Skipped = false
			}
		}
	}

	t.snap.Ledger.Prune(t.today())
}
