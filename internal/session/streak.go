package session

// streakMilestones are the first run lengths worth celebrating. Past the
// last one every multiple of streakStep counts.
var streakMilestones = []int{3, 5, 10}

const streakStep = 5

// nextStreakMilestone returns the smallest milestone above current.
func nextStreakMilestone(current int) int {
	for _, m := range streakMilestones {
		if m > current {
			return m
		}
	}
	return (current/streakStep + 1) * streakStep
}

// recordStreak extends or resets the run of correct answers.
func recordStreak(state *SessionState, correct bool) {
	if !correct {
		state.Streak = 0
		return
	}
	state.Streak++
	state.BestStreak = max(state.BestStreak, state.Streak)
}

// StreakMilestone reports whether the last answer completed a run worth
// celebrating.
func StreakMilestone(state *SessionState) bool {
	return state.Streak > 0 && nextStreakMilestone(state.Streak-1) == state.Streak
}
