package draft

import "math/rand/v2"

// TurnOwnerRank resolves which draft rank owns the pick at the given cursor
// position. Odd rounds run 1..capacity; even rounds run capacity..1, so the
// member who picks last in one round picks first in the next.
func TurnOwnerRank(round, pickIndex, capacity int) int {
	if round%2 == 1 {
		return pickIndex + 1
	}
	return capacity - pickIndex
}

// Advance returns the cursor position after one accepted pick, wrapping to
// the next round when the current one is exhausted.
func Advance(round, pickIndex, capacity int) (nextRound, nextPickIndex int) {
	if pickIndex+1 == capacity {
		return round + 1, 0
	}
	return round, pickIndex + 1
}

// IsComplete reports whether every roster slot has been filled.
func IsComplete(totalPicks, capacity, totalRounds int) bool {
	return totalPicks >= capacity*totalRounds
}

// NextOverallPick is the 1-based league-wide number the next accepted pick
// will take.
func NextOverallPick(totalPicks int) int {
	return totalPicks + 1
}

// ShuffleRanks assigns a uniformly random permutation of 1..len(userIDs)
// (Fisher-Yates via rand.Shuffle).
func ShuffleRanks(userIDs []string) []RankAssignment {
	shuffled := make([]string, len(userIDs))
	copy(shuffled, userIDs)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	out := make([]RankAssignment, 0, len(shuffled))
	for i, userID := range shuffled {
		out = append(out, RankAssignment{UserID: userID, Rank: i + 1})
	}
	return out
}
