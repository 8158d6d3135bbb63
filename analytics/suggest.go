package analytics

import (
	"math/rand"
	"sort"
	"strconv"
)

// SuggestionSeed keeps the suggested restaurants stable across restarts.
const SuggestionSeed = 42

// Suggest picks n distinct ids with a seeded shuffle and returns them sorted.
func Suggest(ids []string, n int, seed int64) []string {
	if n <= 0 {
		return []string{}
	}
	pool := append([]string(nil), ids...)
	sortIDs(pool)
	if n > len(pool) {
		n = len(pool)
	}
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	out := pool[:n]
	sortIDs(out)
	return out
}

// sortIDs orders numeric ids by value and puts them before other ids.
func sortIDs(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, errA := strconv.ParseInt(ids[i], 10, 64)
		b, errB := strconv.ParseInt(ids[j], 10, 64)
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return ids[i] < ids[j]
	})
}
