package seed

import (
	"time"
)

// Source supplies randomness and realistic fake values. *gofakeit.Faker
// satisfies it; tests plug in a scripted source.
type Source interface {
	// IntRange returns a uniform int in [min, max].
	IntRange(min, max int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
	Name() string
	PetName() string
	DateRange(start, end time.Time) time.Time
}

// ── Random helpers ──

func randomFrom(src Source, pool []string) string {
	return pool[src.IntRange(0, len(pool)-1)]
}

// randomID picks uniformly with replacement. Callers guarantee ids is non-empty.
func randomID(src Source, ids []int64) int64 {
	return ids[src.IntRange(0, len(ids)-1)]
}

func chance(src Source, p float64) bool {
	return src.Float64() < p
}

// randomDateBetween returns start plus a whole number of days within the
// range plus a random second of that day. Ranges shorter than a day
// collapse to start.
func randomDateBetween(src Source, start, end time.Time) time.Time {
	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return start
	}
	offset := time.Duration(src.IntRange(0, days))*24*time.Hour +
		time.Duration(src.IntRange(0, 86400-1))*time.Second
	return start.Add(offset)
}

// yearsBefore truncates to midnight so birthdates stay date-only.
func yearsBefore(now time.Time, years int) time.Time {
	t := now.AddDate(-years, 0, 0)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func shuffleIDs(src Source, ids []int64) {
	for i := len(ids) - 1; i > 0; i-- {
		j := src.IntRange(0, i)
		ids[i], ids[j] = ids[j], ids[i]
	}
}
