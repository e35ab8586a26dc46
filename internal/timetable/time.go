package timetable

import (
	"strconv"
	"strings"

	"github.com/Aplkalex/cuhk-scheduler-sub000/internal/models"
)

// ParseClock converts an "HH:MM" string to minutes since midnight. Slot
// shape is validated by the catalog loader before reaching the engine, so
// malformed input degrades to zero rather than erroring here.
func ParseClock(raw string) int {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return 0
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return hours*60 + minutes
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	return pad(h) + ":" + pad(m)
}

func pad(v int) string {
	if v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

// SlotsOverlap reports whether two weekly slots collide. Intervals are
// half-open: a slot ending exactly when another starts does not conflict.
func SlotsOverlap(a, b models.TimeSlot) bool {
	if a.Day != b.Day {
		return false
	}
	return a.Start < b.End && b.Start < a.End
}

// SectionsConflict reports whether any slot pair between two sections overlaps.
func SectionsConflict(a, b *models.Section) bool {
	for _, slotA := range a.Slots {
		for _, slotB := range b.Slots {
			if SlotsOverlap(slotA, slotB) {
				return true
			}
		}
	}
	return false
}

type conflictKey struct {
	first  string
	second string
}

// conflictCache memoises pairwise section conflict checks for the duration
// of one generation run. The same pair is probed repeatedly across
// backtracking branches; keys are order-normalised so (a,b) and (b,a) share
// an entry. Not safe for concurrent use: each run owns its cache.
type conflictCache struct {
	known map[conflictKey]bool
}

func newConflictCache() *conflictCache {
	return &conflictCache{known: make(map[conflictKey]bool)}
}

func (c *conflictCache) conflicts(a, b models.SelectedCourse) bool {
	ka, kb := a.Fingerprint(), b.Fingerprint()
	if kb < ka {
		ka, kb = kb, ka
	}
	key := conflictKey{first: ka, second: kb}
	if hit, ok := c.known[key]; ok {
		return hit
	}
	hit := SectionsConflict(a.Section, b.Section)
	c.known[key] = hit
	return hit
}
