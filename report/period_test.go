package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriodKind(t *testing.T) {
	for _, s := range []string{"week", "month", "year"} {
		kind, err := ParsePeriodKind(s)
		require.NoError(t, err)
		assert.Equal(t, PeriodKind(s), kind)
	}

	_, err := ParsePeriodKind("day")
	assert.Error(t, err)
	_, err = ParsePeriodKind("")
	assert.Error(t, err)
}

func TestDefaultPeriodCount(t *testing.T) {
	assert.Equal(t, 4, DefaultPeriodCount(PeriodWeek))
	assert.Equal(t, 12, DefaultPeriodCount(PeriodMonth))
	assert.Equal(t, 5, DefaultPeriodCount(PeriodYear))
}

func TestPeriodRange_Week(t *testing.T) {
	// Wednesday 2026-08-26; the containing week starts Sunday 2026-08-23.
	now := time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC)

	start, end := PeriodRange(now, PeriodWeek, 0)
	assert.Equal(t, time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), end)

	// One week back
	start, end = PeriodRange(now, PeriodWeek, 1)
	assert.Equal(t, time.Date(2026, 8, 16, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), end)
}

func TestPeriodRange_WeekOnSunday(t *testing.T) {
	// A Sunday is the start of its own week.
	now := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	start, _ := PeriodRange(now, PeriodWeek, 0)
	assert.Equal(t, now, start)
}

func TestPeriodRange_Month(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	start, end := PeriodRange(now, PeriodMonth, 0)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), end)

	// Crossing a year boundary going back
	start, end = PeriodRange(now, PeriodMonth, 3)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestPeriodRange_Year(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	start, end := PeriodRange(now, PeriodYear, 0)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), end)

	start, end = PeriodRange(now, PeriodYear, 2)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestPeriodRange_HalfOpenAndContiguous(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	for _, kind := range []PeriodKind{PeriodWeek, PeriodMonth, PeriodYear} {
		// Each period's end is the next period's start: no gap, no overlap,
		// so a row stamped exactly on a boundary lands in exactly one bucket.
		for back := 1; back <= 5; back++ {
			_, end := PeriodRange(now, kind, back)
			start, _ := PeriodRange(now, kind, back-1)
			assert.Equal(t, start, end, "kind=%s back=%d", kind, back)
		}
	}
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "Week 1", PeriodLabel(PeriodWeek, time.Now(), 0))
	assert.Equal(t, "Week 4", PeriodLabel(PeriodWeek, time.Now(), 3))

	mar := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Mar", PeriodLabel(PeriodMonth, mar, 7))

	y := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024", PeriodLabel(PeriodYear, y, 0))
}
