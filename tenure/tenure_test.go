package tenure_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/warp/rescisao-engine/tenure"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestDays(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"same day counts once", date(2025, time.March, 10), date(2025, time.March, 10), 1},
		{"leap year span of 400 days", date(2024, time.January, 1), date(2025, time.February, 3), 400},
		{"full non-leap year", date(2025, time.January, 1), date(2025, time.December, 31), 365},
		{"end before start", date(2025, time.March, 10), date(2025, time.March, 8), -1},
		{
			"time of day is ignored",
			time.Date(2025, time.March, 10, 23, 0, 0, 0, time.UTC),
			time.Date(2025, time.March, 11, 1, 0, 0, 0, time.UTC),
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tenure.Days(tt.start, tt.end))
		})
	}
}

func TestWholeMonths(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"thirteen months", date(2024, time.January, 1), date(2025, time.February, 3), 13},
		{"half month rounds up", date(2024, time.January, 10), date(2024, time.March, 25), 3},
		{"fourteen days do not round", date(2024, time.January, 10), date(2024, time.March, 24), 2},
		{"negative day difference", date(2024, time.January, 20), date(2024, time.March, 5), 2},
		{"floored at zero", date(2025, time.May, 1), date(2025, time.January, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tenure.WholeMonths(tt.start, tt.end))
		})
	}
}

func TestCompletedYears(t *testing.T) {
	assert.Equal(t, 0, tenure.CompletedYears(0))
	assert.Equal(t, 0, tenure.CompletedYears(364))
	assert.Equal(t, 1, tenure.CompletedYears(365))
	assert.Equal(t, 1, tenure.CompletedYears(400))
	assert.Equal(t, 2, tenure.CompletedYears(730))
	assert.Equal(t, 0, tenure.CompletedYears(-5))
}

func TestNoticeDays(t *testing.T) {
	tests := []struct {
		days int
		want int
	}{
		{100, 30},
		{400, 30},  // one completed year adds nothing
		{730, 33},  // second year adds three days
		{3650, 57}, // ten years
		{365 * 21, 90},
		{365 * 30, 90}, // capped
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tenure.NoticeDays(tt.days), "tenure %d days", tt.days)
	}
}

func TestFractions(t *testing.T) {
	admission := date(2024, time.January, 1)
	termination := date(2025, time.February, 3)

	assert.Equal(t, 1, tenure.VacationFraction(admission, termination))
	assert.Equal(t, 2, tenure.ThirteenthFraction(termination))
	assert.Equal(t, 12, tenure.ThirteenthFraction(date(2025, time.December, 31)))
	assert.Equal(t, 0, tenure.VacationFraction(date(2024, time.March, 1), date(2025, time.March, 1)))
}

func TestRemainingDays(t *testing.T) {
	assert.Equal(t, 30, tenure.RemainingDays(date(2025, time.March, 1), date(2025, time.March, 30)))
	assert.Equal(t, 0, tenure.RemainingDays(date(2025, time.March, 30), date(2025, time.March, 1)))
}
