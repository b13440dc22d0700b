package domain

import (
	"fmt"
	"time"
)

// DateFormat layout календарной даты (YYYY-MM-DD)
const DateFormat = "2006-01-02"

// Day represents a calendar date in YYYY-MM-DD string form.
// The fixed-width zero-padded form guarantees that lexicographic string
// comparison matches chronological order, so ranges can be compared
// without parsing.
type Day string

// NewDay возвращает локальную календарную дату момента t
// Часовой пояс не конвертируется: берётся дата в локации самого t
func NewDay(t time.Time) Day {
	return Day(t.Format(DateFormat))
}

// ParseDay валидирует строку и возвращает Day
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return "", fmt.Errorf("domain: invalid day %q: %w", s, err)
	}
	// time.Parse принимает и ненормализованные строки вида "2024-6-05",
	// поэтому сверяем канонический вид
	if t.Format(DateFormat) != s {
		return "", fmt.Errorf("domain: day %q is not in YYYY-MM-DD form", s)
	}
	return Day(s), nil
}

// IsZero returns true if the day is unset
func (d Day) IsZero() bool {
	return d == ""
}

// Before reports whether d is chronologically before other
func (d Day) Before(other Day) bool {
	return string(d) < string(other)
}

// After reports whether d is chronologically after other
func (d Day) After(other Day) bool {
	return string(d) > string(other)
}

// Time парсит Day в time.Time (полночь, UTC)
func (d Day) Time() (time.Time, error) {
	return time.Parse(DateFormat, string(d))
}

// AddDays возвращает дату, сдвинутую на n дней
// Для некорректного Day возвращает пустое значение
func (d Day) AddDays(n int) Day {
	t, err := d.Time()
	if err != nil {
		return ""
	}
	return NewDay(t.AddDate(0, 0, n))
}

// Weekday возвращает день недели
// Для некорректного Day возвращает time.Sunday
func (d Day) Weekday() time.Weekday {
	t, err := d.Time()
	if err != nil {
		return time.Sunday
	}
	return t.Weekday()
}

func (d Day) String() string {
	return string(d)
}
