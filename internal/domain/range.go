package domain

// DateRange represents a selected start/end date pair.
// Invariant: if both ends are set, Start <= End. The range is created empty
// and normalized on every mutation by the calendar selector.
type DateRange struct {
	Start Day
	End   Day
}

// IsEmpty returns true if no date is selected
func (r DateRange) IsEmpty() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// IsComplete returns true if both ends of the range are set
func (r DateRange) IsComplete() bool {
	return !r.Start.IsZero() && !r.End.IsZero()
}

// Contains проверяет включающую принадлежность дня диапазону
// Для неполного диапазона совпадением считается только сам Start
func (r DateRange) Contains(d Day) bool {
	if r.Start.IsZero() {
		return false
	}
	if r.End.IsZero() {
		return d == r.Start
	}
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days разворачивает диапазон в список покрытых дней (включительно)
func (r DateRange) Days() []Day {
	if !r.IsComplete() {
		return nil
	}
	days := make([]Day, 0, 8)
	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		if d.IsZero() {
			// Некорректная дата внутри диапазона - прерываем разворачивание
			break
		}
		days = append(days, d)
	}
	return days
}
