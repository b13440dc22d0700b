package calendar

import (
	"time"

	"github.com/m04kA/RentMarket-Client/internal/domain"
)

// DayState производное состояние одного дня сетки, вычисляется на каждую отрисовку
type DayState struct {
	Day     domain.Day
	Blocked bool // день занят или в прошлом, клики игнорируются
	InRange bool
	IsRangeStart bool
	IsRangeEnd   bool
}

// ChangeFunc вызывается на каждую мутацию выбора
// Диапазон всегда нормализован: Start <= End, End пустой для незавершённого выбора
type ChangeFunc func(r domain.DateRange)

// Selector реализует выбор диапазона дат двумя кликами.
//
// Правила клика по дню d (в порядке применения):
//  1. d занят или раньше minDay - клик игнорируется;
//  2. выбор пуст или уже завершён - начинается новый диапазон {d, ""};
//  3. иначе d закрывает диапазон; если d раньше Start, роли меняются местами,
//     так что инвариант Start <= End сохраняется при любом порядке кликов.
type Selector struct {
	minDay   domain.Day
	blocked  map[domain.Day]struct{}
	rng      domain.DateRange
	onChange ChangeFunc
}

// NewSelector создает селектор диапазона
// minDay - первый кликабельный день (сегодня); blocked - множество занятых дней,
// принадлежит вызывающему и читается на каждый клик; onChange может быть nil
func NewSelector(minDay domain.Day, blocked map[domain.Day]struct{}, onChange ChangeFunc) *Selector {
	if blocked == nil {
		blocked = map[domain.Day]struct{}{}
	}
	return &Selector{
		minDay:   minDay,
		blocked:  blocked,
		onChange: onChange,
	}
}

// Range возвращает текущий выбранный диапазон
func (s *Selector) Range() domain.DateRange {
	return s.rng
}

// SetRange синхронизирует выбор со значением родителя (one-way reconciliation)
// Колбэк не вызывается: источник значения и так родитель
func (s *Selector) SetRange(r domain.DateRange) {
	s.rng = r
}

// IsBlocked проверяет, заблокирован ли день для выбора
func (s *Selector) IsBlocked(d domain.Day) bool {
	if d.Before(s.minDay) {
		return true
	}
	_, occupied := s.blocked[d]
	return occupied
}

// Click обрабатывает клик по дню и возвращает true, если выбор изменился
func (s *Selector) Click(d domain.Day) bool {
	if d.IsZero() || s.IsBlocked(d) {
		return false
	}

	switch {
	case s.rng.Start.IsZero() || s.rng.IsComplete():
		// Новый выбор: любой третий клик сбрасывает завершённый диапазон
		s.rng = domain.DateRange{Start: d}
	case d.Before(s.rng.Start):
		// Второй клик раньше первого - даты меняются ролями
		s.rng = domain.DateRange{Start: d, End: s.rng.Start}
	default:
		s.rng.End = d
	}

	if s.onChange != nil {
		s.onChange(s.rng)
	}
	return true
}

// DayState вычисляет флаги отображения дня для текущего выбора
func (s *Selector) DayState(d domain.Day) DayState {
	if d.IsZero() {
		return DayState{}
	}
	st := DayState{
		Day:     d,
		Blocked: s.IsBlocked(d),
	}
	if s.rng.Contains(d) {
		st.InRange = true
		st.IsRangeStart = d == s.rng.Start
		st.IsRangeEnd = s.rng.IsComplete() && d == s.rng.End
	}
	return st
}

// MonthStates строит сетку месяца с вычисленным состоянием каждого дня
// Пустые ячейки сетки остаются нулевыми DayState
func (s *Selector) MonthStates(year int, month time.Month) [][]DayState {
	matrix := MonthMatrix(year, month)
	weeks := make([][]DayState, len(matrix))
	for i, row := range matrix {
		weeks[i] = make([]DayState, len(row))
		for j, d := range row {
			weeks[i][j] = s.DayState(d)
		}
	}
	return weeks
}
