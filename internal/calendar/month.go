package calendar

import (
	"time"

	"github.com/m04kA/RentMarket-Client/internal/domain"
)

// DaysPerWeek количество колонок сетки месяца
const DaysPerWeek = 7

// MonthMatrix строит сетку месяца, выровненную по неделям (понедельник - первая
// колонка). Дни вне месяца заполняются пустым domain.Day. Результат детерминирован
// для пары (year, month) и используется только для отрисовки.
func MonthMatrix(year int, month time.Month) [][]domain.Day {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// time.Weekday считает воскресенье нулём, сдвигаем к понедельнику
	offset := (int(first.Weekday()) + 6) % DaysPerWeek

	cells := make([]domain.Day, 0, offset+daysInMonth)
	for i := 0; i < offset; i++ {
		cells = append(cells, "")
	}
	for day := 1; day <= daysInMonth; day++ {
		cells = append(cells, domain.NewDay(time.Date(year, month, day, 0, 0, 0, 0, time.UTC)))
	}
	for len(cells)%DaysPerWeek != 0 {
		cells = append(cells, "")
	}

	weeks := make([][]domain.Day, 0, len(cells)/DaysPerWeek)
	for i := 0; i < len(cells); i += DaysPerWeek {
		weeks = append(weeks, cells[i:i+DaysPerWeek])
	}
	return weeks
}

// Cursor отображаемый месяц календаря
// Запрещает навигацию в месяцы раньше месяца, содержащего minDay
type Cursor struct {
	year  int
	month time.Month

	minYear  int
	minMonth time.Month
}

// NewCursor создает курсор, установленный на месяц дня minDay
// Некорректный minDay трактуется как текущая дата
func NewCursor(minDay domain.Day) Cursor {
	t, err := minDay.Time()
	if err != nil {
		t = time.Now()
	}
	return Cursor{
		year:     t.Year(),
		month:    t.Month(),
		minYear:  t.Year(),
		minMonth: t.Month(),
	}
}

// Year возвращает год отображаемого месяца
func (c Cursor) Year() int { return c.year }

// Month возвращает отображаемый месяц
func (c Cursor) Month() time.Month { return c.month }

// Next сдвигает курсор на месяц вперёд
func (c Cursor) Next() Cursor {
	t := time.Date(c.year, c.month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	c.year, c.month = t.Year(), t.Month()
	return c
}

// CanPrev сообщает, разрешён ли переход на месяц назад
// Листать в прошлое дальше месяца с minDay нельзя
func (c Cursor) CanPrev() bool {
	return c.year > c.minYear || (c.year == c.minYear && c.month > c.minMonth)
}

// Prev сдвигает курсор на месяц назад, если это разрешено
func (c Cursor) Prev() Cursor {
	if !c.CanPrev() {
		return c
	}
	t := time.Date(c.year, c.month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	c.year, c.month = t.Year(), t.Month()
	return c
}
