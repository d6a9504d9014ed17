// Package month содержит календарную арифметику для месячных окон бюджета.
package month

import (
	"time"
)

// Normalize приводит произвольную дату к первому дню её месяца в UTC.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Current возвращает первый день текущего месяца по переданным часам.
func Current(now time.Time) time.Time {
	return Normalize(now.UTC())
}

// Window возвращает полуоткрытое окно [start, nextStart) для месяца,
// которому принадлежит monthStart. Переход декабрь → январь обрабатывается
// календарной арифметикой time.AddDate.
func Window(monthStart time.Time) (time.Time, time.Time) {
	start := Normalize(monthStart)
	return start, start.AddDate(0, 1, 0)
}
