package core

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// Weekdays maps time.Weekday indexes (Sunday = 0) to the day names stored on lessons.
var Weekdays = [7]string{
	"Воскресенье",
	"Понедельник",
	"Вторник",
	"Среда",
	"Четверг",
	"Пятница",
	"Суббота",
}

// IsWeekday reports whether name is one of Weekdays.
func IsWeekday(name string) bool {
	for _, day := range Weekdays {
		if day == name {
			return true
		}
	}
	return false
}

// Clock converts instants to the wall time the schedule is written in.
//
// With a Location the conversion follows the zone rules (DST included).
// Without one, the UTC instant is shifted by Offset, which is how the schedule was historically kept.
type Clock struct {
	Location *time.Location
	Offset   time.Duration
	Now      func() time.Time
}

// NewClock returns a Clock for the schedule config. An unknown timezone name is an error.
func NewClock(conf ScheduleConfig) (Clock, error) {
	clock := Clock{
		Offset: time.Duration(conf.HourOffset) * time.Hour,
		Now:    time.Now,
	}
	if conf.Timezone != "" {
		loc, err := time.LoadLocation(conf.Timezone)
		if err != nil {
			return Clock{}, errors.Wrap(err, fmt.Sprintf("loading timezone %q", conf.Timezone))
		}
		clock.Location = loc
	}
	return clock, nil
}

// Local returns t as schedule wall time.
func (c Clock) Local(t time.Time) time.Time {
	if c.Location != nil {
		return t.In(c.Location)
	}
	return t.UTC().Add(c.Offset)
}

// Current returns the current instant.
func (c Clock) Current() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Today returns the current schedule wall time.
func (c Clock) Today() time.Time {
	return c.Local(c.Current())
}

// Weekday returns the day name of t.
func Weekday(t time.Time) string {
	return Weekdays[t.Weekday()]
}

// HHMM formats t as a zero-padded 24h "HH:MM".
func HHMM(t time.Time) string {
	return t.Format("15:04")
}
