package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type DayName string

const (
	Monday    DayName = "monday"
	Tuesday   DayName = "tuesday"
	Wednesday DayName = "wednesday"
	Thursday  DayName = "thursday"
	Friday    DayName = "friday"
	Saturday  DayName = "saturday"
	Sunday    DayName = "sunday"
)

// WeekDays is the canonical order of a WeekSchedule.
var WeekDays = []DayName{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayNames = map[time.Weekday]DayName{
	time.Sunday:    Sunday,
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
}

func DayOf(weekday time.Weekday) DayName {
	return weekdayNames[weekday]
}

type DaySchedule struct {
	Day       DayName `json:"day"`
	OpenTime  string  `json:"open_time"`
	CloseTime string  `json:"close_time"`
	IsClosed  bool    `json:"is_closed"`
}

type WeekSchedule struct {
	BranchID string        `json:"branch_id"`
	Days     []DaySchedule `json:"days"`
}

func DefaultWeekSchedule(branchID string) WeekSchedule {
	days := make([]DaySchedule, 0, len(WeekDays))
	for _, day := range WeekDays {
		days = append(days, DaySchedule{Day: day, OpenTime: "09:00", CloseTime: "22:00"})
	}
	return WeekSchedule{BranchID: branchID, Days: days}
}

// ParseClock converts "HH:MM" into minutes since midnight.
func ParseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: time %q is not HH:MM", ErrInvalidSchedule, value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: hour in %q", ErrInvalidSchedule, value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: minute in %q", ErrInvalidSchedule, value)
	}
	return hours*60 + minutes, nil
}

func (w WeekSchedule) Day(day DayName) (DaySchedule, bool) {
	for _, d := range w.Days {
		if d.Day == day {
			return d, true
		}
	}
	return DaySchedule{}, false
}

// Validate is run when a schedule is loaded or saved so IsOpen never sees bad input.
func (w WeekSchedule) Validate() error {
	if len(w.Days) != len(WeekDays) {
		return fmt.Errorf("%w: expected %d days, got %d", ErrInvalidSchedule, len(WeekDays), len(w.Days))
	}
	seen := make(map[DayName]bool, len(WeekDays))
	for _, d := range w.Days {
		if _, known := dayIndex(d.Day); !known {
			return fmt.Errorf("%w: unknown day %q", ErrInvalidSchedule, d.Day)
		}
		if seen[d.Day] {
			return fmt.Errorf("%w: duplicate day %q", ErrInvalidSchedule, d.Day)
		}
		seen[d.Day] = true

		open, err := ParseClock(d.OpenTime)
		if err != nil {
			return err
		}
		closing, err := ParseClock(d.CloseTime)
		if err != nil {
			return err
		}
		if !d.IsClosed && open == closing {
			return fmt.Errorf("%w: %s opens and closes at %s", ErrInvalidSchedule, d.Day, d.OpenTime)
		}
	}
	return nil
}

func dayIndex(day DayName) (int, bool) {
	for i, d := range WeekDays {
		if d == day {
			return i, true
		}
	}
	return 0, false
}

// IsOpen evaluates now against the schedule using now's own clock. A day whose
// close time is earlier than its open time runs past midnight into the next day.
func IsOpen(schedule WeekSchedule, now time.Time) bool {
	current := now.Hour()*60 + now.Minute()

	if today, ok := schedule.Day(DayOf(now.Weekday())); ok && !today.IsClosed {
		open, closing, ok := bounds(today)
		if ok {
			if open < closing && open <= current && current < closing {
				return true
			}
			if closing < open && current >= open {
				return true
			}
		}
	}

	previous := DayOf((now.Weekday() + 6) % 7)
	if yesterday, ok := schedule.Day(previous); ok && !yesterday.IsClosed {
		open, closing, ok := bounds(yesterday)
		if ok && closing < open && current < closing {
			return true
		}
	}
	return false
}

// NextOpening returns now when the branch is open, otherwise the next opening
// time within a week. ok is false when every day is closed.
func NextOpening(schedule WeekSchedule, now time.Time) (time.Time, bool) {
	if IsOpen(schedule, now) {
		return now, true
	}
	for offset := 0; offset <= len(WeekDays); offset++ {
		date := now.AddDate(0, 0, offset)
		day, ok := schedule.Day(DayOf(date.Weekday()))
		if !ok || day.IsClosed {
			continue
		}
		open, _, ok := bounds(day)
		if !ok {
			continue
		}
		at := time.Date(date.Year(), date.Month(), date.Day(), open/60, open%60, 0, 0, now.Location())
		if at.After(now) {
			return at, true
		}
	}
	return time.Time{}, false
}

func bounds(day DaySchedule) (int, int, bool) {
	open, err := ParseClock(day.OpenTime)
	if err != nil {
		return 0, 0, false
	}
	closing, err := ParseClock(day.CloseTime)
	if err != nil {
		return 0, 0, false
	}
	return open, closing, true
}
