package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseScore splits a "winner-loser" score pair such as "4-2".
func parseScore(arg string) (winner, loser int, err error) {
	parts := strings.SplitN(arg, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected a score like 4-2, got %q", arg)
	}
	winner, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid winning score %q", parts[0])
	}
	loser, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid losing score %q", parts[1])
	}
	return winner, loser, nil
}

// parseStartTime reads the bot's date grammar: Month/Day/Year-Hour:Minute
// with a trailing am/pm marker, e.g. 6/20/2026-7:30pm.
func parseStartTime(arg string) (time.Time, error) {
	datePart, timePart, ok := strings.Cut(arg, "-")
	if !ok {
		return time.Time{}, fmt.Errorf("expected Month/Day/Year-Hour:Minute[am|pm], got %q", arg)
	}

	dateFields := strings.Split(datePart, "/")
	if len(dateFields) != 3 {
		return time.Time{}, fmt.Errorf("invalid date %q", datePart)
	}
	month, err1 := strconv.Atoi(dateFields[0])
	day, err2 := strconv.Atoi(dateFields[1])
	year, err3 := strconv.Atoi(dateFields[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", datePart)
	}

	timePart = strings.ToLower(strings.TrimSpace(timePart))
	meridiem := ""
	if strings.HasSuffix(timePart, "am") || strings.HasSuffix(timePart, "pm") {
		meridiem = timePart[len(timePart)-2:]
		timePart = timePart[:len(timePart)-2]
	}

	hourStr, minuteStr, ok := strings.Cut(timePart, ":")
	if !ok {
		return time.Time{}, fmt.Errorf("invalid time %q", timePart)
	}
	hour, err1 := strconv.Atoi(hourStr)
	minute, err2 := strconv.Atoi(minuteStr)
	if err1 != nil || err2 != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid time %q", timePart)
	}
	if meridiem == "pm" && hour < 12 {
		hour += 12
	}
	if meridiem == "am" && hour == 12 {
		hour = 0
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid date %q", datePart)
	}
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.Local), nil
}
