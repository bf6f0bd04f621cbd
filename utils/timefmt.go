// File: utils/timefmt.go
package utils

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Slot labels travel the wire as clock strings ("10:00 AM"). Internally they
// are parsed once at the boundary into minutes from midnight so comparison
// and ordering are well-defined, then formatted back into the canonical form.

const slotLabelLayout = "3:04 PM"

var slotLabelLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"15:04",
}

// ParseSlotLabel converts a slot label to minutes from midnight
// (e.g., "10:00 AM" -> 600). It accepts 12-hour and 24-hour clock forms.
func ParseSlotLabel(label string) (int, error) {
	s := strings.ToUpper(strings.TrimSpace(label))
	for _, layout := range slotLabelLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, fmt.Errorf("invalid time slot label %q", label)
}

// FormatSlotLabel renders minutes from midnight in the canonical slot form
// (e.g., 600 -> "10:00 AM").
func FormatSlotLabel(minutes int) string {
	t := time.Date(0, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC)
	return t.Format(slotLabelLayout)
}

// NormalizeSlotLabel parses and re-formats a label so that equality checks
// against stored appointments are exact ("10:00 am" == "10:00 AM").
func NormalizeSlotLabel(label string) (string, error) {
	minutes, err := ParseSlotLabel(label)
	if err != nil {
		return "", err
	}
	return FormatSlotLabel(minutes), nil
}

// SortSlotLabels orders labels chronologically in place. Callers must have
// normalized the labels first; unparseable labels sort last.
func SortSlotLabels(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		mi, erri := ParseSlotLabel(labels[i])
		mj, errj := ParseSlotLabel(labels[j])
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}
		return mi < mj
	})
}

// ParseDateKey validates a YYYY-MM-DD date key and returns the parsed day.
func ParseDateKey(date string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return t, nil
}

// DateKey truncates a time to its YYYY-MM-DD day key.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
