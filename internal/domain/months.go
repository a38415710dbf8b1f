package domain

import (
	"strconv"
	"strings"
)

// MonthNames are the full month labels shown in the timeline header.
var MonthNames = [MonthsPerYear]string{
	"Ianuarie", "Februarie", "Martie", "Aprilie", "Mai", "Iunie",
	"Iulie", "August", "Septembrie", "Octombrie", "Noiembrie", "Decembrie",
}

// MonthShortNames are the abbreviated month labels.
var MonthShortNames = [MonthsPerYear]string{
	"Ian", "Feb", "Mar", "Apr", "Mai", "Iun", "Iul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthName returns the full label for a 0-based month, or "" when out of range.
func MonthName(month int) string {
	if month < 0 || month >= MonthsPerYear {
		return ""
	}
	return MonthNames[month]
}

// MonthShortName returns the abbreviated label for a 0-based month, or "" when out of range.
func MonthShortName(month int) string {
	if month < 0 || month >= MonthsPerYear {
		return ""
	}
	return MonthShortNames[month]
}

// ParseMonth accepts a 1-based month number or a full/short label (any case)
// and returns the 0-based month.
func ParseMonth(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= MonthsPerYear {
			return n - 1, true
		}
		return 0, false
	}
	for i := 0; i < MonthsPerYear; i++ {
		if strings.EqualFold(s, MonthNames[i]) || strings.EqualFold(s, MonthShortNames[i]) {
			return i, true
		}
	}
	return 0, false
}
