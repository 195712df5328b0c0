package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// formatCount renders n with thousands separators.
func formatCount(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func formatPrice(v float64) string {
	return "¥" + strconv.FormatFloat(v, 'f', 2, 64)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func formatRating(v float64) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", v)
}

// shortTime renders an RFC 3339 timestamp as local "01-02 15:04", or the
// input unchanged when it does not parse.
func shortTime(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("01-02 15:04")
}

// cycle moves i by delta within [0, n).
func cycle(i, delta, n int) int {
	if n == 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}

// thresholdClass grades a utilisation percentage.
func thresholdClass(v float64) string {
	switch {
	case v > 80:
		return classDanger
	case v > 60:
		return classWarning
	default:
		return classSuccess
	}
}
