package timeutil

import (
	"fmt"
	"time"
)

// Relative renders the elapsed time since t as a short human label,
// matching what the listing and notification views display.
func Relative(t time.Time) string {
	return RelativeTo(t, time.Now())
}

func RelativeTo(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("2 Jan 2006")
	}
}

// Truncate cuts text to maxLen runes, used for message previews.
func Truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen])
}
