package ui

import (
	"fmt"
	"time"
)

// TimeAgo formats the distance from t to now the way the sidebar shows it.
// Each unit is floored; weeks stop at four, after which months are counted
// as 30-day blocks. Times in the future read as "just now".
func TimeAgo(now, t time.Time) string {
	seconds := int64(now.Sub(t) / time.Second)
	if seconds < 60 {
		return "just now"
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm ago", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}

	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%dd ago", days)
	}

	weeks := days / 7
	if weeks < 4 {
		return fmt.Sprintf("%dw ago", weeks)
	}

	return fmt.Sprintf("%dmo ago", days/30)
}
