package extractor

import "fmt"

// FormatTime renders a total-seconds value as H:MM:SS, or M:SS below one hour.
func FormatTime(total int) string {
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
