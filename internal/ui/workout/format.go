package workout

import "fmt"

// formatClock renders whole seconds as mm:ss, flooring negatives at zero.
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
