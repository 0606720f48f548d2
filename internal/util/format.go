package util

import (
	"fmt"
	"math"
	"time"
)

// FormatNumber abbreviates n with K/M suffixes
func FormatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	} else {
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	}
}

// FormatValue prints a level value compactly for axis labels
func FormatValue(v float64) string {
	if math.Abs(v) >= 100 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

// FormatDuration prints d as "1h 5m", "5m 3s" or "850ms"
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

// FormatEnergy prints a charge in mAh
func FormatEnergy(mAh float64) string {
	if mAh < 0.01 && mAh > 0 {
		return fmt.Sprintf("%.4f mAh", mAh)
	}
	return fmt.Sprintf("%.2f mAh", mAh)
}
