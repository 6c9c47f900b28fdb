package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatChips formats a chip amount with thousand separators
func FormatChips(amount int64) string {
	str := fmt.Sprintf("%d", amount)
	if amount < 0 {
		str = str[1:]
	}

	n := len(str)
	if n > 3 {
		var result strings.Builder
		for i, digit := range str {
			if i > 0 && (n-i)%3 == 0 {
				result.WriteRune(',')
			}
			result.WriteRune(digit)
		}
		str = result.String()
	}

	if amount < 0 {
		return "-" + str
	}
	return str
}

// FormatCooldown formats a remaining cooldown as "Xh Ym"
func FormatCooldown(d time.Duration) string {
	d = d.Round(time.Minute)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// FormatSpinResult formats the result of a roulette spin
func FormatSpinResult(number int, color string, won bool, winnings, stake, newBalance int64) string {
	if won {
		return fmt.Sprintf("The ball landed on **%d** (%s). You won **%s chips**! New balance: **%s chips**",
			number, color, FormatChips(winnings), FormatChips(newBalance))
	}
	return fmt.Sprintf("The ball landed on **%d** (%s). You lost **%s chips**. New balance: **%s chips**",
		number, color, FormatChips(stake), FormatChips(newBalance))
}
