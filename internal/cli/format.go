// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatScore formats a team total the scorebook way: "187/6", or "187"
// for an all-out-free total when wickets are 10.
func FormatScore(runs, wickets int) string {
	if wickets >= 10 {
		return strconv.Itoa(runs)
	}
	return fmt.Sprintf("%d/%d", runs, wickets)
}

// FormatOvers formats a ball count as completed overs and balls.
// e.g., 22 balls -> "3.4"
func FormatOvers(balls int) string {
	if balls < 0 {
		balls = 0
	}
	return fmt.Sprintf("%d.%d", balls/6, balls%6)
}

// FormatOverBall formats a 0-based over and 1-based ball-in-over as the
// position within an innings. e.g., over 4 ball 3 -> "4.3"
func FormatOverBall(over, ball int) string {
	return fmt.Sprintf("%d.%d", over, ball)
}

// FormatAverage formats a batting or bowling average to one decimal.
func FormatAverage(avg float64) string {
	return fmt.Sprintf("%.1f", avg)
}

// FormatStrikeRate formats runs per 100 balls to one decimal.
func FormatStrikeRate(sr float64) string {
	return fmt.Sprintf("%.1f", sr)
}

// FormatEconomy formats runs per over to two decimals.
func FormatEconomy(eco float64) string {
	return fmt.Sprintf("%.2f", eco)
}

// FormatBatterLine formats a batter's figures: "72 (48)", with an asterisk
// when not out.
func FormatBatterLine(runs, balls int, out bool) string {
	notOut := ""
	if !out {
		notOut = "*"
	}
	return fmt.Sprintf("%d%s (%d)", runs, notOut, balls)
}

// FormatBowlerLine formats a bowler's figures: "3/21 (4.0)".
func FormatBowlerLine(wickets, runs int, overs float64) string {
	return fmt.Sprintf("%d/%d (%.1f)", wickets, runs, overs)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatDelayLabel names a per-ball delay for the speed control.
func FormatDelayLabel(delayMs int) string {
	switch {
	case delayMs <= 0:
		return "live"
	case delayMs < 1000:
		return fmt.Sprintf("%dms/ball", delayMs)
	default:
		return fmt.Sprintf("%.1fs/ball", float64(delayMs)/1000)
	}
}
