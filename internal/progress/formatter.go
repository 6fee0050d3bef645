package progress

import (
	"fmt"
	"strings"
)

// formatCounter returns the [N/Total] counter string
func formatCounter(number, total int) string {
	return fmt.Sprintf("[%d/%d]", number, total)
}

// buildCheckingMessage constructs the message shown while the checker runs
func buildCheckingMessage(set SetInfo) string {
	msg := fmt.Sprintf("%s Checking %s", formatCounter(set.Number, set.Total), set.Name)
	if set.Kind != "" {
		msg += fmt.Sprintf(" (%s)", set.Kind)
	}
	return msg
}

// buildOutcomeMessage constructs the line printed when a set finishes
func buildOutcomeMessage(set SetInfo, detail string) string {
	var outcome string
	switch set.Status {
	case SetFound:
		outcome = "availability found"
	case SetNotFound:
		outcome = "no results"
	case SetFailed:
		outcome = "checker failed"
	case SetInvalid:
		outcome = "invalid parameters"
	default:
		outcome = set.Status.String()
	}

	msg := fmt.Sprintf("%s %s: %s", formatCounter(set.Number, set.Total), set.Name, outcome)
	if detail = strings.TrimSpace(detail); detail != "" {
		msg += " (" + detail + ")"
	}
	return msg
}

// statusMark returns the symbol for a finished set, colored when supported
func statusMark(status SetStatus, symbols ProgressSymbols, supportsColor bool) string {
	switch status {
	case SetFound:
		return colorize(symbols.Checkmark, "\033[32m", supportsColor) // Green
	case SetNotFound:
		return symbols.Empty
	default:
		return colorize(symbols.Failure, "\033[31m", supportsColor) // Red
	}
}

func colorize(mark, code string, supportsColor bool) string {
	if !supportsColor {
		return mark
	}
	return code + mark + "\033[0m"
}
