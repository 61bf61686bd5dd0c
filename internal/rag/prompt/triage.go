package prompt

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/akolanti/DietRAG/internal/config"
)

// Message triage. Pure functions over normalized text so each rule is
// testable without the rest of the pipeline. Precedence is decided by the
// orchestrator, but for the record: inappropriate > off-topic > emergency >
// explicit day count > free-form question. Emergency strictly outranks an
// explicit day count in the same message.

func ContainsInappropriate(message string) bool {
	return containsAny(strings.ToLower(message), config.InappropriateTerms)
}

func IsDietRelated(message string) bool {
	return containsAny(strings.ToLower(strings.TrimSpace(message)), config.DietTopicKeywords)
}

// IsEmergency detects acute-symptom messages that get canned guidance
// instead of retrieval + generation.
func IsEmergency(message string) bool {
	return containsAny(strings.ToLower(message), config.EmergencyKeywords)
}

var (
	daysRe  = regexp.MustCompile(`(-?\d+)\s*day(?:s)?`)
	weeksRe = regexp.MustCompile(`(-?\d+)\s*week(?:s)?`)
	monthRe = regexp.MustCompile(`(-?\d+)\s*month(?:s)?`)
)

// ParseRequestedDays extracts an explicit plan duration from free text like
// "plan for 30 days", "2 weeks" or "1 month". Any numeric duration counts as
// a request, including out-of-range ones - range validation is the
// orchestrator's call, so "0 days" and "45 days" are found, not ignored.
func ParseRequestedDays(message string) (int, bool) {
	msg := strings.ToLower(message)

	if m := daysRe.FindStringSubmatch(msg); m != nil {
		if days, err := strconv.Atoi(m[1]); err == nil {
			return days, true
		}
	}

	if m := weeksRe.FindStringSubmatch(msg); m != nil {
		if weeks, err := strconv.Atoi(m[1]); err == nil {
			return weeks * 7, true
		}
	}

	if m := monthRe.FindStringSubmatch(msg); m != nil {
		if months, err := strconv.Atoi(m[1]); err == nil {
			return months * 30, true
		}
	}

	return 0, false
}

// DaysInRange is the supported plan duration window.
func DaysInRange(days int) bool {
	return days >= config.MinPlanDays && days <= config.MaxPlanDays
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
