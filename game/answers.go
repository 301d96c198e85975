package game

import "strings"

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// matchesAnswer reports whether a submission hits any accepted answer.
// Besides exact equality, containment counts in both directions, so
// "pika" matches "pikachu" and "it's pikachu!" matches too. First hit
// short-circuits.
func matchesAnswer(submission string, accepted []string) bool {
	sub := normalizeAnswer(submission)
	if sub == "" {
		return false
	}
	for _, a := range accepted {
		acc := normalizeAnswer(a)
		if acc == "" {
			continue
		}
		if sub == acc || strings.Contains(sub, acc) || strings.Contains(acc, sub) {
			return true
		}
	}
	return false
}
