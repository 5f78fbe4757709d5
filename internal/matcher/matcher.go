package matcher

import "strings"

// TechMatchThreshold is the minimum weighted match percentage for a job's
// tech stack to count as a pass.
const TechMatchThreshold = 0.5

// TechStackScore computes how well a job's extracted tech stack matches the
// operator's configured stack. The job stack is ordered by prominence: the
// first three entries carry weight 2, every later entry weight 1.
// Returns a percentage in [0.0, 1.0]; an empty job stack scores 0.
func TechStackScore(jobStack, operatorStack []string) float64 {
	if len(jobStack) == 0 {
		return 0
	}

	earned := 0
	total := 0
	for i, tech := range jobStack {
		weight := 1
		if i < 3 {
			weight = 2
		}
		total += weight
		if matchesAny(tech, operatorStack) {
			earned += weight
		}
	}

	if total == 0 {
		return 0
	}
	return float64(earned) / float64(total)
}

// matchesAny reports whether tech fuzzily matches any operator skill. A
// skill matches when either string is a case-insensitive substring of the
// other, so "Go" matches "Golang" and "React.js" matches "React".
func matchesAny(tech string, operatorStack []string) bool {
	techLower := strings.ToLower(strings.TrimSpace(tech))
	if techLower == "" {
		return false
	}
	for _, skill := range operatorStack {
		skillLower := strings.ToLower(strings.TrimSpace(skill))
		if skillLower == "" {
			continue
		}
		if strings.Contains(techLower, skillLower) || strings.Contains(skillLower, techLower) {
			return true
		}
	}
	return false
}

// Passes reports whether a weighted score clears the qualification threshold
func Passes(score float64) bool {
	return score >= TechMatchThreshold
}
