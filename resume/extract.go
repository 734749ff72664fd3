package resume

import (
	"sort"
	"strings"
	"unicode"
)

// maxHeuristicTokens caps the fallback extractor's output.
const maxHeuristicTokens = 8

// ExtractSkills pulls a skill list out of resume free text. The first
// line containing "skills:" (case-insensitive) wins: the part after the
// first colon is split on commas, trimmed, and returned in order. When
// no such line exists, a lossy heuristic collects up to 8 title-cased
// tokens instead; that subset is not guaranteed stable across
// implementations.
func ExtractSkills(text string) []string {
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(strings.ToLower(line), "skills:") {
			continue
		}
		_, rest, _ := strings.Cut(line, ":")
		var skills []string
		for _, part := range strings.Split(rest, ",") {
			if part = strings.TrimSpace(part); part != "" {
				skills = append(skills, part)
			}
		}
		return skills
	}

	seen := make(map[string]bool)
	var tokens []string
	for _, word := range strings.Fields(text) {
		if len(word) <= 2 || len(word) >= 20 || !isTitleCase(word) {
			continue
		}
		token := strings.Trim(word, ",.()")
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		tokens = append(tokens, token)
		if len(tokens) == maxHeuristicTokens {
			break
		}
	}
	return tokens
}

// isTitleCase reports whether the word starts with an uppercase letter
// and carries no further uppercase letters.
func isTitleCase(word string) bool {
	for i, r := range word {
		if i == 0 {
			if !unicode.IsUpper(r) {
				return false
			}
			continue
		}
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// MatchSkill returns the resumes whose full text contains skill as a
// case-insensitive substring, sorted by filename.
func MatchSkill(skill string, texts map[string]string) []string {
	skillLower := strings.ToLower(skill)
	var matches []string
	for name, text := range texts {
		if strings.Contains(strings.ToLower(text), skillLower) {
			matches = append(matches, name)
		}
	}
	sort.Strings(matches)
	return matches
}

// FallbackMatches returns the resumes whose extracted skill tokens
// contain skill (lower-cased comparison), sorted by filename. Only
// consulted when MatchSkill found nothing.
func FallbackMatches(skill string, texts map[string]string) []string {
	skillLower := strings.ToLower(skill)
	var matches []string
	for name, text := range texts {
		for _, extracted := range ExtractSkills(text) {
			if strings.ToLower(extracted) == skillLower {
				matches = append(matches, name)
				break
			}
		}
	}
	sort.Strings(matches)
	return matches
}
