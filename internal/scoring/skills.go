// Package scoring computes the match and synergy figures shown on the
// dashboards. Everything here is pure arithmetic over catalog data.
package scoring

import (
	"math"

	"github.com/ravyz/ravyz/internal/utils"
)

// SkillsMatchPercentage returns the share of job skills the candidate has,
// rounded to the nearest integer. An empty job list scores 0. Skill names are
// compared case-insensitively and duplicate job skills count once.
func SkillsMatchPercentage(candidate, job []string) int {
	required := distinct(job)
	if len(required) == 0 {
		return 0
	}

	have := make(map[string]bool, len(candidate))
	for _, skill := range candidate {
		have[utils.NormalizeKey(skill)] = true
	}

	matched := 0
	for _, skill := range required {
		if have[skill] {
			matched++
		}
	}

	return int(math.Round(float64(matched) / float64(len(required)) * 100))
}

// SharedSkills returns the job skills the candidate has, in job order and
// with the job's spelling.
func SharedSkills(candidate, job []string) []string {
	have := make(map[string]bool, len(candidate))
	for _, skill := range candidate {
		have[utils.NormalizeKey(skill)] = true
	}

	seen := make(map[string]bool, len(job))
	shared := make([]string, 0)
	for _, skill := range job {
		key := utils.NormalizeKey(skill)
		if key == "" || seen[key] || !have[key] {
			continue
		}
		seen[key] = true
		shared = append(shared, skill)
	}
	return shared
}

// MissingSkills returns the job skills the candidate lacks.
func MissingSkills(candidate, job []string) []string {
	have := make(map[string]bool, len(candidate))
	for _, skill := range candidate {
		have[utils.NormalizeKey(skill)] = true
	}

	seen := make(map[string]bool, len(job))
	missing := make([]string, 0)
	for _, skill := range job {
		key := utils.NormalizeKey(skill)
		if key == "" || seen[key] || have[key] {
			continue
		}
		seen[key] = true
		missing = append(missing, skill)
	}
	return missing
}

func distinct(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		key := utils.NormalizeKey(skill)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}
