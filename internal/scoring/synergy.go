package scoring

import (
	"math"
	"sort"

	"github.com/ravyz/ravyz/internal/catalog"
)

// Weights scales the contribution of each dimension to the synergy distance.
// Missing dimensions weigh 1.
type Weights map[catalog.Dimension]float64

func (w Weights) of(dim catalog.Dimension) float64 {
	if w == nil {
		return 1
	}
	if v, ok := w[dim]; ok && v >= 0 {
		return v
	}
	return 1
}

// UserProfile averages questionnaire answers per dimension. Answers are on
// the 1..5 scale; reversed questions are mirrored. Unknown question ids and
// out-of-scale answers are ignored.
func UserProfile(answers map[string]int, questions []catalog.Question) catalog.Profile {
	sums := make(map[catalog.Dimension]float64)
	counts := make(map[catalog.Dimension]int)

	for _, q := range questions {
		answer, ok := answers[q.ID]
		if !ok {
			continue
		}
		value := float64(answer)
		if value < catalog.ScaleMin || value > catalog.ScaleMax {
			continue
		}
		if q.Reversed {
			value = catalog.ScaleMin + catalog.ScaleMax - value
		}
		sums[q.Dimension] += value
		counts[q.Dimension]++
	}

	profile := make(catalog.Profile, len(sums))
	for dim, sum := range sums {
		profile[dim] = sum / float64(counts[dim])
	}
	return profile
}

// Synergy maps the weighted Euclidean distance between two profiles over
// their shared dimensions to a 0..100 score. Identical profiles score 100;
// profiles without shared dimensions score 0.
func Synergy(company, user catalog.Profile, weights Weights) int {
	var sum, total float64
	for dim, c := range company {
		u, ok := user[dim]
		if !ok {
			continue
		}
		w := weights.of(dim)
		diff := c - u
		sum += w * diff * diff
		total += w
	}

	if total == 0 {
		return 0
	}

	distance := math.Sqrt(sum / total)
	span := catalog.ScaleMax - catalog.ScaleMin
	score := math.Round(100 * (1 - distance/span))

	return int(math.Max(0, math.Min(100, score)))
}

// CompanySynergy pairs a company with its synergy score.
type CompanySynergy struct {
	Company *catalog.Company `json:"company"`
	Score   int              `json:"score"`
}

// CompanySynergies scores every company against the user profile, best first.
func CompanySynergies(companies []catalog.Company, user catalog.Profile, weights Weights) []CompanySynergy {
	result := make([]CompanySynergy, 0, len(companies))
	for i := range companies {
		result = append(result, CompanySynergy{
			Company: &companies[i],
			Score:   Synergy(companies[i].Profile, user, weights),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})
	return result
}
