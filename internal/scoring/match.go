package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ravyz/ravyz/internal/catalog"
	"github.com/ravyz/ravyz/internal/utils"
)

// HighSynergy is the score from which synergy is listed as a match reason.
const HighSynergy = 80

// CandidateProfile is what the candidate told us about themselves.
type CandidateProfile struct {
	HardSkills []string         `json:"hard_skills"`
	City       string           `json:"city"`
	WorkMode   catalog.WorkMode `json:"work_mode"`
	SalaryMin  int              `json:"salary_min"`
	SalaryMax  int              `json:"salary_max"`
	// Benefits are ordered by priority, most wanted first.
	Benefits []string        `json:"benefits"`
	Profile  catalog.Profile `json:"profile"`
}

// MatchReasons lists why an opportunity fits the candidate.
func MatchReasons(c CandidateProfile, opp catalog.Opportunity) []string {
	reasons := make([]string, 0, 6)

	if shared := SharedSkills(c.HardSkills, opp.HardSkills); len(shared) > 0 {
		reasons = append(reasons, fmt.Sprintf("You already know %s", strings.Join(shared, ", ")))
	}

	if c.SalaryMin > 0 && opp.SalaryMax >= c.SalaryMin && (c.SalaryMax == 0 || opp.SalaryMin <= c.SalaryMax) {
		reasons = append(reasons, fmt.Sprintf("Salary range R$ %d-%d meets your expectation", opp.SalaryMin, opp.SalaryMax))
	}

	if c.WorkMode != "" && c.WorkMode == opp.WorkMode {
		reasons = append(reasons, fmt.Sprintf("Offers your preferred %s work mode", opp.WorkMode))
	}

	if c.City != "" && utils.NormalizeKey(c.City) == utils.NormalizeKey(opp.City) {
		reasons = append(reasons, fmt.Sprintf("Located in %s", opp.City))
	}

	if top := topBenefit(c.Benefits, opp.Benefits); top != "" {
		reasons = append(reasons, fmt.Sprintf("Includes %s, your top priority benefit", top))
	}

	if company := catalog.CompanyByID(opp.CompanyID); company != nil && len(c.Profile) > 0 {
		if s := Synergy(company.Profile, c.Profile, nil); s >= HighSynergy {
			reasons = append(reasons, fmt.Sprintf("High culture synergy with %s (%d%%)", company.Name, s))
		}
	}

	return reasons
}

// topBenefit returns the highest priority benefit the opportunity offers,
// looking only at the candidate's top three priorities.
func topBenefit(priorities, offered []string) string {
	offers := make(map[string]bool, len(offered))
	for _, b := range offered {
		offers[utils.NormalizeKey(b)] = true
	}
	for i, b := range priorities {
		if i >= 3 {
			break
		}
		if offers[utils.NormalizeKey(b)] {
			return b
		}
	}
	return ""
}

// RankedOpportunity is an opportunity scored for a candidate.
type RankedOpportunity struct {
	Opportunity catalog.Opportunity `json:"opportunity"`
	Company     *catalog.Company    `json:"company,omitempty"`
	Match       int                 `json:"match"`
	Synergy     int                 `json:"synergy"`
	Reasons     []string            `json:"reasons"`
}

// RankOpportunities scores opportunities for the candidate, best match first.
// Without skills the pre-baked mock match is used.
func RankOpportunities(c CandidateProfile, opportunities []catalog.Opportunity) []RankedOpportunity {
	ranked := make([]RankedOpportunity, 0, len(opportunities))
	for _, opp := range opportunities {
		item := RankedOpportunity{
			Opportunity: opp,
			Company:     catalog.CompanyByID(opp.CompanyID),
			Reasons:     MatchReasons(c, opp),
		}

		if len(c.HardSkills) > 0 {
			item.Match = SkillsMatchPercentage(c.HardSkills, opp.HardSkills)
		} else {
			item.Match = opp.MockMatch
		}

		if item.Company != nil && len(c.Profile) > 0 {
			item.Synergy = Synergy(item.Company.Profile, c.Profile, nil)
		}

		ranked = append(ranked, item)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Match != ranked[j].Match {
			return ranked[i].Match > ranked[j].Match
		}
		if ranked[i].Synergy != ranked[j].Synergy {
			return ranked[i].Synergy > ranked[j].Synergy
		}
		return ranked[i].Opportunity.ID < ranked[j].Opportunity.ID
	})
	return ranked
}

// RankedCandidate is a mocked candidate recommendation for a job.
type RankedCandidate struct {
	Candidate catalog.Candidate `json:"candidate"`
	Match     int               `json:"match"`
	Missing   []string          `json:"missing,omitempty"`
}

// RankCandidates orders candidates for a job by skills match, falling back to
// the pre-baked score when the job lists no skills.
func RankCandidates(jobSkills []string, candidates []catalog.Candidate) []RankedCandidate {
	ranked := make([]RankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		item := RankedCandidate{Candidate: c, Match: c.MockScore}
		if len(distinct(jobSkills)) > 0 {
			item.Match = SkillsMatchPercentage(c.HardSkills, jobSkills)
			item.Missing = MissingSkills(c.HardSkills, jobSkills)
		}
		ranked = append(ranked, item)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Match != ranked[j].Match {
			return ranked[i].Match > ranked[j].Match
		}
		return ranked[i].Candidate.MockScore > ranked[j].Candidate.MockScore
	})
	return ranked
}
