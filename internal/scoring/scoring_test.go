package scoring

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ravyz/ravyz/internal/catalog"
)

func TestSkillsMatchPercentage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		candidate []string
		job       []string
		expect    int
	}{
		{
			name:      "half of the job skills",
			candidate: []string{"React", "Node.js"},
			job:       []string{"React", "TypeScript", "Node.js", "AWS"},
			expect:    50,
		},
		{
			name:      "empty job list",
			candidate: []string{"React"},
			job:       nil,
			expect:    0,
		},
		{
			name:   "empty candidate list",
			job:    []string{"Go"},
			expect: 0,
		},
		{
			name:      "case insensitive and duplicate job skills",
			candidate: []string{" react "},
			job:       []string{"React", "react"},
			expect:    100,
		},
		{
			name:      "rounds down",
			candidate: []string{"Go"},
			job:       []string{"Go", "SQL", "AWS"},
			expect:    33,
		},
		{
			name:      "rounds up",
			candidate: []string{"Go", "SQL"},
			job:       []string{"Go", "SQL", "AWS"},
			expect:    67,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SkillsMatchPercentage(tt.candidate, tt.job)
			if got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
			if got < 0 || got > 100 {
				t.Fatalf("score out of range: %d", got)
			}
		})
	}
}

func TestSharedAndMissingSkills(t *testing.T) {
	candidate := []string{"react", "Go"}
	job := []string{"React", "TypeScript", "Go", "go"}

	if got := SharedSkills(candidate, job); !reflect.DeepEqual(got, []string{"React", "Go"}) {
		t.Fatalf("unexpected shared skills: %v", got)
	}
	if got := MissingSkills(candidate, job); !reflect.DeepEqual(got, []string{"TypeScript"}) {
		t.Fatalf("unexpected missing skills: %v", got)
	}
}

func TestSynergy(t *testing.T) {
	t.Parallel()

	full := catalog.Profile{
		catalog.Innovation: 4, catalog.Stability: 2, catalog.Autonomy: 5,
		catalog.Collaboration: 3, catalog.Growth: 1, catalog.Balance: 4,
	}

	tests := []struct {
		name    string
		company catalog.Profile
		user    catalog.Profile
		weights Weights
		expect  int
	}{
		{name: "identical profiles", company: full, user: full, expect: 100},
		{
			name:    "identical on shared keys only",
			company: full,
			user:    catalog.Profile{catalog.Innovation: 4, catalog.Growth: 1},
			expect:  100,
		},
		{name: "no shared keys", company: catalog.Profile{catalog.Innovation: 5}, user: catalog.Profile{catalog.Balance: 5}, expect: 0},
		{name: "opposite poles", company: catalog.Profile{catalog.Innovation: 5}, user: catalog.Profile{catalog.Innovation: 1}, expect: 0},
		{name: "half the span", company: catalog.Profile{catalog.Innovation: 5}, user: catalog.Profile{catalog.Innovation: 3}, expect: 50},
		{
			name:    "unweighted distance",
			company: catalog.Profile{catalog.Innovation: 5, catalog.Stability: 1},
			user:    catalog.Profile{catalog.Innovation: 5, catalog.Stability: 5},
			expect:  29,
		},
		{
			name:    "zero weight ignores a dimension",
			company: catalog.Profile{catalog.Innovation: 5, catalog.Stability: 1},
			user:    catalog.Profile{catalog.Innovation: 5, catalog.Stability: 5},
			weights: Weights{catalog.Stability: 0},
			expect:  100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Synergy(tt.company, tt.user, tt.weights); got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
		})
	}
}

func TestUserProfile(t *testing.T) {
	answers := map[string]int{
		"q1":      5,
		"q2":      1,
		"q3":      4,
		"q5":      7,
		"unknown": 3,
	}

	profile := UserProfile(answers, catalog.Questions)

	if profile[catalog.Innovation] != 5 {
		t.Fatalf("expected innovation 5, got %v", profile[catalog.Innovation])
	}
	if profile[catalog.Stability] != 4 {
		t.Fatalf("expected stability 4, got %v", profile[catalog.Stability])
	}
	if _, ok := profile[catalog.Autonomy]; ok {
		t.Fatalf("out of scale answer must be ignored")
	}
}

func TestCompanySynergiesOrdering(t *testing.T) {
	user := catalog.Companies[0].Profile
	result := CompanySynergies(catalog.Companies, user, nil)

	if len(result) != len(catalog.Companies) {
		t.Fatalf("expected every company scored")
	}
	if result[0].Score != 100 {
		t.Fatalf("expected best score 100, got %d", result[0].Score)
	}
	for i := 1; i < len(result); i++ {
		if result[i-1].Score < result[i].Score {
			t.Fatalf("synergies are not sorted: %d before %d", result[i-1].Score, result[i].Score)
		}
	}
}

func TestMatchReasons(t *testing.T) {
	candidate := CandidateProfile{
		HardSkills: []string{"React", "Node.js"},
		City:       "são paulo",
		WorkMode:   catalog.Remote,
		SalaryMin:  15000,
		SalaryMax:  18000,
		Benefits:   []string{"stock options", "gym pass"},
	}

	reasons := MatchReasons(candidate, catalog.Opportunities[0])
	expect := []string{
		"You already know React, Node.js",
		"Salary range R$ 15000-20000 meets your expectation",
		"Offers your preferred remote work mode",
		"Located in São Paulo",
		"Includes stock options, your top priority benefit",
	}
	if !reflect.DeepEqual(reasons, expect) {
		t.Fatalf("unexpected reasons:\n%v\nexpected:\n%v", reasons, expect)
	}

	candidate.Profile = catalog.CompanyByID("nubank").Profile
	reasons = MatchReasons(candidate, catalog.Opportunities[0])
	if last := reasons[len(reasons)-1]; last != "High culture synergy with Nubank (100%)" {
		t.Fatalf("expected synergy reason, got %q", last)
	}

	if got := MatchReasons(CandidateProfile{}, catalog.Opportunities[1]); len(got) != 0 {
		t.Fatalf("expected no reasons for empty profile, got %v", got)
	}
}

func TestRankOpportunities(t *testing.T) {
	ranked := RankOpportunities(CandidateProfile{HardSkills: []string{"React", "Node.js"}}, catalog.Opportunities)

	if ranked[0].Opportunity.ID != "op-4" || ranked[0].Match != 67 {
		t.Fatalf("expected op-4 with 67 first, got %s with %d", ranked[0].Opportunity.ID, ranked[0].Match)
	}
	if ranked[0].Company == nil || ranked[0].Company.ID != "cit" {
		t.Fatalf("expected company resolved for ranked opportunity")
	}

	mock := RankOpportunities(CandidateProfile{}, catalog.Opportunities)
	if mock[0].Match != 94 {
		t.Fatalf("expected mock match ordering, got %d first", mock[0].Match)
	}
}

func TestRankCandidates(t *testing.T) {
	ranked := RankCandidates([]string{"Go", "AWS"}, catalog.Candidates)

	if ranked[0].Candidate.ID != "c-felipe" || ranked[1].Candidate.ID != "c-bruno" {
		t.Fatalf("unexpected ordering: %s, %s", ranked[0].Candidate.ID, ranked[1].Candidate.ID)
	}
	if ranked[0].Match != 100 {
		t.Fatalf("expected full match, got %d", ranked[0].Match)
	}
	if last := ranked[len(ranked)-1]; len(last.Missing) != 2 {
		t.Fatalf("expected two missing skills for the last candidate, got %v", last.Missing)
	}

	mock := RankCandidates(nil, catalog.Candidates)
	if mock[0].Match != 92 {
		t.Fatalf("expected pre-baked scores without job skills, got %d", mock[0].Match)
	}
}

func TestBenchmarkExact(t *testing.T) {
	result, err := Benchmark(BenchmarkQuery{
		Position: "Frontend Developer",
		Level:    "Senior",
		Industry: "fintech",
		City:     "São Paulo",
		Salary:   17000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Exact || result.Band.P50 != 16000 {
		t.Fatalf("expected exact row, got %+v", result)
	}
	if !result.HasSalary || result.Percentile != AtP50 {
		t.Fatalf("expected 50th percentile bucket, got %d", result.Percentile)
	}
}

func TestBenchmarkRegionalFallback(t *testing.T) {
	result, err := Benchmark(BenchmarkQuery{
		Position: "backend developer",
		Level:    "senior",
		Industry: "banking",
		City:     "Curitiba",
		Salary:   15000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Exact || result.Rows != 2 {
		t.Fatalf("expected fallback over 2 rows, got %+v", result)
	}
	if result.Adjustment != 0.88 {
		t.Fatalf("expected Curitiba adjustment, got %v", result.Adjustment)
	}

	expect := catalog.SalaryBand{
		Position: "backend developer", Level: "senior", Industry: "banking", City: "Curitiba",
		P25: 11700, P50: 13800, P75: 16500, P90: 19400,
	}
	if result.Band != expect {
		t.Fatalf("unexpected band:\n%+v\nexpected:\n%+v", result.Band, expect)
	}
	if result.Percentile != AtP50 {
		t.Fatalf("expected 50th percentile bucket, got %d", result.Percentile)
	}
}

func TestBenchmarkUnknown(t *testing.T) {
	_, err := Benchmark(BenchmarkQuery{Position: "astronaut", Level: "senior"})
	if !errors.Is(err, ErrNoBenchmark) {
		t.Fatalf("expected ErrNoBenchmark, got %v", err)
	}
}

func TestPercentileBucket(t *testing.T) {
	band := catalog.SalaryBand{P25: 100, P50: 200, P75: 300, P90: 400}

	cases := map[int]int{50: BelowP25, 100: AtP25, 250: AtP50, 300: AtP75, 999: AtP90}
	for salary, expect := range cases {
		if got := PercentileBucket(band, salary); got != expect {
			t.Fatalf("salary %d: expected %d, got %d", salary, expect, got)
		}
	}
}
