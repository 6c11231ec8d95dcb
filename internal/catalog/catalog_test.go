package catalog

import "testing"

func TestCatalogIntegrity(t *testing.T) {
	for _, opp := range Opportunities {
		if CompanyByID(opp.CompanyID) == nil {
			t.Fatalf("opportunity %s references unknown company %s", opp.ID, opp.CompanyID)
		}
		if opp.SalaryMin > opp.SalaryMax {
			t.Fatalf("opportunity %s has inverted salary range", opp.ID)
		}
	}

	for _, company := range Companies {
		for _, dim := range Dimensions {
			value, ok := company.Profile[dim]
			if !ok {
				t.Fatalf("company %s misses dimension %s", company.ID, dim)
			}
			if value < ScaleMin || value > ScaleMax {
				t.Fatalf("company %s dimension %s out of scale: %v", company.ID, dim, value)
			}
		}
	}

	known := make(map[Dimension]bool, len(Dimensions))
	for _, dim := range Dimensions {
		known[dim] = true
	}
	for _, q := range Questions {
		if !known[q.Dimension] {
			t.Fatalf("question %s uses unknown dimension %s", q.ID, q.Dimension)
		}
	}

	if len(SalaryTable) > 30 {
		t.Fatalf("salary table is expected to stay small, got %d rows", len(SalaryTable))
	}
	for _, band := range SalaryTable {
		if !(band.P25 <= band.P50 && band.P50 <= band.P75 && band.P75 <= band.P90) {
			t.Fatalf("salary band %+v is not monotonic", band)
		}
	}
}

func TestQuestionPages(t *testing.T) {
	pages := QuestionPages(5)
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	if len(pages[2]) != 2 {
		t.Fatalf("expected last page with 2 questions, got %d", len(pages[2]))
	}

	if all := QuestionPages(0); len(all) != 1 || len(all[0]) != len(Questions) {
		t.Fatalf("expected a single page with every question")
	}
}

func TestLookups(t *testing.T) {
	if c := CompanyByName("  nubank "); c == nil || c.ID != "nubank" {
		t.Fatalf("expected to find nubank by name, got %+v", c)
	}
	if c := CompanyByName("unknown"); c != nil {
		t.Fatalf("expected nil for unknown company")
	}

	if m := MentorByID("RAFA"); m.ID != "rafa" {
		t.Fatalf("expected rafa, got %s", m.ID)
	}
	if m := MentorByID(""); m.ID != Mentors[0].ID {
		t.Fatalf("expected default mentor, got %s", m.ID)
	}

	if _, ok := QuestionByID("q7"); !ok {
		t.Fatalf("expected q7 to exist")
	}
}
