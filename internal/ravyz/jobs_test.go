package ravyz

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestReportByCompany(t *testing.T) {
	jobs := &Jobs{
		Items: []*Job{
			{
				ID:           "1",
				Title:        "Go Developer",
				Location:     "São Paulo",
				CompanyID:    "emp1",
				CompanyName:  "Acme",
				SalaryMin:    9000,
				SalaryMax:    12000,
				Requirements: []string{"Go", "SQL"},
			},
			{ID: "2", Title: "Designer"},
		},
	}

	report := jobs.ReportByCompany()

	entries, ok := report["Acme (emp1)"]
	if !ok {
		t.Fatalf("expected company key in report")
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry["salary"] != "9000-12000 BRL" {
		t.Fatalf("unexpected salary: %q", entry["salary"])
	}
	if entry["requirements"] != "Go, SQL" {
		t.Fatalf("unexpected requirements: %q", entry["requirements"])
	}

	unknown := report["unknown company"]
	if len(unknown) != 1 {
		t.Fatalf("expected job without company under unknown company")
	}
	if _, ok := unknown[0]["salary"]; ok {
		t.Fatalf("did not expect salary for job without range")
	}
}

func TestListJobsDecodesWrappedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/jobs" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jobs": []map[string]any{
				{"id": 7, "title": "Backend Engineer", "salary_min": "9000", "requirements": []string{"Go"}},
				{"id": "abc", "title": "Designer"},
			},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, nil, nil)
	jobs, err := client.ListJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if jobs.Len() != 2 {
		t.Fatalf("expected 2 jobs, got %d", jobs.Len())
	}

	job := jobs.FindByID("7")
	if job == nil {
		t.Fatalf("expected numeric id decoded as string")
	}
	if job.SalaryMin != 9000 || len(job.Requirements) != 1 {
		t.Fatalf("unexpected job decoded: %+v", job)
	}
	if jobs.FindByID("missing") != nil {
		t.Fatalf("expected nil for unknown id")
	}
}

func TestListJobsBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"1","title":"Go"}]`))
	}))
	defer srv.Close()

	jobs, err := New(srv.URL, nil, nil).ListJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobs.Len() != 1 || jobs.Items[0].Title != "Go" {
		t.Fatalf("unexpected jobs: %+v", jobs.Items)
	}
}

func TestCreateJobAndApply(t *testing.T) {
	var applied string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/jobs":
			var input JobInput
			if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
				t.Errorf("decode job input: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{"job": map[string]any{"id": 42, "title": input.Title}})
		case r.Method == http.MethodPost && r.URL.Path == "/jobs/42/apply":
			applied = r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := New(srv.URL, nil, nil)
	job, err := client.CreateJob(context.Background(), JobInput{Title: "Go Developer", Description: "Build APIs", Location: "Remote"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.ID != "42" || job.Title != "Go Developer" {
		t.Fatalf("unexpected job: %+v", job)
	}

	if err := client.Apply(context.Background(), job.ID); err != nil {
		t.Fatalf("unexpected apply error: %v", err)
	}
	if applied != "/jobs/42/apply" {
		t.Fatalf("expected apply request, got %q", applied)
	}

	if err := client.Apply(context.Background(), " "); err == nil {
		t.Fatalf("expected error for empty job id")
	}
}
