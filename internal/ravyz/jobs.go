package ravyz

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const (
	apiJobsPath       = "/jobs"
	apiJobsApplyRoute = "/jobs/:id/apply"
)

type Job struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title,omitempty"`
	Description  string   `json:"description,omitempty"`
	Location     string   `json:"location,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
	WorkMode     string   `json:"work_mode,omitempty"`
	Level        string   `json:"level,omitempty"`
	SalaryMin    int      `json:"salary_min,omitempty"`
	SalaryMax    int      `json:"salary_max,omitempty"`
	CompanyID    string   `json:"company_id,omitempty"`
	CompanyName  string   `json:"company_name,omitempty"`
	CreatedAt    string   `json:"created_at,omitempty"`
}

// JobInput is the subset of the job draft posted by companies.
type JobInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Location     string   `json:"location"`
	Requirements []string `json:"requirements"`
	WorkMode     string   `json:"work_mode,omitempty"`
	Level        string   `json:"level,omitempty"`
	SalaryMin    int      `json:"salary_min,omitempty"`
	SalaryMax    int      `json:"salary_max,omitempty"`
}

type Jobs struct {
	Items []*Job
}

// ListJobs fetches the open jobs. The backend answers with either a bare
// array or an object wrapping it under "jobs", "items" or "data".
func (c *Client) ListJobs(ctx context.Context) (*Jobs, error) {
	var raw any
	if err := c.do(ctx, http.MethodGet, apiJobsPath, apiJobsPath, nil, &raw); err != nil {
		return nil, err
	}

	items, err := unwrapItems(raw)
	if err != nil {
		return nil, err
	}

	var jobs []*Job
	if err := decodeWeak(items, &jobs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}

	return &Jobs{Items: jobs}, nil
}

// CreateJob posts a new job for the logged in company.
func (c *Client) CreateJob(ctx context.Context, input JobInput) (*Job, error) {
	var raw map[string]any
	if err := c.do(ctx, http.MethodPost, apiJobsPath, apiJobsPath, input, &raw); err != nil {
		return nil, err
	}

	if nested, ok := raw["job"].(map[string]any); ok {
		raw = nested
	}

	job := &Job{}
	if err := decodeWeak(raw, job); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}

	return job, nil
}

// Apply applies the logged in candidate to a job.
func (c *Client) Apply(ctx context.Context, jobID string) error {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return fmt.Errorf("job id is required")
	}

	path := fmt.Sprintf("%s/%s/apply", apiJobsPath, url.PathEscape(jobID))
	return c.do(ctx, http.MethodPost, apiJobsApplyRoute, path, nil, nil)
}

func unwrapItems(raw any) ([]any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case map[string]any:
		for _, key := range []string{"jobs", "items", "data"} {
			if items, ok := v[key].([]any); ok {
				return items, nil
			}
		}
		return nil, fmt.Errorf("unexpected jobs response: no list found")
	default:
		return nil, fmt.Errorf("unexpected jobs response type %T", raw)
	}
}

// decodeWeak decodes generic JSON into typed values using the json tags.
// Numeric ids and amounts sent as strings are converted.
func decodeWeak(input, output any) error {
	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           output,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

func (j *Jobs) FindByID(id string) *Job {
	for _, job := range j.Items {
		if job.ID == id {
			return job
		}
	}
	return nil
}

// ReportByCompany groups jobs per company for a compact listing.
func (j *Jobs) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, job := range j.Items {
		company := job.CompanyName
		if company == "" {
			company = "unknown company"
		}
		key := company
		if job.CompanyID != "" {
			key = fmt.Sprintf("%s (%s)", company, job.CompanyID)
		}

		entry := map[string]string{
			"id":       job.ID,
			"title":    job.Title,
			"location": job.Location,
		}
		if job.SalaryMin > 0 || job.SalaryMax > 0 {
			entry["salary"] = fmt.Sprintf("%d-%d BRL", job.SalaryMin, job.SalaryMax)
		}
		if len(job.Requirements) > 0 {
			entry["requirements"] = strings.Join(job.Requirements, ", ")
		}
		report[key] = append(report[key], entry)
	}
	return report
}

func (j *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "ravyz_jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j); err != nil {
		return "", err
	}
	return file.Name(), nil
}
