package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/amishk599/jobboard/internal/model"
)

// remoteJob is a job as returned by the board's JSON API.
type remoteJob struct {
	ID          string  `json:"_id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Location    string  `json:"location"`
	Level       string  `json:"level"`
	Salary      int     `json:"salary"`
	Description string  `json:"description"`
	Date        int64   `json:"date"` // unix millis
	Company     company `json:"companyId"`
}

type company struct {
	Name string `json:"name"`
}

type remoteResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Jobs    []remoteJob `json:"jobs"`
}

// RemoteSource fetches jobs from a board API endpoint.
type RemoteSource struct {
	name   string
	url    string
	client *http.Client
}

// NewRemoteSource creates a source that GETs url.
func NewRemoteSource(name, url string, client *http.Client) *RemoteSource {
	return &RemoteSource{name: name, url: url, client: client}
}

// FetchJobs retrieves the job list in the order the API returns it.
func (s *RemoteSource) FetchJobs(ctx context.Context) ([]model.Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", s.name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", s.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog %s: %w", s.name, &model.HTTPError{
			URL:        s.url,
			StatusCode: resp.StatusCode,
			RetryAfter: retryAfter(resp.Header.Get("Retry-After")),
		})
	}

	var body remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("catalog %s: decoding response: %w", s.name, err)
	}
	if !body.Success {
		msg := body.Message
		if msg == "" {
			msg = "request was not successful"
		}
		return nil, fmt.Errorf("catalog %s: %w", s.name, errors.New(msg))
	}

	jobs := make([]model.Job, 0, len(body.Jobs))
	for _, rj := range body.Jobs {
		job := model.Job{
			ID:          rj.ID,
			Title:       rj.Title,
			Category:    rj.Category,
			Location:    rj.Location,
			Company:     rj.Company.Name,
			Level:       rj.Level,
			Salary:      rj.Salary,
			Description: plainText(rj.Description),
			Source:      s.name,
		}
		if rj.Date > 0 {
			t := time.UnixMilli(rj.Date).UTC()
			job.PostedAt = &t
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
