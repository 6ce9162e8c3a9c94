package catalog

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/amishk599/jobboard/internal/model"
)

type fileJob struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Category    string    `yaml:"category"`
	Location    string    `yaml:"location"`
	Company     string    `yaml:"company"`
	Level       string    `yaml:"level"`
	Salary      int       `yaml:"salary"`
	Description string    `yaml:"description"`
	PostedAt    time.Time `yaml:"posted_at"`
}

type fileDocument struct {
	Jobs []fileJob `yaml:"jobs"`
}

// FileSource reads jobs from a local YAML or JSON document of the form
// {jobs: [...]}. The file is re-read on every fetch.
type FileSource struct {
	name string
	path string
}

// NewFileSource creates a source backed by the file at path.
func NewFileSource(name, path string) *FileSource {
	return &FileSource{name: name, path: path}
}

// FetchJobs parses the file. Jobs without an id get their 1-based position.
func (s *FileSource) FetchJobs(ctx context.Context) ([]model.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: reading %s: %w", s.name, s.path, err)
	}

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog %s: parsing %s: %w", s.name, s.path, err)
	}

	jobs := make([]model.Job, 0, len(doc.Jobs))
	for i, fj := range doc.Jobs {
		job := model.Job{
			ID:          fj.ID,
			Title:       fj.Title,
			Category:    fj.Category,
			Location:    fj.Location,
			Company:     fj.Company,
			Level:       fj.Level,
			Salary:      fj.Salary,
			Description: plainText(fj.Description),
			Source:      s.name,
		}
		if job.ID == "" {
			job.ID = fmt.Sprintf("%d", i+1)
		}
		if !fj.PostedAt.IsZero() {
			t := fj.PostedAt
			job.PostedAt = &t
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
