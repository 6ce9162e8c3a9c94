package model

import (
	"context"
	"errors"
	"time"
)

// ErrUserNotFound is returned by a UserStore when no user has the requested ID.
var ErrUserNotFound = errors.New("user not found")

// Job is a single advertised position as shown on the board.
type Job struct {
	ID          string     // unique within its catalog
	Title       string     // job title
	Category    string     // enum-like category, e.g. "Programming"
	Location    string     // location string, e.g. "Bangalore"
	Company     string     // company name
	Level       string     // seniority, e.g. "Senior level"
	Description string     // plain or HTML description
	Salary      int        // yearly salary, 0 if unknown
	PostedAt    *time.Time // nullable (not every catalog provides it)
	Source      string     // catalog name
}

// SearchFilter holds the free-text constraints entered in the search bar.
// An empty field places no constraint on the job list.
type SearchFilter struct {
	Title    string
	Location string
}

// IsEmpty reports whether neither field is set.
func (f SearchFilter) IsEmpty() bool {
	return f.Title == "" && f.Location == ""
}

// User is the local mirror of an identity managed by the external auth provider.
type User struct {
	ID        string // provider user ID
	Email     string
	Name      string
	Image     string
	Resume    string // owned locally, never overwritten by provider updates
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Incident describes a failure worth surfacing to operators.
type Incident struct {
	Source  string // component that failed, e.g. "webhook"
	Event   string // event or operation name, e.g. "user.created"
	Message string
	Err     error
	At      time.Time
}

// JobSource fetches the full list of job postings from a catalog.
type JobSource interface {
	FetchJobs(ctx context.Context) ([]Job, error)
}

// UserStore persists users mirrored from the identity provider.
type UserStore interface {
	UpsertUser(ctx context.Context, user User) error
	DeleteUser(ctx context.Context, id string) error
	GetUser(ctx context.Context, id string) (User, error)
	Close() error
}

// Notifier reports incidents to operators.
type Notifier interface {
	Notify(incident Incident) error
}
