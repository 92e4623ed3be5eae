// Package store persists analyzed opportunities behind a narrow save/query
// interface. The extraction core never touches it; callers assemble an
// Opportunity from an Analysis and hand it over.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oppbot/oppbot/internal/analyzer"
)

// ErrNotFound is returned when an opportunity ID does not exist.
var ErrNotFound = errors.New("opportunity not found")

// Status is the application workflow state of a stored opportunity.
type Status string

const (
	StatusNew        Status = "new"
	StatusApplied    Status = "applied"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusRejected   Status = "rejected"
)

// ValidStatus checks if a status string is valid.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusNew, StatusApplied, StatusInProgress, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// Opportunity is a stored record: the raw content, its analysis, and the
// workflow metadata owned by the storage layer.
type Opportunity struct {
	ID            int64                `json:"id"`
	Content       string               `json:"content"`
	Title         string               `json:"title"`
	Category      analyzer.Category    `json:"category"`
	Deadline      string               `json:"deadline,omitempty"`
	Requirements  []string             `json:"requirements"`
	ContactInfo   analyzer.ContactInfo `json:"contact_info"`
	PriorityScore float64              `json:"priority_score"`
	Compensation  string               `json:"compensation,omitempty"`
	Location      string               `json:"location,omitempty"`
	Status        Status               `json:"status"`
	Source        string               `json:"source"`
	CreatedAt     string               `json:"created_at"`
	UpdatedAt     string               `json:"updated_at"`
}

// New assembles an unsaved Opportunity from content and its analysis.
func New(content, source string, a analyzer.Analysis) Opportunity {
	if source == "" {
		source = "api"
	}
	return Opportunity{
		Content:       content,
		Title:         a.Title,
		Category:      a.Category,
		Deadline:      a.Deadline,
		Requirements:  a.Requirements,
		ContactInfo:   a.ContactInfo,
		PriorityScore: a.PriorityScore,
		Compensation:  a.Compensation,
		Location:      a.Location,
		Status:        StatusNew,
		Source:        source,
	}
}

// ListFilter narrows List results.
type ListFilter struct {
	Status string // empty = all
	Limit  int    // <=0 or >200 clamps to 50
}

// Stats summarizes the stored catalogue.
type Stats struct {
	Total             int            `json:"total"`
	ByCategory        map[string]int `json:"by_category"`
	ByStatus          map[string]int `json:"by_status"`
	UpcomingDeadlines int            `json:"upcoming_deadlines"` // deadline within 7 days of now
}

// Store is the persistence collaborator. Implementations must be safe for
// concurrent use.
type Store interface {
	Save(ctx context.Context, opp Opportunity) (int64, error)
	Get(ctx context.Context, id int64) (Opportunity, error)
	// List returns opportunities ordered by priority score descending,
	// then most recently created.
	List(ctx context.Context, f ListFilter) ([]Opportunity, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	UpdateScore(ctx context.Context, id int64, score float64) error
	Stats(ctx context.Context, now time.Time) (Stats, error)
	Close() error
}

func normalizeStatus(s string) (Status, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StatusNew, nil
	}
	if !ValidStatus(s) {
		return "", fmt.Errorf("invalid status %q (valid: new, applied, in_progress, completed, rejected)", s)
	}
	return Status(s), nil
}

func clampLimit(n int) int {
	if n <= 0 || n > 200 {
		return 50
	}
	return n
}
