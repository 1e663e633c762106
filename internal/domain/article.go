package domain

import (
	"strings"
	"time"
)

// ProcessingStatus enumerates pipeline milestones for a stored article.
type ProcessingStatus string

const (
	StatusPending         ProcessingStatus = "pending"
	StatusCompleted       ProcessingStatus = "completed"
	StatusFailedNoContent ProcessingStatus = "failed_no_content"
)

// Headline is the raw article metadata returned by a listing provider.
type Headline struct {
	Title       string
	Description string
	URL         string
	Content     string
	PublishedAt time.Time
}

// Article is the persisted unit. The ID is derived from the URL; everything
// else is filled in by pipeline stages via merge-writes.
type Article struct {
	ID          string
	URL         string
	Title       string
	Description string
	Category    string
	PublishedAt time.Time
	RawContent  string
	Content     string
	Keywords    []string
	Summary     string
	Status      ProcessingStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ArticlePatch carries the fields of a merge-write. Nil pointers (and a nil
// keywords slice) mean "leave the stored value untouched".
type ArticlePatch struct {
	URL         *string
	Title       *string
	Description *string
	Category    *string
	PublishedAt *time.Time
	RawContent  *string
	Content     *string
	Keywords    []string
	Summary     *string
	Status      *ProcessingStatus
}

var identityReplacer = strings.NewReplacer("/", "_", ".", "_")

// Identity derives the deterministic storage key for a source URL. The same
// URL always yields the same identity; a colliding identity is treated as
// "already processed" by the orchestrator.
func Identity(url string) string {
	return identityReplacer.Replace(url)
}
