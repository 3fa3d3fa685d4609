package search

import (
	"time"

	"github.com/talenthub/portal/pkg/kernel"
)

// SearchStatus represents the publication status of a search
type SearchStatus string

const (
	SearchStatusActive SearchStatus = "ACTIVE" // Accepting applications
	SearchStatusPaused SearchStatus = "PAUSED" // Temporarily not accepting
	SearchStatusClosed SearchStatus = "CLOSED" // Permanently closed
)

// ValidStatuses is the closed set of search statuses
var ValidStatuses = []SearchStatus{SearchStatusActive, SearchStatusPaused, SearchStatusClosed}

// IsValid reports whether the value belongs to the status enumeration
func (s SearchStatus) IsValid() bool {
	switch s {
	case SearchStatusActive, SearchStatusPaused, SearchStatusClosed:
		return true
	}
	return false
}

// Search is a job posting candidates apply to
type Search struct {
	ID          kernel.SearchID          `db:"id" json:"id"`
	Title       kernel.SearchTitle       `db:"title" json:"title"`
	Area        kernel.SearchArea        `db:"area" json:"area"`
	Status      SearchStatus             `db:"status" json:"status"`
	Location    kernel.SearchLocation    `db:"location" json:"location"`
	Description kernel.SearchDescription `db:"description" json:"description"`
	CreatedBy   kernel.UserID            `db:"created_by" json:"created_by"`
	CreatedAt   time.Time                `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time                `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsActive checks if the search currently accepts applications
func (s *Search) IsActive() bool {
	return s.Status == SearchStatusActive
}

// ChangeStatus moves the search to another status in the enumeration
func (s *Search) ChangeStatus(newStatus SearchStatus) error {
	if !newStatus.IsValid() {
		return ErrInvalidStatus().WithDetail("status", newStatus)
	}
	s.Status = newStatus
	s.UpdatedAt = time.Now()
	return nil
}

// UpdateDetails updates the editable posting fields
func (s *Search) UpdateDetails(title kernel.SearchTitle, area kernel.SearchArea, location kernel.SearchLocation, description kernel.SearchDescription) {
	if title != "" {
		s.Title = title
	}
	if area != "" {
		s.Area = area
	}
	if location != "" {
		s.Location = location
	}
	if description != "" {
		s.Description = description
	}
	s.UpdatedAt = time.Now()
}
