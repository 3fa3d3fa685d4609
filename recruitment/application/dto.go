package application

import (
	"time"

	"github.com/talenthub/portal/pkg/kernel"
	"github.com/talenthub/portal/recruitment/search"
)

// SubmitRequest - DTO for applying to a search
type SubmitRequest struct {
	SearchID kernel.SearchID `json:"search_id" validate:"required"`
	Message  string          `json:"message,omitempty"`
}

// UpdateStateRequest - DTO for moving an application through review
type UpdateStateRequest struct {
	State ApplicationState `json:"state" validate:"required"`
}

// MyApplicationRow is one entry of the candidate's own listing, with
// the search details joined in
type MyApplicationRow struct {
	ID             kernel.ApplicationID  `db:"id" json:"id"`
	SearchID       kernel.SearchID       `db:"search_id" json:"search_id"`
	SearchTitle    kernel.SearchTitle    `db:"search_title" json:"search_title"`
	SearchArea     kernel.SearchArea     `db:"search_area" json:"search_area"`
	SearchStatus   search.SearchStatus   `db:"search_status" json:"search_status"`
	SearchLocation kernel.SearchLocation `db:"search_location" json:"search_location"`
	State          ApplicationState      `db:"state" json:"state"`
	CreatedAt      time.Time             `db:"created_at" json:"created_at"`
}

// AdminApplicationRow is one entry of the staff listing. It carries
// the frozen snapshot plus the candidate's account and current CV, so
// reviewers can compare what was submitted against what exists now.
type AdminApplicationRow struct {
	ID             kernel.ApplicationID `db:"id" json:"id"`
	SearchID       kernel.SearchID      `db:"search_id" json:"search_id"`
	SearchTitle    kernel.SearchTitle   `db:"search_title" json:"search_title"`
	CandidateID    kernel.UserID        `db:"candidate_id" json:"candidate_id"`
	CandidateEmail kernel.Email         `db:"candidate_email" json:"candidate_email"`
	Message        string               `db:"message" json:"message,omitempty"`
	CvSnapshot     CvSnapshot           `db:"cv_snapshot" json:"cv_snapshot"`
	CurrentCvID    *kernel.CvID         `db:"current_cv_id" json:"current_cv_id,omitempty"`
	State          ApplicationState     `db:"state" json:"state"`
	CreatedAt      time.Time            `db:"created_at" json:"created_at"`
}

// AdminListFilters narrows the staff listing. Zero values mean no
// filtering on that axis.
type AdminListFilters struct {
	State    ApplicationState
	SearchID kernel.SearchID
	Query    string // free text against snapshot name, email and message
}
