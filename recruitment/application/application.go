package application

import (
	"database/sql/driver"
	"encoding/json"
	"slices"
	"time"

	"github.com/talenthub/portal/pkg/kernel"
	"github.com/talenthub/portal/recruitment/cv"
)

// ApplicationState represents the review state of an application
type ApplicationState string

const (
	ApplicationStateSubmitted   ApplicationState = "SUBMITTED"   // Initial submission
	ApplicationStateInReview    ApplicationState = "IN_REVIEW"   // Being reviewed
	ApplicationStateShortlisted ApplicationState = "SHORTLISTED" // Passed initial review
	ApplicationStateRejected    ApplicationState = "REJECTED"    // Rejected
	ApplicationStateHired       ApplicationState = "HIRED"       // Hired
)

// ValidStates lists every known application state
var ValidStates = []ApplicationState{
	ApplicationStateSubmitted,
	ApplicationStateInReview,
	ApplicationStateShortlisted,
	ApplicationStateRejected,
	ApplicationStateHired,
}

// IsValid checks whether the state is part of the known set
func (s ApplicationState) IsValid() bool {
	return slices.Contains(ValidStates, s)
}

// SnapshotSchemaVersion tags every frozen snapshot so future shape
// changes can be migrated or read conditionally.
const SnapshotSchemaVersion = 1

// CvSnapshot is the immutable copy of the candidate's CV taken at
// submission time. It never changes after the application is created,
// no matter what happens to the live CV.
type CvSnapshot struct {
	SchemaVersion int               `json:"schema_version"`
	FirstName     kernel.FirstName  `json:"first_name"`
	LastName      kernel.LastName   `json:"last_name"`
	Email         kernel.Email      `json:"email"`
	Phone         kernel.Phone      `json:"phone,omitempty"`
	LinkedIn      string            `json:"linkedin,omitempty"`
	Website       string            `json:"website,omitempty"`
	Summary       string            `json:"summary,omitempty"`
	Education     cv.EducationList  `json:"education"`
	Experience    cv.ExperienceList `json:"experience"`
	Document      *cv.Document      `json:"document,omitempty"`
	TakenAt       time.Time         `json:"taken_at"`
}

// HasDocument reports whether the snapshot carries a complete
// document reference
func (s *CvSnapshot) HasDocument() bool {
	return s != nil && s.Document.IsComplete()
}

func (s CvSnapshot) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *CvSnapshot) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return ErrInvalidRequest().WithDetail("scan_type", "unsupported cv_snapshot source")
	}
}

type Application struct {
	ID          kernel.ApplicationID `db:"id" json:"id"`
	SearchID    kernel.SearchID      `db:"search_id" json:"search_id"`
	CandidateID kernel.UserID        `db:"candidate_id" json:"candidate_id"`
	Message     string               `db:"message" json:"message,omitempty"`
	CvSnapshot  CvSnapshot           `db:"cv_snapshot" json:"cv_snapshot"`
	State       ApplicationState     `db:"state" json:"state"`
	CreatedAt   time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsTerminal checks whether the application reached a final state
func (a *Application) IsTerminal() bool {
	return a.State == ApplicationStateRejected || a.State == ApplicationStateHired
}

// IsOwnedBy checks whether the given user submitted this application
func (a *Application) IsOwnedBy(userID kernel.UserID) bool {
	return a.CandidateID == userID
}

// validTransitions defines the forward review flow. Rejection is
// reachable from any non-terminal state.
var validTransitions = map[ApplicationState][]ApplicationState{
	ApplicationStateSubmitted: {
		ApplicationStateInReview,
		ApplicationStateShortlisted,
		ApplicationStateRejected,
	},
	ApplicationStateInReview: {
		ApplicationStateShortlisted,
		ApplicationStateRejected,
	},
	ApplicationStateShortlisted: {
		ApplicationStateHired,
		ApplicationStateRejected,
	},
}

// CanTransitionTo checks the transition table. Terminal states allow
// no further transitions.
func (a *Application) CanTransitionTo(newState ApplicationState) bool {
	allowed, ok := validTransitions[a.State]
	if !ok {
		return false
	}
	return slices.Contains(allowed, newState)
}

// ChangeState moves the application to a new state. The target must
// be a known state; when strict is set it must also follow the
// transition table.
func (a *Application) ChangeState(newState ApplicationState, strict bool) error {
	if !newState.IsValid() {
		return ErrInvalidState().
			WithDetail("state", newState).
			WithDetail("valid_states", ValidStates)
	}
	if strict && !a.CanTransitionTo(newState) {
		return ErrInvalidStateTransition().
			WithDetail("current_state", a.State).
			WithDetail("new_state", newState)
	}

	a.State = newState
	a.UpdatedAt = time.Now()
	return nil
}

// SnapshotFromCv freezes the candidate's current CV into an immutable
// snapshot. Only a complete document reference is copied; a partial
// one is dropped rather than carried over half-populated.
func SnapshotFromCv(record *cv.CvRecord) CvSnapshot {
	snap := CvSnapshot{
		SchemaVersion: SnapshotSchemaVersion,
		FirstName:     record.FirstName,
		LastName:      record.LastName,
		Email:         record.Email,
		Phone:         record.Phone,
		LinkedIn:      record.LinkedIn,
		Website:       record.Website,
		Summary:       record.Summary,
		Education:     slices.Clone(record.Education),
		Experience:    slices.Clone(record.Experience),
		TakenAt:       time.Now(),
	}

	if record.HasDocument() {
		doc := cv.Document(*record.Document)
		snap.Document = &doc
	}

	return snap
}
