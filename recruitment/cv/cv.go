package cv

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/talenthub/portal/pkg/kernel"
)

// EducationEntry is one item of the CV's ordered education history
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	StartYear   int    `json:"start_year"`
	EndYear     int    `json:"end_year,omitempty"` // zero while in progress
	Description string `json:"description,omitempty"`
}

// ExperienceEntry is one item of the CV's ordered work history
type ExperienceEntry struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"` // empty while current
	Description string `json:"description,omitempty"`
}

// Document references the CV file held by the external storage
// provider. Either both fields are set or the document is absent.
type Document struct {
	FileID kernel.FileID  `json:"file_id"`
	URL    kernel.FileURL `json:"url"`
}

// IsComplete reports whether both halves of the reference are present
func (d *Document) IsComplete() bool {
	return d != nil && !d.FileID.IsEmpty() && !d.URL.IsEmpty()
}

// CvRecord is the mutable, latest version of a candidate's résumé.
// At most one exists per user.
type CvRecord struct {
	ID        kernel.CvID      `db:"id" json:"id"`
	UserID    kernel.UserID    `db:"user_id" json:"user_id"`
	FirstName kernel.FirstName `db:"first_name" json:"first_name"`
	LastName  kernel.LastName  `db:"last_name" json:"last_name"`
	Email     kernel.Email     `db:"email" json:"email"`
	Phone     kernel.Phone     `db:"phone" json:"phone"`
	LinkedIn  string           `db:"linkedin" json:"linkedin,omitempty"`
	Website   string           `db:"website" json:"website,omitempty"`
	Summary   string           `db:"summary" json:"summary,omitempty"`

	Education  EducationList  `db:"education" json:"education"`
	Experience ExperienceList `db:"experience" json:"experience"`

	Document *DocumentRef `db:"document" json:"document,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// HasDocument reports whether a complete document reference is attached
func (c *CvRecord) HasDocument() bool {
	return (*Document)(c.Document).IsComplete()
}

// AttachDocument sets the document reference. Callers only invoke this
// after a successful upload, so the reference is never half-populated.
func (c *CvRecord) AttachDocument(fileID kernel.FileID, url kernel.FileURL) error {
	if fileID.IsEmpty() || url.IsEmpty() {
		return ErrIncompleteDocument().
			WithDetail("file_id", fileID).
			WithDetail("url", url)
	}
	c.Document = &DocumentRef{FileID: fileID, URL: url}
	c.UpdatedAt = time.Now()
	return nil
}

// DetachDocument clears the document reference and returns the old
// provider file id so the caller can schedule the remote delete.
func (c *CvRecord) DetachDocument() kernel.FileID {
	var old kernel.FileID
	if c.Document != nil {
		old = c.Document.FileID
	}
	c.Document = nil
	c.UpdatedAt = time.Now()
	return old
}

// ============================================================================
// JSONB column types
// ============================================================================

// EducationList stores education entries as a jsonb column
type EducationList []EducationEntry

func (l EducationList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *EducationList) Scan(src any) error {
	return scanJSON(src, l)
}

// ExperienceList stores experience entries as a jsonb column
type ExperienceList []ExperienceEntry

func (l ExperienceList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *ExperienceList) Scan(src any) error {
	return scanJSON(src, l)
}

// DocumentRef stores the document reference as a nullable jsonb column
type DocumentRef Document

func (d *DocumentRef) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

func (d *DocumentRef) Scan(src any) error {
	if src == nil {
		return nil
	}
	return scanJSON(src, d)
}

func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}
