package cv

import (
	"github.com/talenthub/portal/pkg/kernel"
)

// SaveCvRequest - DTO for creating or replacing the caller's CV data.
// The document reference is managed through the dedicated document
// endpoints, never through this request.
type SaveCvRequest struct {
	FirstName  kernel.FirstName  `json:"first_name" validate:"required"`
	LastName   kernel.LastName   `json:"last_name" validate:"required"`
	Email      kernel.Email      `json:"email" validate:"required,email"`
	Phone      kernel.Phone      `json:"phone,omitempty"`
	LinkedIn   string            `json:"linkedin,omitempty"`
	Website    string            `json:"website,omitempty"`
	Summary    string            `json:"summary,omitempty"`
	Education  []EducationEntry  `json:"education,omitempty"`
	Experience []ExperienceEntry `json:"experience,omitempty"`
}

// UploadDocumentResponse - response after a document upload
type UploadDocumentResponse struct {
	CvID     kernel.CvID    `json:"cv_id"`
	FileID   kernel.FileID  `json:"file_id"`
	URL      kernel.FileURL `json:"url"`
	FileName string         `json:"file_name"`
	FileSize int            `json:"file_size"`
}

// DocumentURLResponse - a freshly resolved download URL
type DocumentURLResponse struct {
	URL kernel.FileURL `json:"url"`
}
