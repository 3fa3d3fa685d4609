package cvsrv

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/talenthub/portal/pkg/errx"
	"github.com/talenthub/portal/pkg/fsx"
	"github.com/talenthub/portal/pkg/kernel"
	"github.com/talenthub/portal/pkg/logx"
	"github.com/talenthub/portal/recruitment/cv"
)

const maxDocumentSize = 10 * 1024 * 1024 // 10MB

var allowedDocumentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// CvService provides business operations for CV maintenance
type CvService struct {
	cvRepo  cv.Repository
	storage fsx.FileStorage
	cleanup cv.CleanupQueue
}

// NewCvService creates a new instance of the CV service
func NewCvService(cvRepo cv.Repository, storage fsx.FileStorage, cleanup cv.CleanupQueue) *CvService {
	return &CvService{
		cvRepo:  cvRepo,
		storage: storage,
		cleanup: cleanup,
	}
}

// GetCvByUserID retrieves the caller's CV record
func (s *CvService) GetCvByUserID(ctx context.Context, userID kernel.UserID) (*cv.CvRecord, error) {
	return s.cvRepo.GetByUserID(ctx, userID)
}

// SaveCv creates or replaces the caller's CV data. The document
// reference is left untouched; it only changes through the document
// operations below.
func (s *CvService) SaveCv(ctx context.Context, userID kernel.UserID, req cv.SaveCvRequest) (*cv.CvRecord, error) {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		return nil, cv.ErrInvalidRequest().WithDetail("missing", "first_name, last_name and email are required")
	}
	if !req.Email.IsValid() {
		return nil, cv.ErrInvalidRequest().WithDetail("email", req.Email)
	}

	existing, err := s.cvRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errx.IsCode(err, cv.CodeCvNotFound) {
			return nil, err
		}
		existing = nil
	}

	now := time.Now()
	if existing == nil {
		record := &cv.CvRecord{
			ID:         kernel.NewCvID(uuid.NewString()),
			UserID:     userID,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Email:      req.Email,
			Phone:      req.Phone,
			LinkedIn:   req.LinkedIn,
			Website:    req.Website,
			Summary:    req.Summary,
			Education:  req.Education,
			Experience: req.Experience,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.cvRepo.Create(ctx, record); err != nil {
			return nil, errx.Wrap(err, "failed to create cv", errx.TypeInternal)
		}
		return record, nil
	}

	existing.FirstName = req.FirstName
	existing.LastName = req.LastName
	existing.Email = req.Email
	existing.Phone = req.Phone
	existing.LinkedIn = req.LinkedIn
	existing.Website = req.Website
	existing.Summary = req.Summary
	existing.Education = req.Education
	existing.Experience = req.Experience
	existing.UpdatedAt = now

	if err := s.cvRepo.Update(ctx, existing.ID, existing); err != nil {
		return nil, errx.Wrap(err, "failed to update cv", errx.TypeInternal)
	}

	return existing, nil
}

// UploadDocument stores a new CV file and swaps the document
// reference. The reference is written only after the upload succeeds,
// so it can never be half-populated. A previously attached file is
// deleted best-effort; a failed remote delete goes to the cleanup
// queue instead of blocking the local update.
func (s *CvService) UploadDocument(ctx context.Context, userID kernel.UserID, data []byte, filename string, contentType string) (*cv.UploadDocumentResponse, error) {
	if len(data) == 0 || filename == "" {
		return nil, cv.ErrInvalidRequest().WithDetail("file", "missing or empty")
	}
	if len(data) > maxDocumentSize {
		return nil, cv.ErrFileSizeTooLarge().
			WithDetail("file_size", len(data)).
			WithDetail("max_size", maxDocumentSize)
	}
	if !allowedDocumentTypes[contentType] {
		return nil, cv.ErrInvalidFileType().
			WithDetail("content_type", contentType).
			WithDetail("allowed_types", "pdf, doc, docx")
	}

	record, err := s.cvRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	stored, err := s.storage.Upload(ctx, data, filename)
	if err != nil {
		// provider diagnostics already preserved by the storage client
		return nil, err
	}

	oldFileID := record.DetachDocument()
	if err := record.AttachDocument(stored.ID, stored.URL); err != nil {
		return nil, err
	}

	if err := s.cvRepo.Update(ctx, record.ID, record); err != nil {
		// roll the orphaned upload into the cleanup queue
		s.scheduleCleanup(ctx, stored.ID)
		return nil, errx.Wrap(err, "failed to update cv with document", errx.TypeInternal)
	}

	if !oldFileID.IsEmpty() && !s.storage.Delete(ctx, oldFileID) {
		s.scheduleCleanup(ctx, oldFileID)
	}

	return &cv.UploadDocumentResponse{
		CvID:     record.ID,
		FileID:   stored.ID,
		URL:      stored.URL,
		FileName: filename,
		FileSize: len(data),
	}, nil
}

// RemoveDocument clears the document reference. Local state is
// authoritative: the record is updated first and the remote delete is
// retried out-of-band when it fails.
func (s *CvService) RemoveDocument(ctx context.Context, userID kernel.UserID) error {
	record, err := s.cvRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if !record.HasDocument() {
		return cv.ErrDocumentNotFound().WithDetail("user_id", userID.String())
	}

	fileID := record.DetachDocument()
	if err := s.cvRepo.Update(ctx, record.ID, record); err != nil {
		return errx.Wrap(err, "failed to clear cv document", errx.TypeInternal)
	}

	if !s.storage.Delete(ctx, fileID) {
		s.scheduleCleanup(ctx, fileID)
	}

	return nil
}

// ResolveDocumentURL returns a fresh download URL for the caller's
// attached document
func (s *CvService) ResolveDocumentURL(ctx context.Context, userID kernel.UserID) (kernel.FileURL, error) {
	record, err := s.cvRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	return s.resolveDocument(ctx, record)
}

// ResolveDocumentURLByCvID returns a fresh download URL for any CV's
// attached document (admin surface)
func (s *CvService) ResolveDocumentURLByCvID(ctx context.Context, cvID kernel.CvID) (kernel.FileURL, error) {
	record, err := s.cvRepo.GetByID(ctx, cvID)
	if err != nil {
		return "", err
	}
	return s.resolveDocument(ctx, record)
}

func (s *CvService) resolveDocument(ctx context.Context, record *cv.CvRecord) (kernel.FileURL, error) {
	if !record.HasDocument() {
		return "", cv.ErrDocumentNotFound().WithDetail("cv_id", record.ID.String())
	}

	url, err := s.storage.ResolveDownloadURL(ctx, record.Document.FileID)
	if err != nil {
		return "", errx.Wrap(err, "failed to resolve document url", errx.TypeExternal)
	}
	if url.IsEmpty() {
		return "", cv.ErrDocumentNotFound().WithDetail("file_id", record.Document.FileID)
	}

	return url, nil
}

func (s *CvService) scheduleCleanup(ctx context.Context, fileID kernel.FileID) {
	job := &cv.FileCleanupJob{
		FileID:     fileID,
		EnqueuedAt: time.Now(),
	}
	if err := s.cleanup.Enqueue(ctx, job); err != nil {
		logx.Errorf("failed to enqueue cleanup for file %s: %v", fileID, err)
	}
}
