package cvsrv_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenthub/portal/pkg/errx"
	"github.com/talenthub/portal/pkg/fsx"
	"github.com/talenthub/portal/pkg/kernel"
	"github.com/talenthub/portal/recruitment/cv"
	"github.com/talenthub/portal/recruitment/cv/cvsrv"
)

// ============================================================================
// Fakes
// ============================================================================

type fakeCvRepo struct {
	records   map[kernel.UserID]*cv.CvRecord
	updateErr error
	created   *cv.CvRecord
}

func newFakeCvRepo() *fakeCvRepo {
	return &fakeCvRepo{records: map[kernel.UserID]*cv.CvRecord{}}
}

func (r *fakeCvRepo) Create(_ context.Context, record *cv.CvRecord) error {
	r.created = record
	r.records[record.UserID] = record
	return nil
}

func (r *fakeCvRepo) Update(_ context.Context, _ kernel.CvID, record *cv.CvRecord) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.records[record.UserID] = record
	return nil
}

func (r *fakeCvRepo) GetByID(_ context.Context, id kernel.CvID) (*cv.CvRecord, error) {
	for _, record := range r.records {
		if record.ID == id {
			return record, nil
		}
	}
	return nil, cv.ErrCvNotFound()
}

func (r *fakeCvRepo) GetByUserID(_ context.Context, userID kernel.UserID) (*cv.CvRecord, error) {
	record, ok := r.records[userID]
	if !ok {
		return nil, cv.ErrCvNotFound()
	}
	return record, nil
}

func (r *fakeCvRepo) ExistsByUserID(_ context.Context, userID kernel.UserID) (bool, error) {
	_, ok := r.records[userID]
	return ok, nil
}

type fakeStorage struct {
	uploaded    []string
	uploadErr   error
	stored      *fsx.StoredFile
	autoID      bool // assign a distinct id per upload, like the real adapter
	deleted     []kernel.FileID
	deleteOK    bool
	resolvedURL kernel.FileURL
	resolveErr  error
}

func (s *fakeStorage) Upload(_ context.Context, _ []byte, filename string) (*fsx.StoredFile, error) {
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	s.uploaded = append(s.uploaded, filename)
	if s.autoID {
		id := kernel.FileID(fmt.Sprintf("file-%d/%s", len(s.uploaded), filename))
		return &fsx.StoredFile{ID: id, URL: kernel.FileURL("https://bucket/" + id.String())}, nil
	}
	return s.stored, nil
}

func (s *fakeStorage) ResolveDownloadURL(_ context.Context, _ kernel.FileID) (kernel.FileURL, error) {
	return s.resolvedURL, s.resolveErr
}

func (s *fakeStorage) Delete(_ context.Context, id kernel.FileID) bool {
	s.deleted = append(s.deleted, id)
	return s.deleteOK
}

type fakeCleanupQueue struct {
	enqueued []*cv.FileCleanupJob
}

func (q *fakeCleanupQueue) Enqueue(_ context.Context, job *cv.FileCleanupJob) error {
	q.enqueued = append(q.enqueued, job)
	return nil
}

func (q *fakeCleanupQueue) EnqueueDelayed(_ context.Context, job *cv.FileCleanupJob, _ time.Duration) error {
	q.enqueued = append(q.enqueued, job)
	return nil
}

func (q *fakeCleanupQueue) Dequeue(_ context.Context, _ time.Duration) ([]byte, error) {
	return nil, nil
}

func (q *fakeCleanupQueue) MoveDelayedToReady(_ context.Context) (int, error) { return 0, nil }
func (q *fakeCleanupQueue) Size(_ context.Context) (int64, error)             { return 0, nil }

// ============================================================================
// Setup
// ============================================================================

var userID = kernel.NewUserID("user-1")

func setup() (*cvsrv.CvService, *fakeCvRepo, *fakeStorage, *fakeCleanupQueue) {
	repo := newFakeCvRepo()
	storage := &fakeStorage{
		stored:   &fsx.StoredFile{ID: "file-new", URL: "https://bucket/file-new"},
		deleteOK: true,
	}
	queue := &fakeCleanupQueue{}
	return cvsrv.NewCvService(repo, storage, queue), repo, storage, queue
}

func existingCv() *cv.CvRecord {
	return &cv.CvRecord{
		ID:        kernel.NewCvID("cv-1"),
		UserID:    userID,
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
	}
}

func pdf(size int) []byte { return make([]byte, size) }

// ============================================================================
// SaveCv
// ============================================================================

func TestSaveCv_CreatesRecord(t *testing.T) {
	svc, repo, _, _ := setup()

	record, err := svc.SaveCv(context.Background(), userID, cv.SaveCvRequest{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, record, repo.created)
}

func TestSaveCv_PreservesDocumentOnUpdate(t *testing.T) {
	svc, repo, _, _ := setup()
	record := existingCv()
	record.Document = &cv.DocumentRef{FileID: "file-1", URL: "https://bucket/file-1"}
	repo.records[userID] = record

	updated, err := svc.SaveCv(context.Background(), userID, cv.SaveCvRequest{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "new@example.com",
		Summary:   "Updated",
	})

	require.NoError(t, err)
	assert.Equal(t, kernel.Email("new@example.com"), updated.Email)
	require.NotNil(t, updated.Document)
	assert.Equal(t, kernel.FileID("file-1"), updated.Document.FileID)
}

func TestSaveCv_RejectsMissingFields(t *testing.T) {
	svc, _, _, _ := setup()

	_, err := svc.SaveCv(context.Background(), userID, cv.SaveCvRequest{FirstName: "Grace"})

	require.Error(t, err)
	assert.True(t, errx.IsCode(err, cv.CodeInvalidRequest))
}

// ============================================================================
// UploadDocument
// ============================================================================

func TestUploadDocument_AttachesAfterSuccessfulUpload(t *testing.T) {
	svc, repo, storage, queue := setup()
	repo.records[userID] = existingCv()

	resp, err := svc.UploadDocument(context.Background(), userID, pdf(100), "cv.pdf", "application/pdf")

	require.NoError(t, err)
	assert.Equal(t, kernel.FileID("file-new"), resp.FileID)
	assert.Equal(t, []string{"cv.pdf"}, storage.uploaded)
	require.NotNil(t, repo.records[userID].Document)
	assert.Equal(t, kernel.FileID("file-new"), repo.records[userID].Document.FileID)
	assert.Empty(t, queue.enqueued)
}

func TestUploadDocument_RejectsOversizedFile(t *testing.T) {
	svc, repo, storage, _ := setup()
	repo.records[userID] = existingCv()

	_, err := svc.UploadDocument(context.Background(), userID, pdf(10*1024*1024+1), "cv.pdf", "application/pdf")

	require.Error(t, err)
	assert.True(t, errx.IsCode(err, cv.CodeFileSizeTooLarge))
	assert.Empty(t, storage.uploaded)
}

func TestUploadDocument_RejectsUnsupportedType(t *testing.T) {
	svc, repo, storage, _ := setup()
	repo.records[userID] = existingCv()

	_, err := svc.UploadDocument(context.Background(), userID, pdf(100), "cv.png", "image/png")

	require.Error(t, err)
	assert.True(t, errx.IsCode(err, cv.CodeInvalidFileType))
	assert.Empty(t, storage.uploaded)
}

func TestUploadDocument_UploadFailureLeavesReferenceUntouched(t *testing.T) {
	svc, repo, storage, _ := setup()
	record := existingCv()
	record.Document = &cv.DocumentRef{FileID: "file-old", URL: "https://bucket/file-old"}
	repo.records[userID] = record
	storage.uploadErr = errx.Wrap(assert.AnError, "provider down", errx.TypeExternal)

	_, err := svc.UploadDocument(context.Background(), userID, pdf(100), "cv.pdf", "application/pdf")

	require.Error(t, err)
	require.NotNil(t, repo.records[userID].Document)
	assert.Equal(t, kernel.FileID("file-old"), repo.records[userID].Document.FileID)
}

func TestUploadDocument_ReplacingDeletesOldFile(t *testing.T) {
	svc, repo, storage, queue := setup()
	record := existingCv()
	record.Document = &cv.DocumentRef{FileID: "file-old", URL: "https://bucket/file-old"}
	repo.records[userID] = record

	_, err := svc.UploadDocument(context.Background(), userID, pdf(100), "cv.pdf", "application/pdf")

	require.NoError(t, err)
	assert.Equal(t, []kernel.FileID{"file-old"}, storage.deleted)
	assert.Empty(t, queue.enqueued)
}

func TestUploadDocument_FailedOldDeleteGoesToCleanupQueue(t *testing.T) {
	svc, repo, storage, queue := setup()
	record := existingCv()
	record.Document = &cv.DocumentRef{FileID: "file-old", URL: "https://bucket/file-old"}
	repo.records[userID] = record
	storage.deleteOK = false

	_, err := svc.UploadDocument(context.Background(), userID, pdf(100), "cv.pdf", "application/pdf")

	require.NoError(t, err)
	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, kernel.FileID("file-old"), queue.enqueued[0].FileID)
	// The new reference stays attached regardless
	assert.Equal(t, kernel.FileID("file-new"), repo.records[userID].Document.FileID)
}

func TestUploadDocument_SameFilenameReplaceKeepsNewReference(t *testing.T) {
	svc, repo, storage, queue := setup()
	storage.autoID = true
	repo.records[userID] = existingCv()

	first, err := svc.UploadDocument(context.Background(), userID, pdf(100), "cv.pdf", "application/pdf")
	require.NoError(t, err)

	second, err := svc.UploadDocument(context.Background(), userID, pdf(200), "cv.pdf", "application/pdf")
	require.NoError(t, err)

	// Each upload gets its own object, so the replace cleanup only
	// ever hits the previous one
	assert.NotEqual(t, first.FileID, second.FileID)
	assert.Equal(t, []kernel.FileID{first.FileID}, storage.deleted)
	assert.Equal(t, second.FileID, repo.records[userID].Document.FileID)
	assert.Empty(t, queue.enqueued)
}

// ============================================================================
// RemoveDocument
// ============================================================================

func TestRemoveDocument_ClearsLocalFirst(t *testing.T) {
	svc, repo, storage, queue := setup()
	record := existingCv()
	record.Document = &cv.DocumentRef{FileID: "file-1", URL: "https://bucket/file-1"}
	repo.records[userID] = record

	err := svc.RemoveDocument(context.Background(), userID)

	require.NoError(t, err)
	assert.Nil(t, repo.records[userID].Document)
	assert.Equal(t, []kernel.FileID{"file-1"}, storage.deleted)
	assert.Empty(t, queue.enqueued)
}

func TestRemoveDocument_FailedRemoteDeleteIsQueued(t *testing.T) {
	svc, repo, storage, queue := setup()
	record := existingCv()
	record.Document = &cv.DocumentRef{FileID: "file-1", URL: "https://bucket/file-1"}
	repo.records[userID] = record
	storage.deleteOK = false

	err := svc.RemoveDocument(context.Background(), userID)

	// Local state wins even when the provider misbehaves
	require.NoError(t, err)
	assert.Nil(t, repo.records[userID].Document)
	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, kernel.FileID("file-1"), queue.enqueued[0].FileID)
}

func TestRemoveDocument_NoDocument(t *testing.T) {
	svc, repo, _, _ := setup()
	repo.records[userID] = existingCv()

	err := svc.RemoveDocument(context.Background(), userID)

	require.Error(t, err)
	assert.True(t, errx.IsCode(err, cv.CodeDocumentNotFound))
}

// ============================================================================
// ResolveDocumentURL
// ============================================================================

func TestResolveDocumentURL_ReturnsFreshURL(t *testing.T) {
	svc, repo, storage, _ := setup()
	record := existingCv()
	record.Document = &cv.DocumentRef{FileID: "file-1", URL: "https://bucket/file-1"}
	repo.records[userID] = record
	storage.resolvedURL = "https://bucket/file-1?signed"

	url, err := svc.ResolveDocumentURL(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, kernel.FileURL("https://bucket/file-1?signed"), url)
}

func TestResolveDocumentURL_UnresolvableFileLooksMissing(t *testing.T) {
	svc, repo, storage, _ := setup()
	record := existingCv()
	record.Document = &cv.DocumentRef{FileID: "file-1", URL: "https://bucket/file-1"}
	repo.records[userID] = record
	storage.resolvedURL = ""

	_, err := svc.ResolveDocumentURL(context.Background(), userID)

	require.Error(t, err)
	assert.True(t, errx.IsCode(err, cv.CodeDocumentNotFound))
}

func TestResolveDocumentURL_NoDocumentAttached(t *testing.T) {
	svc, repo, _, _ := setup()
	repo.records[userID] = existingCv()

	_, err := svc.ResolveDocumentURL(context.Background(), userID)

	require.Error(t, err)
	assert.True(t, errx.IsCode(err, cv.CodeDocumentNotFound))
}
