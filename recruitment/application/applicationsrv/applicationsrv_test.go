package applicationsrv_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenthub/portal/pkg/errx"
	"github.com/talenthub/portal/pkg/iam/user"
	"github.com/talenthub/portal/pkg/kernel"
	"github.com/talenthub/portal/recruitment/application"
	"github.com/talenthub/portal/recruitment/application/applicationsrv"
	"github.com/talenthub/portal/recruitment/cv"
	"github.com/talenthub/portal/recruitment/search"
)

// ============================================================================
// Fakes
// ============================================================================

type fakeAppRepo struct {
	apps       map[kernel.ApplicationID]*application.Application
	existing   bool
	created    *application.Application
	deleted    []kernel.ApplicationID
	myRows     []application.MyApplicationRow
	adminRows  []application.AdminApplicationRow
	lastFilter application.AdminListFilters
}

func newFakeAppRepo() *fakeAppRepo {
	return &fakeAppRepo{apps: map[kernel.ApplicationID]*application.Application{}}
}

func (r *fakeAppRepo) Create(_ context.Context, app *application.Application) error {
	if r.existing {
		return application.ErrAlreadyApplied()
	}
	r.created = app
	r.apps[app.ID] = app
	return nil
}

func (r *fakeAppRepo) GetByID(_ context.Context, id kernel.ApplicationID) (*application.Application, error) {
	app, ok := r.apps[id]
	if !ok {
		return nil, application.ErrApplicationNotFound()
	}
	return app, nil
}

func (r *fakeAppRepo) GetByIDAndOwner(_ context.Context, id kernel.ApplicationID, ownerID kernel.UserID) (*application.Application, error) {
	app, ok := r.apps[id]
	if !ok || !app.IsOwnedBy(ownerID) {
		return nil, application.ErrApplicationNotFound()
	}
	return app, nil
}

func (r *fakeAppRepo) UpdateState(_ context.Context, app *application.Application) error {
	if _, ok := r.apps[app.ID]; !ok {
		return application.ErrApplicationNotFound()
	}
	r.apps[app.ID] = app
	return nil
}

func (r *fakeAppRepo) Delete(_ context.Context, id kernel.ApplicationID) error {
	if _, ok := r.apps[id]; !ok {
		return application.ErrApplicationNotFound()
	}
	delete(r.apps, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeAppRepo) ExistsBySearchAndCandidate(_ context.Context, _ kernel.SearchID, _ kernel.UserID) (bool, error) {
	return r.existing, nil
}

func (r *fakeAppRepo) ListByCandidate(_ context.Context, _ kernel.UserID) ([]application.MyApplicationRow, error) {
	return r.myRows, nil
}

func (r *fakeAppRepo) AdminList(_ context.Context, filters application.AdminListFilters) ([]application.AdminApplicationRow, error) {
	r.lastFilter = filters
	return r.adminRows, nil
}

type fakeSearchRepo struct {
	searches map[kernel.SearchID]*search.Search
}

func (r *fakeSearchRepo) Create(_ context.Context, _ *search.Search) error { return nil }
func (r *fakeSearchRepo) Update(_ context.Context, _ kernel.SearchID, _ *search.Search) error {
	return nil
}
func (r *fakeSearchRepo) Delete(_ context.Context, _ kernel.SearchID) error { return nil }
func (r *fakeSearchRepo) List(_ context.Context, _ kernel.PaginationOptions) (*kernel.Paginated[search.Search], error) {
	return nil, nil
}
func (r *fakeSearchRepo) ListByStatus(_ context.Context, _ search.SearchStatus, _ kernel.PaginationOptions) (*kernel.Paginated[search.Search], error) {
	return nil, nil
}
func (r *fakeSearchRepo) Exists(_ context.Context, id kernel.SearchID) (bool, error) {
	_, ok := r.searches[id]
	return ok, nil
}

func (r *fakeSearchRepo) GetByID(_ context.Context, id kernel.SearchID) (*search.Search, error) {
	s, ok := r.searches[id]
	if !ok {
		return nil, search.ErrSearchNotFound()
	}
	return s, nil
}

type fakeCvRepo struct {
	records map[kernel.UserID]*cv.CvRecord
}

func (r *fakeCvRepo) Create(_ context.Context, _ *cv.CvRecord) error { return nil }
func (r *fakeCvRepo) Update(_ context.Context, _ kernel.CvID, _ *cv.CvRecord) error {
	return nil
}
func (r *fakeCvRepo) GetByID(_ context.Context, _ kernel.CvID) (*cv.CvRecord, error) {
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

type fakeUserRepo struct {
	users map[kernel.UserID]*user.User
}

func (r *fakeUserRepo) FindByID(_ context.Context, id kernel.UserID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound()
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, _ kernel.Email) (*user.User, error) {
	return nil, user.ErrUserNotFound()
}

// ============================================================================
// Setup
// ============================================================================

type testDeps struct {
	appRepo    *fakeAppRepo
	searchRepo *fakeSearchRepo
	cvRepo     *fakeCvRepo
	userRepo   *fakeUserRepo
}

func setup(cfg applicationsrv.Config) (*applicationsrv.ApplicationService, *testDeps) {
	deps := &testDeps{
		appRepo:    newFakeAppRepo(),
		searchRepo: &fakeSearchRepo{searches: map[kernel.SearchID]*search.Search{}},
		cvRepo:     &fakeCvRepo{records: map[kernel.UserID]*cv.CvRecord{}},
		userRepo:   &fakeUserRepo{users: map[kernel.UserID]*user.User{}},
	}
	svc := applicationsrv.NewApplicationService(deps.appRepo, deps.searchRepo, deps.cvRepo, deps.userRepo, cfg)
	return svc, deps
}

var (
	searchID    = kernel.NewSearchID("0b39c1b6-5d0e-4ab6-bd17-5e7b2f1c9a01")
	candidateID = kernel.NewUserID("user-1")
)

func activeSearch() *search.Search {
	return &search.Search{
		ID:     searchID,
		Title:  "Backend Engineer",
		Status: search.SearchStatusActive,
	}
}

func candidateCv() *cv.CvRecord {
	return &cv.CvRecord{
		ID:        kernel.NewCvID("cv-1"),
		UserID:    candidateID,
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
		Document:  &cv.DocumentRef{FileID: "file-1", URL: "https://bucket/file-1"},
	}
}

// ============================================================================
// Submit
// ============================================================================

func TestSubmit_FreezesCvSnapshot(t *testing.T) {
	svc, deps := setup(applicationsrv.Config{})
	deps.searchRepo.searches[searchID] = activeSearch()
	deps.cvRepo.records[candidateID] = candidateCv()

	app, err := svc.Submit(context.Background(), candidateID, application.SubmitRequest{
		SearchID: searchID,
		Message:  "Very interested",
	})

	require.NoError(t, err)
	require.NotNil(t, deps.appRepo.created)
	assert.Equal(t, application.ApplicationStateSubmitted, app.State)
	assert.Equal(t, "Very interested", app.Message)
	assert.Equal(t, application.SnapshotSchemaVersion, app.CvSnapshot.SchemaVersion)
	assert.Equal(t, kernel.FirstName("Grace"), app.CvSnapshot.FirstName)
	require.NotNil(t, app.CvSnapshot.Document)
	assert.Equal(t, kernel.FileID("file-1"), app.CvSnapshot.Document.FileID)

	// Later edits to the live CV must not leak into the stored snapshot
	deps.cvRepo.records[candidateID].FirstName = "Changed"
	assert.Equal(t, kernel.FirstName("Grace"), deps.appRepo.created.CvSnapshot.FirstName)
}

func TestSubmit_FallsBackToAccountData(t *testing.T) {
	svc, deps := setup(applicationsrv.Config{})
	deps.searchRepo.searches[searchID] = activeSearch()
	deps.userRepo.users[candidateID] = &user.User{
		ID:        candidateID,
		Email:     "grace@example.com",
		FirstName: "Grace",
		LastName:  "Hopper",
		Phone:     "+5491100000000",
	}

	app, err := svc.Submit(context.Background(), candidateID, application.SubmitRequest{SearchID: searchID})

	require.NoError(t, err)
	assert.Equal(t, kernel.Email("grace@example.com"), app.CvSnapshot.Email)
	assert.Equal(t, kernel.FirstName("Grace"), app.CvSnapshot.FirstName)
	assert.Nil(t, app.CvSnapshot.Document)
}

func TestSubmit_SearchNotFound(t *testing.T) {
	svc, _ := setup(applicationsrv.Config{})

	_, err := svc.Submit(context.Background(), candidateID, application.SubmitRequest{SearchID: searchID})

	require.Error(t, err)
	assert.True(t, errx.IsCode(err, search.CodeSearchNotFound))
}

func TestSubmit_SearchNotActive(t *testing.T) {
	svc, deps := setup(applicationsrv.Config{})
	paused := activeSearch()
	paused.Status = search.SearchStatusPaused
	deps.searchRepo.searches[searchID] = paused

	_, err := svc.Submit(context.Background(), candidateID, application.SubmitRequest{SearchID: searchID})

	require.Error(t, err)
	assert.True(t, errx.IsCode(err, search.CodeSearchNotActive))
}

func TestSubmit_AlreadyApplied(t *testing.T) {
	svc, deps := setup(applicationsrv.Config{})
	deps.searchRepo.searches[searchID] = activeSearch()
	deps.cvRepo.records[candidateID] = candidateCv()
	deps.appRepo.existing = true

	_, err := svc.Submit(context.Background(), candidateID, application.SubmitRequest{SearchID: searchID})

	require.Error(t, err)
	assert.True(t, errx.IsCode(err, application.CodeAlreadyApplied))
}

func TestSubmit_MissingSearchID(t *testing.T) {
	svc, _ := setup(applicationsrv.Config{})

	_, err := svc.Submit(context.Background(), candidateID, application.SubmitRequest{})

	require.Error(t, err)
	assert.True(t, errx.IsCode(err, application.CodeInvalidRequest))
}

// ============================================================================
// ListMine
// ============================================================================

func TestListMine_CarriesSearchDetails(t *testing.T) {
	svc, deps := setup(applicationsrv.Config{})
	deps.appRepo.myRows = []application.MyApplicationRow{{
		ID:             kernel.NewApplicationID("app-1"),
		SearchID:       searchID,
		SearchTitle:    "Backend Engineer",
		SearchArea:     "Engineering",
		SearchStatus:   search.SearchStatusPaused,
		SearchLocation: "Remote",
		State:          application.ApplicationStateSubmitted,
	}}

	rows, err := svc.ListMine(context.Background(), candidateID)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	// The posting's current status rides along so candidates can see
	// when a search they applied to was paused or closed
	assert.Equal(t, search.SearchStatusPaused, rows[0].SearchStatus)
	assert.Equal(t, kernel.SearchTitle("Backend Engineer"), rows[0].SearchTitle)
	assert.Equal(t, kernel.SearchLocation("Remote"), rows[0].SearchLocation)
}

// ============================================================================
// Transition
// ============================================================================

func TestTransition_DirectHireAllowedByDefault(t *testing.T) {
	svc, deps := setup(applicationsrv.Config{})
	app := &application.Application{
		ID:          kernel.NewApplicationID("app-1"),
		CandidateID: candidateID,
		State:       application.ApplicationStateSubmitted,
	}
	deps.appRepo.apps[app.ID] = app

	updated, err := svc.Transition(context.Background(), app.ID, application.ApplicationStateHired)

	require.NoError(t, err)
	assert.Equal(t, application.ApplicationStateHired, updated.State)
}

func TestTransition_StrictRejectsDirectHire(t *testing.T) {
	svc, deps := setup(applicationsrv.Config{StrictTransitions: true})
	app := &application.Application{
		ID:          kernel.NewApplicationID("app-1"),
		CandidateID: candidateID,
		State:       application.ApplicationStateSubmitted,
	}
	deps.appRepo.apps[app.ID] = app

	_, err := svc.Transition(context.Background(), app.ID, application.ApplicationStateHired)

	require.Error(t, err)
	assert.True(t, errx.IsCode(err, application.CodeInvalidStateTransition))
}

func TestTransition_UnknownState(t *testing.T) {
	svc, deps := setup(applicationsrv.Config{})
	app := &application.Application{
		ID:    kernel.NewApplicationID("app-1"),
		State: application.ApplicationStateSubmitted,
	}
	deps.appRepo.apps[app.ID] = app

	_, err := svc.Transition(context.Background(), app.ID, "PENDING")

	require.Error(t, err)
	assert.True(t, errx.IsCode(err, application.CodeInvalidState))
}

func TestTransition_NotFound(t *testing.T) {
	svc, _ := setup(applicationsrv.Config{})

	_, err := svc.Transition(context.Background(), kernel.NewApplicationID("missing"), application.ApplicationStateInReview)

	require.Error(t, err)
	assert.True(t, errx.IsCode(err, application.CodeApplicationNotFound))
}

// ============================================================================
// Withdraw
// ============================================================================

func TestWithdraw_DeletesOwnApplication(t *testing.T) {
	svc, deps := setup(applicationsrv.Config{})
	app := &application.Application{
		ID:          kernel.NewApplicationID("app-1"),
		CandidateID: candidateID,
		State:       application.ApplicationStateSubmitted,
	}
	deps.appRepo.apps[app.ID] = app

	err := svc.Withdraw(context.Background(), app.ID, candidateID)

	require.NoError(t, err)
	assert.Equal(t, []kernel.ApplicationID{app.ID}, deps.appRepo.deleted)
}

func TestWithdraw_ForeignApplicationLooksMissing(t *testing.T) {
	svc, deps := setup(applicationsrv.Config{})
	app := &application.Application{
		ID:          kernel.NewApplicationID("app-1"),
		CandidateID: kernel.NewUserID("someone-else"),
		State:       application.ApplicationStateSubmitted,
	}
	deps.appRepo.apps[app.ID] = app

	err := svc.Withdraw(context.Background(), app.ID, candidateID)

	require.Error(t, err)
	assert.True(t, errx.IsCode(err, application.CodeApplicationNotFound))
	assert.Empty(t, deps.appRepo.deleted)
}

// ============================================================================
// AdminList
// ============================================================================

func TestAdminList_RejectsUnknownStateFilter(t *testing.T) {
	svc, _ := setup(applicationsrv.Config{})

	_, err := svc.AdminList(context.Background(), application.AdminListFilters{State: "PENDING"})

	require.Error(t, err)
	assert.True(t, errx.IsCode(err, application.CodeInvalidStateFilter))
}

func TestAdminList_MalformedSearchIDReturnsEmpty(t *testing.T) {
	svc, deps := setup(applicationsrv.Config{})
	deps.appRepo.adminRows = []application.AdminApplicationRow{{ID: "app-1"}}

	rows, err := svc.AdminList(context.Background(), application.AdminListFilters{SearchID: "not-a-uuid"})

	require.NoError(t, err)
	assert.Empty(t, rows)
	// The repository must not even be consulted
	assert.Equal(t, application.AdminListFilters{}, deps.appRepo.lastFilter)
}

func TestAdminList_PassesFiltersThrough(t *testing.T) {
	svc, deps := setup(applicationsrv.Config{})
	deps.appRepo.adminRows = []application.AdminApplicationRow{{ID: "app-1"}}

	filters := application.AdminListFilters{
		State:    application.ApplicationStateShortlisted,
		SearchID: searchID,
		Query:    "grace",
	}
	rows, err := svc.AdminList(context.Background(), filters)

	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, filters, deps.appRepo.lastFilter)
}
