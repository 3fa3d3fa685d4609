package applicationsrv

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/talenthub/portal/pkg/errx"
	"github.com/talenthub/portal/pkg/iam/user"
	"github.com/talenthub/portal/pkg/kernel"
	"github.com/talenthub/portal/pkg/logx"
	"github.com/talenthub/portal/recruitment/application"
	"github.com/talenthub/portal/recruitment/cv"
	"github.com/talenthub/portal/recruitment/search"
)

// Config tunes service behavior
type Config struct {
	// StrictTransitions enforces the forward review flow. When off,
	// staff can move an application to any known state directly.
	StrictTransitions bool
}

// ApplicationService provides business operations for the application
// lifecycle
type ApplicationService struct {
	appRepo    application.Repository
	searchRepo search.Repository
	cvRepo     cv.Repository
	userRepo   user.Repository
	cfg        Config
}

// NewApplicationService creates a new instance of the application service
func NewApplicationService(
	appRepo application.Repository,
	searchRepo search.Repository,
	cvRepo cv.Repository,
	userRepo user.Repository,
	cfg Config,
) *ApplicationService {
	return &ApplicationService{
		appRepo:    appRepo,
		searchRepo: searchRepo,
		cvRepo:     cvRepo,
		userRepo:   userRepo,
		cfg:        cfg,
	}
}

// Submit applies the candidate to a search, freezing their CV into an
// immutable snapshot at this moment
func (s *ApplicationService) Submit(ctx context.Context, candidateID kernel.UserID, req application.SubmitRequest) (*application.Application, error) {
	if req.SearchID.IsEmpty() {
		return nil, application.ErrInvalidRequest().WithDetail("search_id", "missing or empty")
	}

	target, err := s.searchRepo.GetByID(ctx, req.SearchID)
	if err != nil {
		return nil, err
	}
	if !target.IsActive() {
		return nil, search.ErrSearchNotActive().
			WithDetail("search_id", target.ID.String()).
			WithDetail("status", target.Status)
	}

	// Fast path; the unique index is the backstop under races
	exists, err := s.appRepo.ExistsBySearchAndCandidate(ctx, req.SearchID, candidateID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check existing application", errx.TypeInternal)
	}
	if exists {
		return nil, application.ErrAlreadyApplied().WithDetail("search_id", req.SearchID.String())
	}

	snapshot, err := s.buildSnapshot(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	app := &application.Application{
		ID:          kernel.NewApplicationID(uuid.NewString()),
		SearchID:    req.SearchID,
		CandidateID: candidateID,
		Message:     req.Message,
		CvSnapshot:  snapshot,
		State:       application.ApplicationStateSubmitted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	logx.Infof("Application %s submitted to search %s by %s", app.ID, app.SearchID, candidateID)
	return app, nil
}

// buildSnapshot freezes the candidate's CV. Candidates without a CV
// record still get a minimal snapshot from their account data, so an
// application always carries contact details.
func (s *ApplicationService) buildSnapshot(ctx context.Context, candidateID kernel.UserID) (application.CvSnapshot, error) {
	record, err := s.cvRepo.GetByUserID(ctx, candidateID)
	if err == nil {
		return application.SnapshotFromCv(record), nil
	}
	if !errx.IsCode(err, cv.CodeCvNotFound) {
		return application.CvSnapshot{}, err
	}

	account, err := s.userRepo.FindByID(ctx, candidateID)
	if err != nil {
		return application.CvSnapshot{}, err
	}

	return application.CvSnapshot{
		SchemaVersion: application.SnapshotSchemaVersion,
		FirstName:     account.FirstName,
		LastName:      account.LastName,
		Email:         account.Email,
		Phone:         account.Phone,
		TakenAt:       time.Now(),
	}, nil
}

// ListMine lists the caller's applications newest first
func (s *ApplicationService) ListMine(ctx context.Context, candidateID kernel.UserID) ([]application.MyApplicationRow, error) {
	return s.appRepo.ListByCandidate(ctx, candidateID)
}

// AdminList lists applications for staff review, newest first
func (s *ApplicationService) AdminList(ctx context.Context, filters application.AdminListFilters) ([]application.AdminApplicationRow, error) {
	if filters.State != "" && !filters.State.IsValid() {
		return nil, application.ErrInvalidStateFilter().
			WithDetail("state", filters.State).
			WithDetail("valid_states", application.ValidStates)
	}

	// A malformed search id can never match anything; skip the query
	if !filters.SearchID.IsEmpty() {
		if _, err := uuid.Parse(filters.SearchID.String()); err != nil {
			return []application.AdminApplicationRow{}, nil
		}
	}

	return s.appRepo.AdminList(ctx, filters)
}

// Transition moves an application to a new review state
func (s *ApplicationService) Transition(ctx context.Context, id kernel.ApplicationID, newState application.ApplicationState) (*application.Application, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := app.ChangeState(newState, s.cfg.StrictTransitions); err != nil {
		return nil, err
	}

	if err := s.appRepo.UpdateState(ctx, app); err != nil {
		return nil, err
	}

	logx.Infof("Application %s moved to %s", app.ID, app.State)
	return app, nil
}

// Withdraw removes the caller's application permanently. An
// application owned by someone else looks exactly like a missing one.
func (s *ApplicationService) Withdraw(ctx context.Context, id kernel.ApplicationID, ownerID kernel.UserID) error {
	app, err := s.appRepo.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return err
	}

	if err := s.appRepo.Delete(ctx, app.ID); err != nil {
		return err
	}

	logx.Infof("Application %s withdrawn by %s", app.ID, ownerID)
	return nil
}
