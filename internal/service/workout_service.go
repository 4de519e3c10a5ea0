package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	apperrors "workoutjournal/backend/internal/errors"
	"workoutjournal/backend/internal/model"
	"workoutjournal/backend/internal/observability"
	"workoutjournal/backend/internal/repository"
)

// WorkoutService is the session workflow engine. It drives the
// idle -> active -> completed -> idle cycle over the per-user workflow state
// row, buffering display rows locally and treating store writes as best
// effort: a failed write surfaces a warning instead of aborting, so the
// user's in-progress log survives transient store trouble. Durability is
// reconciled through the last-session-id hint on the next summary load.
type WorkoutService struct {
	workoutRepo  *repository.WorkoutRepository
	workflowRepo *repository.WorkflowRepository
}

const dateLayout = "2006-01-02"

// Warning texts are user-visible; keep them short and factual.
const (
	warnSessionNotPersisted  = "entry saved locally but the session could not be persisted"
	warnEntryNotPersisted    = "entry saved locally but could not be persisted"
	warnNoActiveSession      = "finish had no active session to complete"
	warnNoRowsCompleted      = "finish did not update any session rows"
	warnCompletionUnverified = "finish completed, but completed_at is still empty"
)

type StateView struct {
	Status    string           `json:"status"`
	Daytype   *string          `json:"daytype,omitempty"`
	Date      *string          `json:"date,omitempty"`
	SessionID *string          `json:"session_id,omitempty"`
	Completed bool             `json:"completed"`
	Rows      []model.EntryRow `json:"rows"`
	Warnings  []string         `json:"warnings,omitempty"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type SummaryView struct {
	Available bool             `json:"available"`
	Rows      []model.EntryRow `json:"rows"`
}

type LogEntryInput struct {
	Daytype  string
	Date     string
	Exercise string
	Weight   float64
	Rep      int
}

func NewWorkoutService(workoutRepo *repository.WorkoutRepository, workflowRepo *repository.WorkflowRepository) *WorkoutService {
	return &WorkoutService{workoutRepo: workoutRepo, workflowRepo: workflowRepo}
}

func (s *WorkoutService) GetState(ctx context.Context, userID string) (*StateView, *apperrors.APIError) {
	state, err := s.workflowRepo.GetState(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("workout state not found")
	}
	if err != nil {
		return nil, apperrors.Upstream("failed to load workout state")
	}
	view := toStateView(state, nil)
	return &view, nil
}

// LogEntry is the start-or-continue action. The first entry of a workout pins
// the session's day type and date; while a session is active any different
// values supplied by the UI are ignored, so a reload cannot split one workout
// across two dates. The validated row is appended to the buffer and then
// persisted idempotently: one session row per workout no matter how many
// entries follow.
func (s *WorkoutService) LogEntry(ctx context.Context, userID string, input LogEntryInput) (*StateView, *apperrors.APIError) {
	exercise := input.Exercise
	if exercise == "" || exercise == model.AddExerciseSentinel {
		return nil, apperrors.Validation("select or save an exercise before adding a workout")
	}
	if input.Daytype == "" {
		return nil, apperrors.Validation("daytype is required")
	}
	if input.Weight < 0 || input.Rep < 0 {
		return nil, apperrors.Validation("weight and rep must not be negative")
	}

	now := time.Now().UTC()
	date := input.Date
	if date == "" {
		date = now.Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, apperrors.Validation("date must be formatted YYYY-MM-DD")
	}

	tx, err := s.workoutRepo.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.Upstream("failed to start transaction")
	}
	defer tx.Rollback()

	state, apiErr := s.getStateTx(ctx, tx, userID)
	if apiErr != nil {
		return nil, apiErr
	}

	// Pin day type and date on the first entry of a workout. The pinned
	// values win over anything the UI sends while the session is active.
	if state.ActiveDaytype == nil || state.ActiveDate == nil {
		state.ActiveDaytype = &input.Daytype
		state.ActiveDate = &date
	}
	daytype := *state.ActiveDaytype
	date = *state.ActiveDate

	state.Completed = false
	state.BufferedRows = append(state.BufferedRows, model.EntryRow{
		Date:     date,
		Daytype:  daytype,
		Exercise: exercise,
		Weight:   input.Weight,
		Rep:      input.Rep,
	})

	var warnings []string
	sessionID, warning := s.ensureSessionTx(ctx, tx, state, userID, date, daytype, now)
	if warning != "" {
		warnings = append(warnings, warning)
	}

	if sessionID != "" {
		entry := model.Entry{
			ID:           uuid.NewString(),
			SessionID:    sessionID,
			ExerciseName: exercise,
			Weight:       input.Weight,
			Rep:          input.Rep,
			CreatedAt:    now,
		}
		if err := s.workoutRepo.InsertEntryTx(ctx, tx, &entry); err != nil {
			warnings = append(warnings, warnEntryNotPersisted)
			observability.RecordPersistenceWarning()
		} else {
			observability.RecordEntryPersisted()
		}
	}

	state.UpdatedAt = now
	if err := s.workflowRepo.UpdateStateTx(ctx, tx, state); err != nil {
		return nil, apperrors.Upstream("failed to update workout state")
	}
	if commitErr := tx.Commit(); commitErr != nil {
		return nil, apperrors.Upstream("failed to commit transaction")
	}

	view := toStateView(state, warnings)
	return &view, nil
}

// ensureSessionTx resolves the active session id, creating a session row when
// none is cached. When the insert does not yield a usable row it falls back
// to the most recently created session matching (user, date, daytype). Best
// effort: an empty return with a warning means the entry stays buffered only.
func (s *WorkoutService) ensureSessionTx(
	ctx context.Context,
	tx *sql.Tx,
	state *model.WorkflowState,
	userID, date, daytype string,
	now time.Time,
) (string, string) {
	if state.ActiveSessionID != nil {
		return *state.ActiveSessionID, ""
	}

	session := model.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      date,
		Daytype:   daytype,
		CreatedAt: now,
	}
	if err := s.workoutRepo.InsertSessionTx(ctx, tx, &session); err == nil {
		state.ActiveSessionID = &session.ID
		return session.ID, ""
	}

	recovered, err := s.workoutRepo.LatestSessionTx(ctx, tx, userID, date, daytype)
	if err != nil {
		observability.RecordPersistenceWarning()
		return "", warnSessionNotPersisted
	}
	state.ActiveSessionID = &recovered.ID
	return recovered.ID, ""
}

// Finish marks the active session complete. Every store-side failure here is
// a warning, never an error: the local workflow still transitions to
// Completed and the durable record is allowed to lag.
func (s *WorkoutService) Finish(ctx context.Context, userID string) (*StateView, *apperrors.APIError) {
	now := time.Now().UTC()
	tx, err := s.workoutRepo.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.Upstream("failed to start transaction")
	}
	defer tx.Rollback()

	state, apiErr := s.getStateTx(ctx, tx, userID)
	if apiErr != nil {
		return nil, apiErr
	}

	var warnings []string
	if state.ActiveSessionID == nil {
		warnings = append(warnings, warnNoActiveSession)
		observability.RecordPersistenceWarning()
	} else {
		sessionID := *state.ActiveSessionID
		affected, completeErr := s.workoutRepo.CompleteSessionTx(ctx, tx, sessionID, now)
		switch {
		case completeErr != nil:
			warnings = append(warnings, warnNoRowsCompleted)
			observability.RecordPersistenceWarning()
		case affected == 0:
			warnings = append(warnings, warnNoRowsCompleted)
			observability.RecordPersistenceWarning()
		default:
			completedAt, readErr := s.workoutRepo.GetCompletedAtTx(ctx, tx, sessionID)
			if readErr != nil || completedAt == nil {
				warnings = append(warnings, warnCompletionUnverified)
				observability.RecordPersistenceWarning()
			} else {
				observability.RecordSessionCompleted()
			}
		}
	}

	// Optimistic completion: local state transitions regardless of how the
	// writes above went. Buffered rows stay for the summary view.
	state.Completed = true
	state.LastSessionID = state.ActiveSessionID
	state.ActiveDaytype = nil
	state.ActiveDate = nil
	state.ActiveSessionID = nil
	state.UpdatedAt = now

	if err := s.workflowRepo.UpdateStateTx(ctx, tx, state); err != nil {
		return nil, apperrors.Upstream("failed to update workout state")
	}
	if commitErr := tx.Commit(); commitErr != nil {
		return nil, apperrors.Upstream("failed to commit transaction")
	}

	view := toStateView(state, warnings)
	return &view, nil
}

// Summary returns the completed workout's rows. After a process restart the
// buffer is rebuilt from the last-session-id hint; when the hint or the
// lookup fails the summary is reported unavailable instead of returning an
// empty table that looks like success.
func (s *WorkoutService) Summary(ctx context.Context, userID string) (*SummaryView, *apperrors.APIError) {
	state, err := s.workflowRepo.GetState(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("workout state not found")
	}
	if err != nil {
		return nil, apperrors.Upstream("failed to load workout state")
	}

	if !state.Completed {
		return &SummaryView{Available: false, Rows: []model.EntryRow{}}, nil
	}
	if len(state.BufferedRows) > 0 {
		return &SummaryView{Available: true, Rows: state.BufferedRows}, nil
	}
	if state.LastSessionID == nil {
		return &SummaryView{Available: false, Rows: []model.EntryRow{}}, nil
	}

	session, err := s.workoutRepo.GetUserSession(ctx, userID, *state.LastSessionID)
	if err == repository.ErrNotFound {
		return &SummaryView{Available: false, Rows: []model.EntryRow{}}, nil
	}
	if err != nil {
		return nil, apperrors.Upstream("failed to load last session")
	}

	entries, err := s.workoutRepo.ListEntries(ctx, session.ID)
	if err != nil {
		return nil, apperrors.Upstream("failed to load session entries")
	}

	rows := make([]model.EntryRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, model.EntryRow{
			Date:     session.Date,
			Daytype:  session.Daytype,
			Exercise: entry.ExerciseName,
			Weight:   entry.Weight,
			Rep:      entry.Rep,
		})
	}

	// Repopulate the buffer so subsequent views skip the store round trip.
	tx, txErr := s.workoutRepo.BeginTx(ctx)
	if txErr == nil {
		state.BufferedRows = rows
		state.UpdatedAt = time.Now().UTC()
		if updateErr := s.workflowRepo.UpdateStateTx(ctx, tx, state); updateErr == nil {
			_ = tx.Commit()
		} else {
			_ = tx.Rollback()
		}
	}

	return &SummaryView{Available: true, Rows: rows}, nil
}

// Reset is the Done action: back to Idle. Persisted session and entry rows
// are untouched and remain queryable through history.
func (s *WorkoutService) Reset(ctx context.Context, userID string) (*StateView, *apperrors.APIError) {
	now := time.Now().UTC()
	tx, err := s.workoutRepo.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.Upstream("failed to start transaction")
	}
	defer tx.Rollback()

	state, apiErr := s.getStateTx(ctx, tx, userID)
	if apiErr != nil {
		return nil, apiErr
	}

	state.Completed = false
	state.BufferedRows = []model.EntryRow{}
	state.ActiveDaytype = nil
	state.ActiveDate = nil
	state.ActiveSessionID = nil
	state.UpdatedAt = now

	if err := s.workflowRepo.UpdateStateTx(ctx, tx, state); err != nil {
		return nil, apperrors.Upstream("failed to update workout state")
	}
	if commitErr := tx.Commit(); commitErr != nil {
		return nil, apperrors.Upstream("failed to commit transaction")
	}

	view := toStateView(state, nil)
	return &view, nil
}

func (s *WorkoutService) getStateTx(ctx context.Context, tx *sql.Tx, userID string) (*model.WorkflowState, *apperrors.APIError) {
	state, err := s.workflowRepo.GetStateTx(ctx, tx, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("workout state not found")
	}
	if err != nil {
		return nil, apperrors.Upstream("failed to load workout state")
	}
	return state, nil
}

func toStateView(state *model.WorkflowState, warnings []string) StateView {
	rows := state.BufferedRows
	if rows == nil {
		rows = []model.EntryRow{}
	}
	return StateView{
		Status:    state.Status(),
		Daytype:   state.ActiveDaytype,
		Date:      state.ActiveDate,
		SessionID: state.ActiveSessionID,
		Completed: state.Completed,
		Rows:      rows,
		Warnings:  warnings,
		UpdatedAt: state.UpdatedAt,
	}
}
