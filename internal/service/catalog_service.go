package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "workoutjournal/backend/internal/errors"
	"workoutjournal/backend/internal/model"
	"workoutjournal/backend/internal/repository"
)

// CatalogService merges the built-in day-type and exercise vocabulary with a
// user's custom rows. Built-ins always come first and can never be shadowed;
// uniqueness is case-insensitive on the normalized key.
type CatalogService struct {
	catalogRepo *repository.CatalogRepository
}

func NewCatalogService(catalogRepo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

type CreateResult struct {
	Name    string
	Created bool
}

func (s *CatalogService) ListDaytypes(ctx context.Context, userID string) ([]string, *apperrors.APIError) {
	custom, err := s.catalogRepo.ListDaytypes(ctx, userID)
	if err != nil {
		return nil, apperrors.Upstream("failed to load day types")
	}

	merged := make([]string, 0, len(model.BuiltinDaytypes)+len(custom))
	merged = append(merged, model.BuiltinDaytypes...)
	for _, d := range custom {
		if !model.IsBuiltinDaytype(d.Key) {
			merged = append(merged, d.Name)
		}
	}
	return merged, nil
}

// CreateDaytype registers a custom day type. Re-creating the user's own prior
// entry is idempotent; colliding with a built-in is a validation error.
func (s *CatalogService) CreateDaytype(ctx context.Context, userID, name string) (*CreateResult, *apperrors.APIError) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("daytype name is required")
	}
	key := model.NormalizeKey(name)
	if model.IsBuiltinDaytype(key) {
		return nil, apperrors.Validation("daytype already exists as a built-in")
	}

	existing, err := s.catalogRepo.GetDaytype(ctx, userID, key)
	if err == nil {
		return &CreateResult{Name: existing.Name, Created: false}, nil
	}
	if err != repository.ErrNotFound {
		return nil, apperrors.Upstream("failed to query day types")
	}

	daytype := model.Daytype{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Key:       key,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.catalogRepo.CreateDaytype(ctx, &daytype); err != nil {
		return nil, apperrors.Upstream("failed to save day type")
	}
	return &CreateResult{Name: name, Created: true}, nil
}

func (s *CatalogService) ListExercises(ctx context.Context, userID, daytype string) ([]string, *apperrors.APIError) {
	key := model.NormalizeKey(daytype)
	if key == "" {
		return nil, apperrors.Validation("daytype is required")
	}

	custom, err := s.catalogRepo.ListExercises(ctx, userID, key)
	if err != nil {
		return nil, apperrors.Upstream("failed to load exercises")
	}

	builtin := model.BuiltinExercises[key]
	seen := make(map[string]bool, len(builtin))
	for _, name := range builtin {
		seen[model.NormalizeKey(name)] = true
	}

	merged := make([]string, 0, len(builtin)+len(custom))
	merged = append(merged, builtin...)
	for _, e := range custom {
		if !seen[e.Key] {
			merged = append(merged, e.Name)
		}
	}
	return merged, nil
}

// CreateExercise registers a custom exercise under a known day type. The day
// type must be a built-in or one of the user's own custom rows.
func (s *CatalogService) CreateExercise(ctx context.Context, userID, daytype, name string) (*CreateResult, *apperrors.APIError) {
	daytypeKey := model.NormalizeKey(daytype)
	if daytypeKey == "" {
		return nil, apperrors.Validation("daytype is required")
	}
	name = strings.TrimSpace(name)
	if name == "" || name == model.AddExerciseSentinel {
		return nil, apperrors.Validation("exercise name is required")
	}

	if !model.IsBuiltinDaytype(daytypeKey) {
		if _, err := s.catalogRepo.GetDaytype(ctx, userID, daytypeKey); err == repository.ErrNotFound {
			return nil, apperrors.Validation("unknown daytype")
		} else if err != nil {
			return nil, apperrors.Upstream("failed to query day types")
		}
	}

	key := model.NormalizeKey(name)
	for _, builtin := range model.BuiltinExercises[daytypeKey] {
		if model.NormalizeKey(builtin) == key {
			return nil, apperrors.Validation("exercise already exists as a built-in")
		}
	}

	existing, err := s.catalogRepo.GetExercise(ctx, userID, daytypeKey, key)
	if err == nil {
		return &CreateResult{Name: existing.Name, Created: false}, nil
	}
	if err != repository.ErrNotFound {
		return nil, apperrors.Upstream("failed to query exercises")
	}

	exercise := model.Exercise{
		ID:         uuid.NewString(),
		UserID:     userID,
		DaytypeKey: daytypeKey,
		Name:       name,
		Key:        key,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.catalogRepo.CreateExercise(ctx, &exercise); err != nil {
		return nil, apperrors.Upstream("failed to save exercise")
	}
	return &CreateResult{Name: name, Created: true}, nil
}
