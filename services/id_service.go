package services

import (
	"context"
	"fmt"
	"time"

	"github.com/cusloyola/CAPSTONE-sub000/models"
)

// IDStore atomically advances a per-(entity, year) sequence and returns the
// new value.
type IDStore interface {
	NextSequence(ctx context.Context, entityCode string, year int) (int, error)
}

// IDService assigns human-readable primary keys per entity type and year,
// e.g. "BLL-2026-00042".
type IDService struct {
	store IDStore
	now   func() time.Time
}

func NewIDService(store IDStore) *IDService {
	return &IDService{store: store, now: time.Now}
}

// NextID returns the next structured id for the entity code.
func (s *IDService) NextID(ctx context.Context, entityCode string) (string, error) {
	if entityCode == "" {
		return "", &models.ValidationError{Field: "entity_code", Reason: "required"}
	}

	year := s.now().Year()
	seq, err := s.store.NextSequence(ctx, entityCode, year)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%05d", entityCode, year, seq), nil
}
