package repository

import (
	"context"
	"errors"

	"flowcast/internal/scenario"
)

// ErrNotFound is returned when a lookup matches no scenario.
var ErrNotFound = errors.New("scenario not found")

// ErrDuplicateName is returned when a create collides with an existing
// scenario name.
var ErrDuplicateName = errors.New("scenario name already exists")

type ScenarioRepo interface {
	Create(ctx context.Context, s *scenario.Scenario) error
	GetByID(ctx context.Context, id string) (*scenario.Scenario, error)
	GetByName(ctx context.Context, name string) (*scenario.Scenario, error)
	List(ctx context.Context) ([]*scenario.Scenario, error)
	Update(ctx context.Context, s *scenario.Scenario) error
	Delete(ctx context.Context, id string) error
}
