package queries

import (
	"context"

	"car-rental-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrVehicleNotFound = errs.New("vehicle not found")

type VehicleReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*VehicleView, error)
	ListInFleet(ctx context.Context) ([]VehicleView, error)
}

type VehicleQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*VehicleView, error)
	List(ctx context.Context) ([]VehicleView, error)
}

type vehicleQueriesImpl struct {
	store VehicleReadStore
}

func NewVehicleQueries(store VehicleReadStore) VehicleQueries {
	return &vehicleQueriesImpl{store: store}
}

func (q *vehicleQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*VehicleView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Wrap(err, "failed to fetch vehicle")
	}
	if view == nil {
		return nil, ErrVehicleNotFound
	}
	return view, nil
}

func (q *vehicleQueriesImpl) List(ctx context.Context) ([]VehicleView, error) {
	views, err := q.store.ListInFleet(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list vehicles")
	}
	return views, nil
}
