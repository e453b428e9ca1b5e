package queries

import (
	"context"

	"car-rental-api/internal/pkg/errs"
	"car-rental-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrNotPermitted        = errs.New("not permitted to view this reservation")
)

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]ReservationListItem, error)
	ListAll(ctx context.Context) ([]ReservationListItem, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ReservationView, error)
	ListForActor(ctx context.Context, actor shared.Actor) ([]ReservationListItem, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Wrap(err, "failed to fetch reservation")
	}
	if view == nil {
		return nil, ErrReservationNotFound
	}
	if !actor.IsPrivileged() && view.CustomerID != actor.ID {
		return nil, ErrNotPermitted
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListForActor(ctx context.Context, actor shared.Actor) ([]ReservationListItem, error) {
	if actor.IsPrivileged() {
		items, err := q.store.ListAll(ctx)
		if err != nil {
			return nil, errs.Wrap(err, "failed to list reservations")
		}
		return items, nil
	}
	items, err := q.store.ListByCustomer(ctx, actor.ID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list reservations")
	}
	return items, nil
}
