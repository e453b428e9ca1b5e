package commands

import (
	"context"
	"time"

	"car-rental-api/internal/domain/reservation"
	"car-rental-api/internal/domain/user"
	"car-rental-api/internal/infra"
	"car-rental-api/internal/pkg/clock"
	"car-rental-api/internal/pkg/errs"
	"car-rental-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReservationInput struct {
	VehicleID uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	// CustomerID lets staff book on a customer's behalf. Customers must
	// leave it empty or set it to themselves.
	CustomerID *uuid.UUID
}

type ReservationCommands interface {
	Create(ctx context.Context, actor shared.Actor, input CreateReservationInput) (uuid.UUID, error)
	Activate(ctx context.Context, actor shared.Actor, id uuid.UUID) error
	Complete(ctx context.Context, actor shared.Actor, id uuid.UUID) error
	Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID, reason string) (reservation.Money, error)
	PreviewCancellationFee(ctx context.Context, actor shared.Actor, id uuid.UUID) (reservation.Money, error)
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error
}

type reservationCommandsImpl struct {
	tx           shared.TxRunner
	reservations ReservationRepository
	vehicles     VehicleRepository
	users        UserRepository
	clk          clock.Clock
	loc          *time.Location
}

func NewReservationCommands(
	tx shared.TxRunner,
	reservations ReservationRepository,
	vehicles VehicleRepository,
	users UserRepository,
	clk clock.Clock,
	loc *time.Location,
) ReservationCommands {
	return &reservationCommandsImpl{
		tx:           tx,
		reservations: reservations,
		vehicles:     vehicles,
		users:        users,
		clk:          clk,
		loc:          loc,
	}
}

// Create books a vehicle after the full validation chain: dates, vehicle
// existence and rentability, customer eligibility, then the conflict
// scan. The vehicle row lock taken up front serializes concurrent
// bookings for the same vehicle, so the conflict scan cannot race.
func (c *reservationCommandsImpl) Create(ctx context.Context, actor shared.Actor, input CreateReservationInput) (uuid.UUID, error) {
	customerID := actor.ID
	if input.CustomerID != nil && *input.CustomerID != actor.ID {
		if !actor.IsPrivileged() {
			return uuid.Nil, errs.Mark(errs.New("customers cannot book for other users"), ErrNotPermitted)
		}
		customerID = *input.CustomerID
	}

	dates, err := reservation.NewDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrValidation)
	}

	var reservationID uuid.UUID
	err = c.tx.RunInTx(ctx, func(tx infra.DBTX) error {
		veh, err := c.vehicles.FindByIDForUpdate(ctx, tx, input.VehicleID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrVehicleNotFound)
			}
			return err
		}

		res, err := reservation.NewReservation(
			customerID, veh.ID(), dates, veh.DailyRate(),
			actor.IsPrivileged(), c.clk.Now(),
		)
		if err != nil {
			return errs.Mark(err, ErrValidation)
		}

		account, err := c.users.FindByID(ctx, tx, customerID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrCustomerNotFound)
			}
			return err
		}
		profile, err := c.users.FindProfile(ctx, tx, customerID)
		if err != nil {
			return err
		}
		if err := user.CheckEligibility(account, profile); err != nil {
			return errs.Mark(err, ErrCustomerIneligible)
		}

		if err := veh.CheckRentable(); err != nil {
			return errs.Mark(err, ErrVehicleUnavailable)
		}

		blocking, err := c.reservations.FindOverlapping(ctx, tx, veh.ID(), dates, res.ID())
		if err != nil {
			return err
		}
		if blocking != nil {
			return errs.Mark(
				errs.Newf("vehicle is already reserved for %s", blocking),
				ErrDateConflict,
			)
		}

		reservationID, err = c.reservations.Create(ctx, tx, res)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return reservationID, nil
}

// Activate marks a pickup: confirmed to active, staff only. The vehicle
// lock plus the in-transaction active check enforce one active rental
// per vehicle.
func (c *reservationCommandsImpl) Activate(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if !actor.IsPrivileged() {
		return errs.Mark(errs.New("only staff can activate reservations"), ErrNotPermitted)
	}

	return c.tx.RunInTx(ctx, func(tx infra.DBTX) error {
		res, err := c.lockReservationAndVehicle(ctx, tx, id)
		if err != nil {
			return err
		}

		occupied, err := c.reservations.HasOtherActive(ctx, tx, res.VehicleID(), res.ID())
		if err != nil {
			return err
		}
		if err := res.Activate(c.clk.Now(), c.loc, occupied); err != nil {
			return err
		}

		if err := c.reservations.UpdateLifecycle(ctx, tx, res); err != nil {
			return err
		}
		return c.vehicles.SyncRentedFlag(ctx, tx, res.VehicleID())
	})
}

// Complete marks a return: active to completed, staff only.
func (c *reservationCommandsImpl) Complete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if !actor.IsPrivileged() {
		return errs.Mark(errs.New("only staff can complete reservations"), ErrNotPermitted)
	}

	return c.tx.RunInTx(ctx, func(tx infra.DBTX) error {
		res, err := c.lockReservationAndVehicle(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := res.Complete(c.clk.Now()); err != nil {
			return err
		}
		if err := c.reservations.UpdateLifecycle(ctx, tx, res); err != nil {
			return err
		}
		return c.vehicles.SyncRentedFlag(ctx, tx, res.VehicleID())
	})
}

// Cancel cancels a pending or confirmed reservation and returns the fee
// charged. Owners and staff may cancel; the fee ladder runs off a single
// clock reading that also becomes the persisted cancellation timestamp.
func (c *reservationCommandsImpl) Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID, reason string) (reservation.Money, error) {
	var fee reservation.Money
	err := c.tx.RunInTx(ctx, func(tx infra.DBTX) error {
		res, err := c.lockReservationAndVehicle(ctx, tx, id)
		if err != nil {
			return err
		}
		if !actor.IsPrivileged() && !res.IsOwnedBy(actor.ID) {
			return errs.Mark(errs.New("cannot cancel another customer's reservation"), ErrNotPermitted)
		}

		now := c.clk.Now()
		fee, err = reservation.CancellationFee(res, now, c.loc)
		if err != nil {
			return err
		}

		cancelledBy := actor.ID
		if err := res.Cancel(fee, now, &cancelledBy, reason); err != nil {
			return err
		}
		if err := c.reservations.UpdateLifecycle(ctx, tx, res); err != nil {
			return err
		}
		return c.vehicles.SyncRentedFlag(ctx, tx, res.VehicleID())
	})
	if err != nil {
		return reservation.Money{}, err
	}
	return fee, nil
}

// PreviewCancellationFee quotes the fee without changing any state.
func (c *reservationCommandsImpl) PreviewCancellationFee(ctx context.Context, actor shared.Actor, id uuid.UUID) (reservation.Money, error) {
	var fee reservation.Money
	err := c.tx.RunInTx(ctx, func(tx infra.DBTX) error {
		res, err := c.reservations.FindByID(ctx, tx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrReservationNotFound)
			}
			return err
		}
		if !actor.IsPrivileged() && !res.IsOwnedBy(actor.ID) {
			return errs.Mark(errs.New("cannot quote another customer's reservation"), ErrNotPermitted)
		}
		fee, err = reservation.CancellationFee(res, c.clk.Now(), c.loc)
		return err
	})
	if err != nil {
		return reservation.Money{}, err
	}
	return fee, nil
}

// Delete removes a reservation outright and re-derives the vehicle's
// rented flag, so deleting an active rental cannot strand the flag.
// Staff only.
func (c *reservationCommandsImpl) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if !actor.IsPrivileged() {
		return errs.Mark(errs.New("only staff can delete reservations"), ErrNotPermitted)
	}
	return c.tx.RunInTx(ctx, func(tx infra.DBTX) error {
		res, err := c.lockReservationAndVehicle(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := c.reservations.Delete(ctx, tx, res.ID()); err != nil {
			return err
		}
		return c.vehicles.SyncRentedFlag(ctx, tx, res.VehicleID())
	})
}

// lockReservationAndVehicle takes both row locks, reservation first.
// Every lifecycle path locks in this order.
func (c *reservationCommandsImpl) lockReservationAndVehicle(ctx context.Context, tx infra.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := c.reservations.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrReservationNotFound)
		}
		return nil, err
	}
	if _, err := c.vehicles.FindByIDForUpdate(ctx, tx, res.VehicleID()); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrVehicleNotFound)
		}
		return nil, err
	}
	return res, nil
}
