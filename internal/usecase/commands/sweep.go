package commands

import (
	"context"
	"log/slog"
	"time"

	"car-rental-api/internal/domain/reservation"
	"car-rental-api/internal/infra"
	"car-rental-api/internal/pkg/clock"
	"car-rental-api/internal/usecase/shared"

	"github.com/google/uuid"
)

const autoCancelReason = "auto-cancelled: end date passed"

// SweepResult reports how many reservations each pass touched.
type SweepResult struct {
	Activated int `json:"activated"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// SweepCandidateSource lists the reservation ids each pass should visit.
// Candidates are re-validated under lock inside each transition, so a
// stale listing only costs a skipped row.
type SweepCandidateSource interface {
	ConfirmedStarting(ctx context.Context, day time.Time) ([]uuid.UUID, error)
	ActiveEnding(ctx context.Context, day time.Time) ([]uuid.UUID, error)
	PendingOverdue(ctx context.Context, day time.Time) ([]uuid.UUID, error)
}

type SweepCommands interface {
	RunSweep(ctx context.Context) (SweepResult, error)
}

type sweepCommandsImpl struct {
	tx           shared.TxRunner
	candidates   SweepCandidateSource
	reservations ReservationRepository
	vehicles     VehicleRepository
	clk          clock.Clock
	loc          *time.Location
	logger       *slog.Logger
}

func NewSweepCommands(
	tx shared.TxRunner,
	candidates SweepCandidateSource,
	reservations ReservationRepository,
	vehicles VehicleRepository,
	clk clock.Clock,
	loc *time.Location,
	logger *slog.Logger,
) SweepCommands {
	return &sweepCommandsImpl{
		tx:           tx,
		candidates:   candidates,
		reservations: reservations,
		vehicles:     vehicles,
		clk:          clk,
		loc:          loc,
		logger:       logger,
	}
}

// RunSweep runs the three daily passes: activate confirmed reservations
// whose start date has arrived, complete active rentals past their end
// date, and cancel pending or confirmed reservations that expired
// unstarted. Each row transitions in its own transaction; a row that
// fails its guard is logged and skipped, so the sweep is idempotent and
// safe to re-run at any time. One clock reading drives the whole run.
func (s *sweepCommandsImpl) RunSweep(ctx context.Context) (SweepResult, error) {
	now := s.clk.Now()
	today := s.dateOf(now)
	var result SweepResult

	starting, err := s.candidates.ConfirmedStarting(ctx, today)
	if err != nil {
		return result, err
	}
	for _, id := range starting {
		if s.sweepOne(ctx, id, "activate", func(res *reservation.Reservation, occupied bool) error {
			return res.Activate(now, s.loc, occupied)
		}) {
			result.Activated++
		}
	}

	ending, err := s.candidates.ActiveEnding(ctx, today)
	if err != nil {
		return result, err
	}
	for _, id := range ending {
		if s.sweepOne(ctx, id, "complete", func(res *reservation.Reservation, _ bool) error {
			return res.Complete(now)
		}) {
			result.Completed++
		}
	}

	overdue, err := s.candidates.PendingOverdue(ctx, today)
	if err != nil {
		return result, err
	}
	for _, id := range overdue {
		if s.sweepOne(ctx, id, "cancel", func(res *reservation.Reservation, _ bool) error {
			return res.Cancel(reservation.NewMoney(0), now, nil, autoCancelReason)
		}) {
			result.Cancelled++
		}
	}

	return result, nil
}

// sweepOne applies a single transition under the usual lock order and
// reports whether it took effect.
func (s *sweepCommandsImpl) sweepOne(
	ctx context.Context,
	id uuid.UUID,
	pass string,
	transition func(res *reservation.Reservation, occupied bool) error,
) bool {
	err := s.tx.RunInTx(ctx, func(tx infra.DBTX) error {
		res, err := s.reservations.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := s.vehicles.FindByIDForUpdate(ctx, tx, res.VehicleID()); err != nil {
			return err
		}

		occupied, err := s.reservations.HasOtherActive(ctx, tx, res.VehicleID(), res.ID())
		if err != nil {
			return err
		}
		if err := transition(res, occupied); err != nil {
			return err
		}
		if err := s.reservations.UpdateLifecycle(ctx, tx, res); err != nil {
			return err
		}
		return s.vehicles.SyncRentedFlag(ctx, tx, res.VehicleID())
	})
	if err != nil {
		s.logger.Warn("sweep skipped reservation",
			slog.String("pass", pass),
			slog.String("reservation_id", id.String()),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}

// dateOf is midnight of now's calendar date in the rental timezone,
// expressed in UTC to match how reservation dates are stored.
func (s *sweepCommandsImpl) dateOf(now time.Time) time.Time {
	y, m, d := now.In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
