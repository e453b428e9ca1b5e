//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"car-rental-api/internal/domain/reservation"
	"car-rental-api/internal/infra"
	"car-rental-api/internal/pkg/clock"
	"car-rental-api/internal/usecase/commands"
	"car-rental-api/tests/common/builder"
	commandsmock "car-rental-api/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// passTxRunner executes the transaction body directly so command logic
// can be unit tested without a database.
type passTxRunner struct{}

func (passTxRunner) RunInTx(_ context.Context, fn func(tx infra.DBTX) error) error {
	return fn(nil)
}

type SweepCommandsTestSuite struct {
	suite.Suite
	mockCtrl         *gomock.Controller
	mockCandidates   *commandsmock.MockSweepCandidateSource
	mockReservations *commandsmock.MockReservationRepository
	mockVehicles     *commandsmock.MockVehicleRepository
	clk              *clock.MockClock
	sweep            commands.SweepCommands

	now   time.Time
	today time.Time
}

func (s *SweepCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCandidates = commandsmock.NewMockSweepCandidateSource(s.mockCtrl)
	s.mockReservations = commandsmock.NewMockReservationRepository(s.mockCtrl)
	s.mockVehicles = commandsmock.NewMockVehicleRepository(s.mockCtrl)

	s.now = time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)
	s.today = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	s.clk = clock.NewMockClock(s.now)

	s.sweep = commands.NewSweepCommands(
		passTxRunner{},
		s.mockCandidates,
		s.mockReservations,
		s.mockVehicles,
		s.clk,
		time.UTC,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func (s *SweepCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSweepCommandsSuite(t *testing.T) {
	suite.Run(t, new(SweepCommandsTestSuite))
}

func (s *SweepCommandsTestSuite) buildReservation(status reservation.Status, start, end time.Time) *reservation.Reservation {
	res, err := builder.NewReservationBuilder().
		WithStatus(status).
		WithDates(start, end).
		BuildDomain()
	s.Require().NoError(err)
	return res
}

// expectTransition wires the per-row expectations sweepOne issues under
// lock, in call order.
func (s *SweepCommandsTestSuite) expectTransition(res *reservation.Reservation) {
	veh := builder.NewVehicleBuilder().BuildDomain()
	s.mockReservations.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), res.ID()).
		Return(res, nil).Times(1)
	s.mockVehicles.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), res.VehicleID()).
		Return(veh, nil).Times(1)
	s.mockReservations.EXPECT().HasOtherActive(gomock.Any(), gomock.Any(), res.VehicleID(), res.ID()).
		Return(false, nil).Times(1)
	s.mockReservations.EXPECT().UpdateLifecycle(gomock.Any(), gomock.Any(), res).
		Return(nil).Times(1)
	s.mockVehicles.EXPECT().SyncRentedFlag(gomock.Any(), gomock.Any(), res.VehicleID()).
		Return(nil).Times(1)
}

func (s *SweepCommandsTestSuite) TestRunSweep() {
	s.Run("success: activates, completes and cancels one reservation each", func() {
		starting := s.buildReservation(reservation.StatusConfirmed, s.today, s.today.AddDate(0, 0, 3))
		ending := s.buildReservation(reservation.StatusActive, s.today.AddDate(0, 0, -5), s.today.AddDate(0, 0, -2))
		overdue := s.buildReservation(reservation.StatusPending, s.today.AddDate(0, 0, -9), s.today.AddDate(0, 0, -6))

		s.mockCandidates.EXPECT().ConfirmedStarting(gomock.Any(), s.today).
			Return([]uuid.UUID{starting.ID()}, nil).Times(1)
		s.expectTransition(starting)

		s.mockCandidates.EXPECT().ActiveEnding(gomock.Any(), s.today).
			Return([]uuid.UUID{ending.ID()}, nil).Times(1)
		s.expectTransition(ending)

		s.mockCandidates.EXPECT().PendingOverdue(gomock.Any(), s.today).
			Return([]uuid.UUID{overdue.ID()}, nil).Times(1)
		s.expectTransition(overdue)

		result, err := s.sweep.RunSweep(context.Background())

		s.NoError(err)
		s.Equal(commands.SweepResult{Activated: 1, Completed: 1, Cancelled: 1}, result)
		s.Equal(reservation.StatusActive, starting.Status())
		s.Equal(reservation.StatusCompleted, ending.Status())
		s.Equal(reservation.StatusCancelled, overdue.Status())
	})

	s.Run("success: row failing its transition guard is skipped, not counted", func() {
		// Listed as confirmed-starting but already active by the time
		// the row lock is taken.
		stale := s.buildReservation(reservation.StatusActive, s.today, s.today.AddDate(0, 0, 3))
		veh := builder.NewVehicleBuilder().BuildDomain()

		s.mockCandidates.EXPECT().ConfirmedStarting(gomock.Any(), s.today).
			Return([]uuid.UUID{stale.ID()}, nil).Times(1)
		s.mockReservations.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), stale.ID()).
			Return(stale, nil).Times(1)
		s.mockVehicles.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), stale.VehicleID()).
			Return(veh, nil).Times(1)
		s.mockReservations.EXPECT().HasOtherActive(gomock.Any(), gomock.Any(), stale.VehicleID(), stale.ID()).
			Return(false, nil).Times(1)

		s.mockCandidates.EXPECT().ActiveEnding(gomock.Any(), s.today).
			Return(nil, nil).Times(1)
		s.mockCandidates.EXPECT().PendingOverdue(gomock.Any(), s.today).
			Return(nil, nil).Times(1)

		result, err := s.sweep.RunSweep(context.Background())

		s.NoError(err)
		s.Equal(commands.SweepResult{}, result)
	})

	s.Run("success: no candidates yields an empty result", func() {
		s.mockCandidates.EXPECT().ConfirmedStarting(gomock.Any(), s.today).Return(nil, nil).Times(1)
		s.mockCandidates.EXPECT().ActiveEnding(gomock.Any(), s.today).Return(nil, nil).Times(1)
		s.mockCandidates.EXPECT().PendingOverdue(gomock.Any(), s.today).Return(nil, nil).Times(1)

		result, err := s.sweep.RunSweep(context.Background())

		s.NoError(err)
		s.Equal(commands.SweepResult{}, result)
	})

	s.Run("error: candidate listing failure aborts the run", func() {
		s.mockCandidates.EXPECT().ConfirmedStarting(gomock.Any(), s.today).
			Return(nil, context.DeadlineExceeded).Times(1)

		_, err := s.sweep.RunSweep(context.Background())

		s.Error(err)
	})
}

func (s *SweepCommandsTestSuite) TestRunSweepTimezone() {
	s.Run("candidate day follows the rental timezone, not UTC", func() {
		tokyo, err := time.LoadLocation("Asia/Tokyo")
		s.Require().NoError(err)

		// 2024-06-10 20:00 UTC is already 2024-06-11 in Tokyo.
		clk := clock.NewMockClock(time.Date(2024, 6, 10, 20, 0, 0, 0, time.UTC))
		sweep := commands.NewSweepCommands(
			passTxRunner{},
			s.mockCandidates,
			s.mockReservations,
			s.mockVehicles,
			clk,
			tokyo,
			slog.New(slog.NewTextHandler(io.Discard, nil)),
		)

		tokyoDay := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
		s.mockCandidates.EXPECT().ConfirmedStarting(gomock.Any(), tokyoDay).Return(nil, nil).Times(1)
		s.mockCandidates.EXPECT().ActiveEnding(gomock.Any(), tokyoDay).Return(nil, nil).Times(1)
		s.mockCandidates.EXPECT().PendingOverdue(gomock.Any(), tokyoDay).Return(nil, nil).Times(1)

		result, err := sweep.RunSweep(context.Background())

		s.NoError(err)
		s.Equal(commands.SweepResult{}, result)
	})

	s.Run("activates a reservation on its rental-timezone start day", func() {
		tokyo, err := time.LoadLocation("Asia/Tokyo")
		s.Require().NoError(err)

		// 2024-06-10 16:00 UTC is 01:00 on 2024-06-11 in Tokyo: the
		// activation guard must agree with the candidate listing about
		// which day it is.
		clk := clock.NewMockClock(time.Date(2024, 6, 10, 16, 0, 0, 0, time.UTC))
		sweep := commands.NewSweepCommands(
			passTxRunner{},
			s.mockCandidates,
			s.mockReservations,
			s.mockVehicles,
			clk,
			tokyo,
			slog.New(slog.NewTextHandler(io.Discard, nil)),
		)

		starting := s.buildReservation(
			reservation.StatusConfirmed,
			time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC),
		)

		tokyoDay := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
		s.mockCandidates.EXPECT().ConfirmedStarting(gomock.Any(), tokyoDay).
			Return([]uuid.UUID{starting.ID()}, nil).Times(1)
		s.mockCandidates.EXPECT().ActiveEnding(gomock.Any(), tokyoDay).Return(nil, nil).Times(1)
		s.mockCandidates.EXPECT().PendingOverdue(gomock.Any(), tokyoDay).Return(nil, nil).Times(1)
		s.expectTransition(starting)

		result, err := sweep.RunSweep(context.Background())

		s.NoError(err)
		s.Equal(commands.SweepResult{Activated: 1}, result)
		s.Equal(reservation.StatusActive, starting.Status())
	})
}
