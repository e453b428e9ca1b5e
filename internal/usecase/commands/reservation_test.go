//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"car-rental-api/internal/domain/reservation"
	"car-rental-api/internal/domain/user"
	"car-rental-api/internal/infra"
	"car-rental-api/internal/pkg/clock"
	"car-rental-api/internal/usecase/commands"
	"car-rental-api/internal/usecase/shared"
	"car-rental-api/tests/common/builder"
	commandsmock "car-rental-api/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationCommandsTestSuite struct {
	suite.Suite
	mockCtrl         *gomock.Controller
	mockReservations *commandsmock.MockReservationRepository
	mockVehicles     *commandsmock.MockVehicleRepository
	mockUsers        *commandsmock.MockUserRepository
	clk              *clock.MockClock
	commands         commands.ReservationCommands

	now      time.Time
	customer shared.Actor
	staff    shared.Actor
}

func (s *ReservationCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockReservations = commandsmock.NewMockReservationRepository(s.mockCtrl)
	s.mockVehicles = commandsmock.NewMockVehicleRepository(s.mockCtrl)
	s.mockUsers = commandsmock.NewMockUserRepository(s.mockCtrl)

	s.now = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	s.clk = clock.NewMockClock(s.now)
	s.customer = shared.Actor{ID: uuid.New(), Role: user.RoleCustomer}
	s.staff = shared.Actor{ID: uuid.New(), Role: user.RoleStaff}

	s.commands = commands.NewReservationCommands(
		passTxRunner{},
		s.mockReservations,
		s.mockVehicles,
		s.mockUsers,
		s.clk,
		time.UTC,
	)
}

func (s *ReservationCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationCommandsSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsTestSuite))
}

func (s *ReservationCommandsTestSuite) eligibleCustomer(id uuid.UUID) (*user.User, *user.Profile) {
	account, err := builder.NewUserBuilder().BuildDomain()
	s.Require().NoError(err)
	return account, builder.NewProfileBuilder(id).BuildDomain()
}

func (s *ReservationCommandsTestSuite) notFound(msg string) error {
	return infra.WrapRepoErr(msg, pgx.ErrNoRows, infra.KindNotFound)
}

func (s *ReservationCommandsTestSuite) TestCreate() {
	input := commands.CreateReservationInput{
		VehicleID: uuid.New(),
		StartDate: s.now.AddDate(0, 0, 7),
		EndDate:   s.now.AddDate(0, 0, 10),
	}

	s.Run("success: customer booking lands in pending", func() {
		veh := builder.NewVehicleBuilder().BuildDomain()
		account, profile := s.eligibleCustomer(s.customer.ID)
		createdID := uuid.New()

		s.mockVehicles.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), input.VehicleID).
			Return(veh, nil).Times(1)
		s.mockUsers.EXPECT().FindByID(gomock.Any(), gomock.Any(), s.customer.ID).
			Return(account, nil).Times(1)
		s.mockUsers.EXPECT().FindProfile(gomock.Any(), gomock.Any(), s.customer.ID).
			Return(profile, nil).Times(1)
		s.mockReservations.EXPECT().FindOverlapping(gomock.Any(), gomock.Any(), veh.ID(), gomock.Any(), gomock.Any()).
			Return(nil, nil).Times(1)
		s.mockReservations.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ infra.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
				s.Equal(reservation.StatusPending, res.Status())
				s.Equal(s.customer.ID, res.CustomerID())
				s.Equal(veh.ID(), res.VehicleID())
				return createdID, nil
			}).Times(1)

		id, err := s.commands.Create(context.Background(), s.customer, input)

		s.NoError(err)
		s.Equal(createdID, id)
	})

	s.Run("success: staff booking is auto-confirmed", func() {
		veh := builder.NewVehicleBuilder().BuildDomain()
		target := uuid.New()
		account, profile := s.eligibleCustomer(target)
		staffInput := input
		staffInput.CustomerID = &target

		s.mockVehicles.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), input.VehicleID).
			Return(veh, nil).Times(1)
		s.mockUsers.EXPECT().FindByID(gomock.Any(), gomock.Any(), target).
			Return(account, nil).Times(1)
		s.mockUsers.EXPECT().FindProfile(gomock.Any(), gomock.Any(), target).
			Return(profile, nil).Times(1)
		s.mockReservations.EXPECT().FindOverlapping(gomock.Any(), gomock.Any(), veh.ID(), gomock.Any(), gomock.Any()).
			Return(nil, nil).Times(1)
		s.mockReservations.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ infra.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
				s.Equal(reservation.StatusConfirmed, res.Status())
				s.Equal(target, res.CustomerID())
				return uuid.New(), nil
			}).Times(1)

		_, err := s.commands.Create(context.Background(), s.staff, staffInput)

		s.NoError(err)
	})

	s.Run("error: customer cannot book for another user", func() {
		other := uuid.New()
		badInput := input
		badInput.CustomerID = &other

		_, err := s.commands.Create(context.Background(), s.customer, badInput)

		s.ErrorIs(err, commands.ErrNotPermitted)
	})

	s.Run("error: inverted dates fail validation", func() {
		badInput := input
		badInput.StartDate, badInput.EndDate = badInput.EndDate, badInput.StartDate

		_, err := s.commands.Create(context.Background(), s.customer, badInput)

		s.ErrorIs(err, commands.ErrValidation)
	})

	s.Run("error: unknown vehicle", func() {
		s.mockVehicles.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), input.VehicleID).
			Return(nil, s.notFound("vehicle not found")).Times(1)

		_, err := s.commands.Create(context.Background(), s.customer, input)

		s.ErrorIs(err, commands.ErrVehicleNotFound)
	})

	s.Run("error: unverified customer is ineligible", func() {
		veh := builder.NewVehicleBuilder().BuildDomain()
		account, err := builder.NewUserBuilder().BuildDomain()
		s.Require().NoError(err)
		profile := builder.NewProfileBuilder(s.customer.ID).Unverified().BuildDomain()

		s.mockVehicles.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), input.VehicleID).
			Return(veh, nil).Times(1)
		s.mockUsers.EXPECT().FindByID(gomock.Any(), gomock.Any(), s.customer.ID).
			Return(account, nil).Times(1)
		s.mockUsers.EXPECT().FindProfile(gomock.Any(), gomock.Any(), s.customer.ID).
			Return(profile, nil).Times(1)

		_, err = s.commands.Create(context.Background(), s.customer, input)

		s.ErrorIs(err, commands.ErrCustomerIneligible)
	})

	s.Run("error: damaged vehicle is not rentable", func() {
		veh := builder.NewVehicleBuilder().Damaged().BuildDomain()
		account, profile := s.eligibleCustomer(s.customer.ID)

		s.mockVehicles.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), input.VehicleID).
			Return(veh, nil).Times(1)
		s.mockUsers.EXPECT().FindByID(gomock.Any(), gomock.Any(), s.customer.ID).
			Return(account, nil).Times(1)
		s.mockUsers.EXPECT().FindProfile(gomock.Any(), gomock.Any(), s.customer.ID).
			Return(profile, nil).Times(1)

		_, err := s.commands.Create(context.Background(), s.customer, input)

		s.ErrorIs(err, commands.ErrVehicleUnavailable)
	})

	s.Run("error: overlapping reservation blocks the booking", func() {
		veh := builder.NewVehicleBuilder().BuildDomain()
		account, profile := s.eligibleCustomer(s.customer.ID)
		blocking, err := reservation.NewDateRange(input.StartDate, input.EndDate)
		s.Require().NoError(err)

		s.mockVehicles.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), input.VehicleID).
			Return(veh, nil).Times(1)
		s.mockUsers.EXPECT().FindByID(gomock.Any(), gomock.Any(), s.customer.ID).
			Return(account, nil).Times(1)
		s.mockUsers.EXPECT().FindProfile(gomock.Any(), gomock.Any(), s.customer.ID).
			Return(profile, nil).Times(1)
		s.mockReservations.EXPECT().FindOverlapping(gomock.Any(), gomock.Any(), veh.ID(), gomock.Any(), gomock.Any()).
			Return(&blocking, nil).Times(1)

		_, err = s.commands.Create(context.Background(), s.customer, input)

		s.ErrorIs(err, commands.ErrDateConflict)
	})
}

func (s *ReservationCommandsTestSuite) expectLocks(res *reservation.Reservation) {
	veh := builder.NewVehicleBuilder().BuildDomain()
	s.mockReservations.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), res.ID()).
		Return(res, nil).Times(1)
	s.mockVehicles.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), res.VehicleID()).
		Return(veh, nil).Times(1)
}

func (s *ReservationCommandsTestSuite) expectPersist(res *reservation.Reservation) {
	s.mockReservations.EXPECT().UpdateLifecycle(gomock.Any(), gomock.Any(), res).
		Return(nil).Times(1)
	s.mockVehicles.EXPECT().SyncRentedFlag(gomock.Any(), gomock.Any(), res.VehicleID()).
		Return(nil).Times(1)
}

func (s *ReservationCommandsTestSuite) TestActivate() {
	s.Run("success: staff activates a confirmed reservation on its start day", func() {
		res, err := builder.NewReservationBuilder().
			WithDates(s.now, s.now.AddDate(0, 0, 3)).
			BuildDomain()
		s.Require().NoError(err)

		s.expectLocks(res)
		s.mockReservations.EXPECT().HasOtherActive(gomock.Any(), gomock.Any(), res.VehicleID(), res.ID()).
			Return(false, nil).Times(1)
		s.expectPersist(res)

		s.NoError(s.commands.Activate(context.Background(), s.staff, res.ID()))
		s.Equal(reservation.StatusActive, res.Status())
	})

	s.Run("error: customers may not activate", func() {
		err := s.commands.Activate(context.Background(), s.customer, uuid.New())

		s.ErrorIs(err, commands.ErrNotPermitted)
	})

	s.Run("error: vehicle already has an active rental", func() {
		res, err := builder.NewReservationBuilder().
			WithDates(s.now, s.now.AddDate(0, 0, 3)).
			BuildDomain()
		s.Require().NoError(err)

		s.expectLocks(res)
		s.mockReservations.EXPECT().HasOtherActive(gomock.Any(), gomock.Any(), res.VehicleID(), res.ID()).
			Return(true, nil).Times(1)

		err = s.commands.Activate(context.Background(), s.staff, res.ID())

		s.ErrorIs(err, reservation.ErrVehicleOccupied)
		s.Equal(reservation.StatusConfirmed, res.Status())
	})

	s.Run("error: unknown reservation", func() {
		id := uuid.New()
		s.mockReservations.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any(), id).
			Return(nil, s.notFound("reservation not found")).Times(1)

		err := s.commands.Activate(context.Background(), s.staff, id)

		s.ErrorIs(err, commands.ErrReservationNotFound)
	})
}

func (s *ReservationCommandsTestSuite) TestCancel() {
	s.Run("success: owner cancelling well in advance pays nothing", func() {
		res, err := builder.NewReservationBuilder().
			WithDates(s.now.AddDate(0, 0, 7), s.now.AddDate(0, 0, 10)).
			BuildDomain()
		s.Require().NoError(err)
		owner := shared.Actor{ID: res.CustomerID(), Role: user.RoleCustomer}

		s.expectLocks(res)
		s.expectPersist(res)

		fee, err := s.commands.Cancel(context.Background(), owner, res.ID(), "change of plans")

		s.NoError(err)
		s.Equal("0.00", fee.String())
		s.Equal(reservation.StatusCancelled, res.Status())
		s.Require().NotNil(res.Cancellation())
		s.Equal("change of plans", res.Cancellation().Reason)
	})

	s.Run("success: cancelling inside 24 hours forfeits the full amount", func() {
		// Three days at 10000 cents, start tomorrow.
		res, err := builder.NewReservationBuilder().
			WithDates(s.now.AddDate(0, 0, 1), s.now.AddDate(0, 0, 4)).
			BuildDomain()
		s.Require().NoError(err)
		owner := shared.Actor{ID: res.CustomerID(), Role: user.RoleCustomer}

		s.expectLocks(res)
		s.expectPersist(res)

		fee, err := s.commands.Cancel(context.Background(), owner, res.ID(), "")

		s.NoError(err)
		s.Equal("300.00", fee.String())
	})

	s.Run("error: another customer may not cancel", func() {
		res, err := builder.NewReservationBuilder().
			WithDates(s.now.AddDate(0, 0, 7), s.now.AddDate(0, 0, 10)).
			BuildDomain()
		s.Require().NoError(err)

		s.expectLocks(res)

		_, err = s.commands.Cancel(context.Background(), s.customer, res.ID(), "")

		s.ErrorIs(err, commands.ErrNotPermitted)
		s.Equal(reservation.StatusConfirmed, res.Status())
	})

	s.Run("error: active rentals cannot be cancelled", func() {
		res, err := builder.NewReservationBuilder().
			WithStatus(reservation.StatusActive).
			WithDates(s.now.AddDate(0, 0, -1), s.now.AddDate(0, 0, 2)).
			BuildDomain()
		s.Require().NoError(err)
		owner := shared.Actor{ID: res.CustomerID(), Role: user.RoleCustomer}

		s.expectLocks(res)

		_, err = s.commands.Cancel(context.Background(), owner, res.ID(), "")

		s.ErrorIs(err, reservation.ErrNotCancellable)
	})
}

func (s *ReservationCommandsTestSuite) TestDelete() {
	s.Run("success: staff delete re-derives the rented flag", func() {
		res, err := builder.NewReservationBuilder().BuildDomain()
		s.Require().NoError(err)

		s.expectLocks(res)
		s.mockReservations.EXPECT().Delete(gomock.Any(), gomock.Any(), res.ID()).
			Return(nil).Times(1)
		s.mockVehicles.EXPECT().SyncRentedFlag(gomock.Any(), gomock.Any(), res.VehicleID()).
			Return(nil).Times(1)

		s.NoError(s.commands.Delete(context.Background(), s.staff, res.ID()))
	})

	s.Run("error: customers may not delete", func() {
		err := s.commands.Delete(context.Background(), s.customer, uuid.New())

		s.ErrorIs(err, commands.ErrNotPermitted)
	})
}
