//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"car-rental-api/internal/domain/user"
	"car-rental-api/internal/handler/api"
	resdto "car-rental-api/internal/handler/dto/response"
	"car-rental-api/internal/usecase/commands"
	"car-rental-api/internal/usecase/queries"
	"car-rental-api/tests/common/builder"
	"car-rental-api/tests/common/httptest"
	"car-rental-api/tests/common/testutil"
	commandsmock "car-rental-api/tests/mock/commands"
	queriesmock "car-rental-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	handler      *api.AuthHandler
	actorID      uuid.UUID
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockQueries)
	s.actorID = uuid.New()

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.actorID)
		c.Set("user_role", user.RoleCustomer)
		c.Next()
	}

	s.router.POST("/auth/register", s.handler.Register)
	s.router.POST("/auth/login", s.handler.Login)
	s.router.GET("/auth/me", authMiddleware, s.handler.Me)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

// ================================================================================
// TestRegister
// ================================================================================

func (s *AuthHandlerTestSuite) TestRegister() {
	url := "/auth/register"

	reqBody := map[string]any{
		"email":          "newcustomer@example.com",
		"password":       "password123",
		"phone":          "090-0000-0000",
		"license_number": "D1234567",
	}

	s.Run("success: returns 201 Created with the new account id", func() {
		createdID := uuid.New()
		s.mockCommands.EXPECT().Register(gomock.Any(), commands.RegisterInput{
			Email:         "newcustomer@example.com",
			Password:      "password123",
			Phone:         "090-0000-0000",
			LicenseNumber: "D1234567",
		}).Return(createdID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.RegisterResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(createdID, response.ID)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing email", mutate: testutil.Field("email", nil)},
			{name: "malformed email", mutate: testutil.Field("email", "not-an-email")},
			{name: "missing password", mutate: testutil.Field("password", nil)},
			{name: "short password", mutate: testutil.Field("password", "short")},
			{name: "missing phone", mutate: testutil.Field("phone", nil)},
			{name: "missing license number", mutate: testutil.Field("license_number", nil)},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: 409 Conflict when email is taken", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, commands.ErrEmailTaken).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Email already registered")
	})

	s.Run("error: 500 on unexpected failure", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal error")
	})
}

// ================================================================================
// TestLogin
// ================================================================================

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"

	reqBody := map[string]any{
		"email":    "test@example.com",
		"password": "password123",
	}

	s.Run("success: returns token and user summary", func() {
		userView := builder.NewUserBuilder().BuildReadModel()
		s.mockCommands.EXPECT().Login(gomock.Any(), "test@example.com", "password123").
			Return(&commands.LoginOutput{Token: "signed.jwt.token", User: *userView}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("signed.jwt.token", response.AccessToken)
		s.Require().NotNil(response.User)
		s.Equal(userView.Email, response.User.Email)
	})

	s.Run("error: 400 Bad Request on malformed body", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("password", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 401 Unauthorized on bad credentials", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), "test@example.com", "password123").
			Return(nil, commands.ErrInvalidCredentials).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid email or password")
	})
}

// ================================================================================
// TestMe
// ================================================================================

func (s *AuthHandlerTestSuite) TestMe() {
	url := "/auth/me"

	s.Run("success: returns the authenticated user", func() {
		view := builder.NewUserBuilder().BuildReadModel()
		view.ID = s.actorID
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.actorID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response queries.AuthorizedUserView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(s.actorID, response.ID)
		s.Equal(view.Email, response.Email)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 404 when the account no longer exists", func() {
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.actorID).
			Return(nil, queries.ErrUserNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})
}
