package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"car-rental-api/internal/domain/user"
	"car-rental-api/internal/handler/api"
	"car-rental-api/internal/handler/middleware"
	"car-rental-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	authHandler *api.AuthHandler,
	vehicleHandler *api.VehicleHandler,
	reservationHandler *api.ReservationHandler,
	adminHandler *api.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, authHandler, vehicleHandler, reservationHandler, adminHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	vehicleHandler *api.VehicleHandler,
	reservationHandler *api.ReservationHandler,
	adminHandler *api.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	staffOnly := authMiddleware.RequireRoleAtLeast(user.RoleStaff)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: authHandler.Register},
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		vehicles := apiGroup.Group("/vehicles")
		vehicles.Use(authMiddleware.RequireAuth())
		{
			addRoutes(vehicles, []route{
				{Method: http.MethodGet, Path: "", Handler: vehicleHandler.ListVehicles},
				{Method: http.MethodGet, Path: "/:id", Handler: vehicleHandler.GetVehicle},
				{Method: http.MethodPost, Path: "", Handler: vehicleHandler.RegisterVehicle, Mw: []gin.HandlerFunc{staffOnly}},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: reservationHandler.CreateReservation},
				{Method: http.MethodGet, Path: "", Handler: reservationHandler.ListReservations},
				{Method: http.MethodGet, Path: "/cancellation-policy", Handler: reservationHandler.GetCancellationPolicy},
				{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.GetReservation},
				{Method: http.MethodPost, Path: "/:id/activate", Handler: reservationHandler.ActivateReservation, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: reservationHandler.CompleteReservation, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: reservationHandler.CancelReservation},
				{Method: http.MethodGet, Path: "/:id/cancellation-fee", Handler: reservationHandler.GetCancellationFee},
				{Method: http.MethodDelete, Path: "/:id", Handler: reservationHandler.DeleteReservation, Mw: []gin.HandlerFunc{staffOnly}},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), staffOnly)
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/sweep", Handler: adminHandler.RunSweep},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
