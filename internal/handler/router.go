package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"evcharge-booking/internal/domain/user"
	"evcharge-booking/internal/handler/api"
	"evcharge-booking/internal/handler/middleware"
	"evcharge-booking/internal/pkg/config"
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
	authHandler *api.AuthHandler,
	stationHandler *api.StationHandler,
	slotHandler *api.SlotHandler,
	bookingHandler *api.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, stationHandler, slotHandler, bookingHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	stationHandler *api.StationHandler,
	slotHandler *api.SlotHandler,
	bookingHandler *api.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/register", Handler: authHandler.Register},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
				{Method: http.MethodPost, Path: "/activate/:userId", Handler: authHandler.ActivateUser,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleAdmin)}},
				{Method: http.MethodPost, Path: "/deactivate/:userId", Handler: authHandler.DeactivateUser,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleAdmin)}},
			})
		}

		operatorOnly := []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleOperator)}

		stations := apiGroup.Group("/chargingstation")
		stations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(stations, []route{
				{Method: http.MethodPost, Path: "/create", Handler: stationHandler.Create, Mw: operatorOnly},
				{Method: http.MethodGet, Path: "/all", Handler: stationHandler.List},
				{Method: http.MethodPatch, Path: "/partial/:id", Handler: stationHandler.UpdatePartial, Mw: operatorOnly},
				{Method: http.MethodPost, Path: "/activate/:id", Handler: stationHandler.Activate, Mw: operatorOnly},
				{Method: http.MethodPost, Path: "/deactivate/:id", Handler: stationHandler.Deactivate, Mw: operatorOnly},
				{Method: http.MethodDelete, Path: "/delete/:id", Handler: stationHandler.Delete, Mw: operatorOnly},
				{Method: http.MethodGet, Path: "/:id", Handler: stationHandler.Get},
			})
		}

		slots := apiGroup.Group("/chargingslot")
		slots.Use(authMiddleware.RequireAuth())
		{
			addRoutes(slots, []route{
				{Method: http.MethodPost, Path: "/init/:stationId/:date", Handler: slotHandler.InitializeDay, Mw: operatorOnly},
				{Method: http.MethodDelete, Path: "/deinit/:stationId/:date", Handler: slotHandler.DeinitializeDay, Mw: operatorOnly},
				{Method: http.MethodGet, Path: "/all/:stationId/:date", Handler: slotHandler.ListDay},
				{Method: http.MethodDelete, Path: "/:slotId", Handler: slotHandler.DeleteSlot, Mw: operatorOnly},
			})
		}

		bookings := apiGroup.Group("/booking")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "/create", Handler: bookingHandler.Create},
				{Method: http.MethodPost, Path: "/cancel/:id", Handler: bookingHandler.Cancel},
				{Method: http.MethodPut, Path: "/update/:id", Handler: bookingHandler.Update},
				{Method: http.MethodGet, Path: "/all", Handler: bookingHandler.List},
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
