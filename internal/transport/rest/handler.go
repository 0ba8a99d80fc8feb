package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carepulse/config"
	"carepulse/internal/controller"
	"carepulse/internal/form"
	"carepulse/internal/service"
	"carepulse/internal/transport/websocket"
)

type Deps struct {
	Services  *service.Services
	Registry  *form.Registry
	Validator *form.Validator
	Sessions  *controller.Sessions
	Feed      *websocket.FeedHub
	Logger    *zap.Logger
	Config    *config.Config
}

type Handler struct {
	services  *service.Services
	registry  *form.Registry
	validator *form.Validator
	sessions  *controller.Sessions
	feed      *websocket.FeedHub
	logger    *zap.Logger
	config    *config.Config
}

func NewHandler(deps Deps) *Handler {
	return &Handler{
		services:  deps.Services,
		registry:  deps.Registry,
		validator: deps.Validator,
		sessions:  deps.Sessions,
		feed:      deps.Feed,
		logger:    deps.Logger,
		config:    deps.Config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	api := router.Group("/api/v1")
	{
		reference := api.Group("/reference")
		{
			reference.GET("/doctors", h.getDoctors)
			reference.GET("/identification-types", h.getIdentificationTypes)
			reference.GET("/genders", h.getGenders)
		}

		h.initFormRoutes(api.Group("/forms/sessions"), controller.ScopePublic)

		api.GET("/users/:id", h.getUserByID)

		api.GET("/patients/:userId", h.getPatientByUserID)

		api.GET("/appointments/:id", h.getAppointmentByID)

		admin := api.Group("/admin")
		{
			admin.POST("/session", h.createAdminSession)

			auth := admin.Group("/", h.adminMiddleware())
			{
				auth.GET("/appointments", h.getRecentAppointments)
				auth.GET("/patients/:userId/identification-document", h.getIdentificationDocument)
				h.initFormRoutes(auth.Group("/forms/sessions"), controller.ScopeAdmin)
			}
		}
	}

	if h.feed != nil {
		router.GET("/ws/admin", h.feed.HandleWebSocket)
	}
}

func (h *Handler) initFormRoutes(group *gin.RouterGroup, scope controller.Scope) {
	group.POST("", h.createFormSession(scope))
	group.GET("/:id", h.getFormSession(scope))
	group.PATCH("/:id/values", h.editFormValues(scope))
	group.POST("/:id/document", h.attachDocument(scope))
	group.POST("/:id/submit", h.submitForm(scope))
	group.DELETE("/:id", h.deleteFormSession(scope))
}
