package routes

import (
	"vibe-todo/vibetodo/broker"
	"vibe-todo/vibetodo/database"
	"vibe-todo/vibetodo/middleware"
	"vibe-todo/vibetodo/services"

	"github.com/gin-gonic/gin"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	DB             *database.Database
	Lists          services.ListServiceInterface
	Tasks          services.TaskServiceInterface
	Subtasks       services.SubtaskServiceInterface
	MyDay          services.MyDayServiceInterface
	Auth           services.AuthServiceInterface
	Hub            *broker.Hub
	AllowedOrigins string
}

// NewRouter builds the engine. /health and /auth/token stay public; every
// other route goes through the auth middleware.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORSMiddleware(deps.AllowedOrigins))

	public := router.Group("/api/v1")
	RegisterHealthRoutes(public, deps.DB)
	RegisterAuthRoutes(public, deps.Auth)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(deps.Auth))
	RegisterListRoutes(api, deps.DB, deps.Lists, deps.Tasks)
	RegisterTaskRoutes(api, deps.DB, deps.Tasks)
	RegisterSubtaskRoutes(api, deps.DB, deps.Subtasks)
	RegisterMyDayRoutes(api, deps.DB, deps.MyDay)
	if deps.Hub != nil {
		RegisterWebSocketRoutes(api, deps.Hub)
	}

	return router
}
