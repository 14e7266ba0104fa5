package routes

import (
	"vibe-todo/vibetodo/broker"

	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes exposes the live event feed. Authentication is
// applied by the group.
func RegisterWebSocketRoutes(group *gin.RouterGroup, hub *broker.Hub) {
	group.GET("/ws", hub.ServeWS)
}
