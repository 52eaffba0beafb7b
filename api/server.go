// Package api wires the HTTP transport boundary: JSON endpoints polled by
// the chat widget plus the auth and event collaborators it depends on.
package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"xaty/repositories"
	"xaty/services"
)

type RouterDeps struct {
	Log    *slog.Logger
	Secret []byte
	Users  repositories.IUserRepository
	Chat   services.IChatService
	Auth   services.IAuthService
	Events services.IEventService
}

// NewRouter builds the gin engine with all routes registered. Chat reads are
// open (with optional identity); writes require a session.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	chat := NewChatHandler(deps.Log, deps.Chat)
	auth := NewAuthHandler(deps.Log, deps.Auth)
	events := NewEventHandler(deps.Log, deps.Events)

	required := RequireAuth(deps.Secret, deps.Users)
	optional := OptionalAuth(deps.Secret, deps.Users)

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/auth/register", auth.Register)
		apiGroup.POST("/auth/login", auth.Login)

		apiGroup.GET("/events", events.List)
		apiGroup.POST("/events", required, events.Create)
		apiGroup.GET("/events/:id", events.Get)
		apiGroup.PATCH("/events/:id/status", required, events.UpdateStatus)

		apiGroup.POST("/events/:id/chat/send", required, chat.Send)
		apiGroup.GET("/events/:id/chat/messages", optional, chat.Load)
		apiGroup.POST("/chat/messages/:id/delete", required, chat.Delete)
	}

	return router
}
