package routes

import (
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/handler"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/middleware"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/pkg/cache"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	chatHandler *handler.ChatHandler,
	groupHandler *handler.GroupHandler,
	notificationHandler *handler.NotificationHandler,
	wsHandler *handler.WSHandler,
	jwtManager *jwt.Manager,
	cacheSvc cache.Service,
) {
	api := router.Group("/api/v1", middleware.JWTAuth(jwtManager))

	// Conversations (chats and groups, unified listing)
	conversations := api.Group("/conversations")
	conversations.GET("", chatHandler.ListConversations)
	conversations.GET("/:type/:id/messages", chatHandler.ListMessages)
	conversations.POST("/:type/:id/read", chatHandler.MarkRead)
	conversations.DELETE("/:type/:id", chatHandler.CloseConversation)

	// Direct messages; sends accept an optional X-Dedup-Token header
	messages := api.Group("/messages")
	messages.POST("/direct", middleware.Dedup(cacheSvc), chatHandler.SendDirectMessage)
	messages.DELETE("/:id", chatHandler.DeleteMessage)

	// Group chats
	groups := api.Group("/groups")
	groups.POST("", groupHandler.CreateGroup)
	groups.GET("/:id", groupHandler.GetGroup)
	groups.POST("/:id/members", groupHandler.AddMember)
	groups.DELETE("/:id/members", groupHandler.RemoveMember)
	groups.POST("/:id/messages", middleware.Dedup(cacheSvc), groupHandler.SendMessage)

	// Notifications (fan-out read side)
	notifications := api.Group("/notifications")
	notifications.GET("", notificationHandler.GetList)
	notifications.GET("/unread-count", notificationHandler.GetUnreadCount)
	notifications.POST("/:id/read", notificationHandler.MarkAsRead)
	notifications.POST("/read-all", notificationHandler.MarkAllAsRead)

	// Live session endpoint
	api.GET("/ws", wsHandler.Connect)
}
