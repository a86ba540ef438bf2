package http

import (
	"go-hrdesk/internal/pkg/chat/application/usecase"
	"go-hrdesk/internal/pkg/chat/presentation/controller"

	"github.com/gin-gonic/gin"
)

// UseCases are the chat application services exposed over HTTP.
type UseCases struct {
	CreateDirect       *usecase.CreateDirectConversationUseCase
	CreateGroup        *usecase.CreateGroupConversationUseCase
	AddMember          *usecase.AddMemberUseCase
	ListConversations  *usecase.ListConversationsUseCase
	GetMessages        *usecase.GetConversationMessagesUseCase
	SendMessage        *usecase.SendMessageUseCase
	MarkMessagesAsRead *usecase.MarkMessagesAsReadUseCase
	UnreadMessageCount *usecase.GetUnreadMessageCountUseCase
}

// RegisterRoutes registers chat-related HTTP endpoints under the given router group.
// The group is expected to be authenticated.
func RegisterRoutes(g *gin.RouterGroup, uc UseCases) {
	// POST /api/v1/conversations/direct -> find or create a direct conversation
	g.POST("/conversations/direct", controller.NewCreateDirectConversationController(uc.CreateDirect).Handle())

	// POST /api/v1/conversations/group -> create a group conversation
	g.POST("/conversations/group", controller.NewCreateGroupConversationController(uc.CreateGroup).Handle())

	g.GET("/conversations", controller.NewListConversationsController(uc.ListConversations).Handle())
	g.POST("/conversations/:conversationId/members", controller.NewAddMemberController(uc.AddMember).Handle())

	// GET /api/v1/conversations/:conversationId/messages -> whole thread, oldest first
	g.GET("/conversations/:conversationId/messages", controller.NewGetMessagesController(uc.GetMessages).Handle())
	g.POST("/conversations/:conversationId/messages", controller.NewSendMessageController(uc.SendMessage).Handle())
	g.POST("/conversations/:conversationId/read", controller.NewMarkMessagesReadController(uc.MarkMessagesAsRead).Handle())

	g.GET("/messages/unread-count", controller.NewUnreadMessageCountController(uc.UnreadMessageCount).Handle())
}
