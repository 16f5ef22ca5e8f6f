package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	messagingapp "github.com/whizdome/promorama-backend/internal/application/messaging"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
)

// MessageHandler serves initiative-store messages and responses
type MessageHandler struct {
	BaseHandler
	messages *messagingapp.MessageService
	resource query.Resource
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messages *messagingapp.MessageService, resource query.Resource) *MessageHandler {
	return &MessageHandler{messages: messages, resource: resource}
}

// RegisterRoutes registers the message routes
func (h *MessageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	messages := rg.Group("/messages")
	{
		messages.GET("", h.List)
		messages.POST("", h.Create)
		messages.GET("/:id", h.Get)
		messages.POST("/:id/responses", h.Respond)
	}
}

type createMessageRequest struct {
	InitiativeStoreID uuid.UUID `json:"initiativeStoreId" binding:"required"`
	Title             string    `json:"title" binding:"required"`
	Description       string    `json:"description" binding:"required"`
}

// Create posts a message; the notified parties are derived from the
// initiative-store and the author's role.
func (h *MessageHandler) Create(c *gin.Context) {
	var req createMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Initiative store, title and description are required")
		return
	}

	m, err := h.messages.Create(c.Request.Context(), req.InitiativeStoreID, actor(c), req.Title, req.Description)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Message created", m)
}

type respondRequest struct {
	Description string `json:"description" binding:"required"`
}

// Respond answers the message in the path
func (h *MessageHandler) Respond(c *gin.Context) {
	parentID, err := parseID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Description is required")
		return
	}

	m, err := h.messages.Respond(c.Request.Context(), parentID, actor(c), req.Description)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Response created", m)
}

// Get retrieves a message
func (h *MessageHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	m, err := h.messages.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Message retrieved", m)
}

// List lists messages with filtering, search, sort and pagination
func (h *MessageHandler) List(c *gin.Context) {
	qb := listQuery(c, h.resource, nil)
	messages, total, err := h.messages.List(c.Request.Context(), qb)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, "Messages retrieved", messages, total)
}
