package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	clientapp "github.com/whizdome/promorama-backend/internal/application/client"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"github.com/whizdome/promorama-backend/internal/infrastructure/export"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
	"github.com/whizdome/promorama-backend/internal/interfaces/http/middleware"
)

// ClientHandler serves client accounts and their subusers
type ClientHandler struct {
	BaseHandler
	clients  *clientapp.Service
	subusers *clientapp.SubuserService
	resource query.Resource
}

// NewClientHandler creates a new ClientHandler. resource is the client
// repository's query surface.
func NewClientHandler(clients *clientapp.Service, subusers *clientapp.SubuserService, resource query.Resource) *ClientHandler {
	return &ClientHandler{clients: clients, subusers: subusers, resource: resource}
}

// RegisterRoutes registers the client routes
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := middleware.RequireRoles(shared.ActorAdmin, shared.ActorAgency)

	clients := rg.Group("/clients")
	{
		clients.GET("", admin, h.ListClients)
		clients.GET("/export", admin, h.Export)
		clients.POST("", admin, h.Create)
		clients.GET("/:id", h.Get)
		clients.PATCH("/:id", h.Update)
		clients.DELETE("/:id", middleware.RequireRoles(shared.ActorAdmin), h.Delete)
		clients.PATCH("/:id/restore", middleware.RequireRoles(shared.ActorAdmin), h.Restore)

		clients.GET("/:id/subusers", h.ListSubusers)
		clients.POST("/:id/subusers", h.CreateSubuser)
	}
	rg.DELETE("/subusers/:id", h.DeleteSubuser)
}

type createClientRequest struct {
	CompanyName string `json:"companyName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber"`
}

// Create registers a client company
func (h *ClientHandler) Create(c *gin.Context) {
	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Company name and a valid email are required")
		return
	}

	created, err := h.clients.Create(c.Request.Context(), req.CompanyName, req.Email, req.PhoneNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Client created", created)
}

// Get retrieves a client. A client actor may only read its own record.
func (h *ClientHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if a := actor(c); a.Is(shared.ActorClient) && a.ID != id {
		h.Forbidden(c)
		return
	}

	cl, err := h.clients.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Client retrieved", cl)
}

type updateClientRequest struct {
	CompanyName string `json:"companyName"`
	PhoneNumber string `json:"phoneNumber"`
	LogoURL     string `json:"logoUrl"`
}

// Update edits a client's profile
func (h *ClientHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if a := actor(c); a.Is(shared.ActorClient) && a.ID != id {
		h.Forbidden(c)
		return
	}

	var req updateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.clients.Update(c.Request.Context(), id, req.CompanyName, req.PhoneNumber, req.LogoURL)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Client updated", updated)
}

// ListClients lists active clients with filtering, search, sort and
// pagination. Soft-deleted rows are outside the listing scope.
func (h *ClientHandler) ListClients(c *gin.Context) {
	qb := listQuery(c, h.resource, map[string]any{"is_deleted": false})
	clients, total, err := h.clients.List(c.Request.Context(), qb)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, "Clients retrieved", clients, total)
}

// Export streams the filtered window of active clients as a spreadsheet
func (h *ClientHandler) Export(c *gin.Context) {
	qb := rangeQuery(c, h.resource, map[string]any{"is_deleted": false})
	start, end := exportWindow(c)

	buf, err := h.clients.Export(c.Request.Context(), qb, start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	streamWorkbook(c, "clients.xlsx", buf)
}

// Delete soft-deletes the client and cascades over its dependents
func (h *ClientHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.clients.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Client deleted", nil)
}

// Restore reverses a client delete, reviving only bulk-deleted dependents
func (h *ClientHandler) Restore(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.clients.Restore(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Client restored", nil)
}

type createSubuserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"`
}

// CreateSubuser adds a subuser under the client in the path
func (h *ClientHandler) CreateSubuser(c *gin.Context) {
	clientID, err := parseID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	a := actor(c)
	if a.Is(shared.ActorClient) && a.ID != clientID {
		h.Forbidden(c)
		return
	}

	var req createSubuserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Name and a valid email are required")
		return
	}

	sub, err := h.subusers.Create(c.Request.Context(), clientID, a, req.Name, req.Email, req.Role)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Subuser created", sub)
}

// ListSubusers lists the client's active subusers
func (h *ClientHandler) ListSubusers(c *gin.Context) {
	clientID, err := parseID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if a := actor(c); a.Is(shared.ActorClient) && a.ID != clientID {
		h.Forbidden(c)
		return
	}

	subs, err := h.subusers.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Subusers retrieved", subs)
}

// DeleteSubuser removes one subuser directly
func (h *ClientHandler) DeleteSubuser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.subusers.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Subuser deleted", nil)
}

// streamWorkbook writes an xlsx buffer as a file download
func streamWorkbook(c *gin.Context, filename string, buf *bytes.Buffer) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
