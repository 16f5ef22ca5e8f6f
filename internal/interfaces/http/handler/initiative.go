package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	initiativeapp "github.com/whizdome/promorama-backend/internal/application/initiative"
	"github.com/whizdome/promorama-backend/internal/domain/initiative"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
	"github.com/whizdome/promorama-backend/internal/interfaces/http/middleware"
)

// InitiativeHandler serves initiatives and their store assignments
type InitiativeHandler struct {
	BaseHandler
	initiatives *initiativeapp.Service
	resource    query.Resource
}

// NewInitiativeHandler creates a new InitiativeHandler
func NewInitiativeHandler(initiatives *initiativeapp.Service, resource query.Resource) *InitiativeHandler {
	return &InitiativeHandler{initiatives: initiatives, resource: resource}
}

// RegisterRoutes registers the initiative routes
func (h *InitiativeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	manage := middleware.RequireRoles(shared.ActorAdmin, shared.ActorAgency, shared.ActorClient)

	initiatives := rg.Group("/initiatives")
	{
		initiatives.GET("", h.List)
		initiatives.POST("", manage, h.Create)
		initiatives.GET("/:id", h.Get)
		initiatives.PATCH("/:id/start", manage, h.Start)
		initiatives.PATCH("/:id/complete", manage, h.Complete)
		initiatives.DELETE("/:id", middleware.RequireRoles(shared.ActorAdmin, shared.ActorClient), h.Delete)
		initiatives.PATCH("/:id/restore", middleware.RequireRoles(shared.ActorAdmin), h.Restore)

		initiatives.GET("/:id/stores", h.ListStores)
		initiatives.POST("/:id/stores", manage, h.AssignStore)
	}

	stores := rg.Group("/initiative-stores")
	{
		stores.DELETE("/:id", manage, h.RemoveStore)
		stores.PATCH("/:id/promoter", manage, h.AssignPromoter)
		stores.PATCH("/:id/supervisor", manage, h.AssignSupervisor)
		stores.PATCH("/:id/game", manage, h.SetGamePrize)
	}
}

type createInitiativeRequest struct {
	ClientID    uuid.UUID  `json:"clientId" binding:"required"`
	AgencyID    *uuid.UUID `json:"agencyId"`
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// Create registers a pending initiative
func (h *InitiativeHandler) Create(c *gin.Context) {
	var req createInitiativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Client id and name are required")
		return
	}
	if a := actor(c); a.Is(shared.ActorClient) && a.ID != req.ClientID {
		h.Forbidden(c)
		return
	}

	created, err := h.initiatives.Create(c.Request.Context(), initiativeapp.CreateInput{
		ClientID:    req.ClientID,
		AgencyID:    req.AgencyID,
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Initiative created", created)
}

// Get retrieves an initiative
func (h *InitiativeHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	i, err := h.initiatives.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if a := actor(c); a.Is(shared.ActorClient) && a.ID != i.ClientID {
		h.Forbidden(c)
		return
	}
	h.Success(c, "Initiative retrieved", i)
}

// List lists active initiatives. A client actor is pinned to its own
// initiatives regardless of query parameters.
func (h *InitiativeHandler) List(c *gin.Context) {
	base := map[string]any{"is_deleted": false}
	if a := actor(c); a.Is(shared.ActorClient) {
		base["client_id"] = a.ID
	} else if a.Is(shared.ActorAgency) {
		base["agency_id"] = a.ID
	}

	qb := listQuery(c, h.resource, base)
	initiatives, total, err := h.initiatives.List(c.Request.Context(), qb)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, "Initiatives retrieved", initiatives, total)
}

// Start moves a pending initiative to ongoing
func (h *InitiativeHandler) Start(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	i, err := h.initiatives.Start(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Initiative started", i)
}

// Complete closes an ongoing initiative
func (h *InitiativeHandler) Complete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	i, err := h.initiatives.Complete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Initiative completed", i)
}

// Delete soft-deletes the initiative and bulk-deletes its store assignments
func (h *InitiativeHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if a := actor(c); a.Is(shared.ActorClient) {
		i, err := h.initiatives.GetByID(c.Request.Context(), id)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		if i.ClientID != a.ID {
			h.Forbidden(c)
			return
		}
	}
	if err := h.initiatives.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Initiative deleted", nil)
}

// Restore reverses an initiative delete
func (h *InitiativeHandler) Restore(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.initiatives.Restore(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Initiative restored", nil)
}

type assignStoreRequest struct {
	StoreID uuid.UUID `json:"storeId" binding:"required"`
}

// AssignStore links the initiative to a store
func (h *InitiativeHandler) AssignStore(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req assignStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Store id is required")
		return
	}

	is, err := h.initiatives.AssignStore(c.Request.Context(), id, req.StoreID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Store assigned", is)
}

// ListStores lists the initiative's active store assignments
func (h *InitiativeHandler) ListStores(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	stores, err := h.initiatives.ListStores(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Initiative stores retrieved", stores)
}

// RemoveStore removes one store assignment directly
func (h *InitiativeHandler) RemoveStore(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.initiatives.RemoveStore(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Store assignment removed", nil)
}

type assignStaffRequest struct {
	EmployeeID uuid.UUID `json:"employeeId" binding:"required"`
}

// AssignPromoter puts a promoter on the initiative-store
func (h *InitiativeHandler) AssignPromoter(c *gin.Context) {
	h.assignStaff(c, h.initiatives.AssignPromoter, "Promoter assigned")
}

// AssignSupervisor puts a supervisor on the initiative-store
func (h *InitiativeHandler) AssignSupervisor(c *gin.Context) {
	h.assignStaff(c, h.initiatives.AssignSupervisor, "Supervisor assigned")
}

func (h *InitiativeHandler) assignStaff(
	c *gin.Context,
	assign func(ctx context.Context, initiativeStoreID, employeeID uuid.UUID) (*initiative.InitiativeStore, error),
	message string,
) {
	id, err := parseID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req assignStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Employee id is required")
		return
	}

	is, err := assign(c.Request.Context(), id, req.EmployeeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, message, is)
}

type gamePrizeRequest struct {
	Prize string `json:"prize" binding:"required"`
	Count int    `json:"count"`
}

// SetGamePrize configures the in-store game on the assignment
func (h *InitiativeHandler) SetGamePrize(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req gamePrizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Prize is required")
		return
	}

	is, err := h.initiatives.SetGamePrize(c.Request.Context(), id, req.Prize, req.Count)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Game prize configured", is)
}
