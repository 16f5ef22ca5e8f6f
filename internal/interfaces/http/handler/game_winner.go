package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	reportingapp "github.com/whizdome/promorama-backend/internal/application/reporting"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
	"github.com/whizdome/promorama-backend/internal/interfaces/http/middleware"
)

// GameWinnerHandler serves in-store game prize records
type GameWinnerHandler struct {
	BaseHandler
	winners  *reportingapp.GameWinnerService
	resource query.Resource
}

// NewGameWinnerHandler creates a new GameWinnerHandler
func NewGameWinnerHandler(winners *reportingapp.GameWinnerService, resource query.Resource) *GameWinnerHandler {
	return &GameWinnerHandler{winners: winners, resource: resource}
}

// RegisterRoutes registers the game-winner routes
func (h *GameWinnerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	winners := rg.Group("/game-winners")
	{
		winners.GET("", h.List)
		winners.GET("/export", middleware.RequireRoles(
			shared.ActorAdmin, shared.ActorAgency, shared.ActorClient), h.Export)
		winners.POST("", middleware.RequireRoles(
			shared.ActorPromoter, shared.ActorSupervisor), h.Create)
	}
}

type createGameWinnerRequest struct {
	InitiativeStoreID uuid.UUID `json:"initiativeStoreId" binding:"required"`
	WinnerName        string    `json:"winnerName" binding:"required"`
	Phone             string    `json:"phone"`
	Prize             string    `json:"prize" binding:"required"`
	WonAt             time.Time `json:"wonAt" binding:"required"`
}

// Create records a prize win
func (h *GameWinnerHandler) Create(c *gin.Context) {
	var req createGameWinnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Initiative store, winner name, prize and won-at date are required")
		return
	}

	w, err := h.winners.Create(c.Request.Context(),
		req.InitiativeStoreID, req.WinnerName, req.Phone, req.Prize, req.WonAt)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Game winner recorded", w)
}

// List lists game winners with filtering, search, sort and pagination
func (h *GameWinnerHandler) List(c *gin.Context) {
	qb := listQuery(c, h.resource, nil)
	winners, total, err := h.winners.List(c.Request.Context(), qb)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, "Game winners retrieved", winners, total)
}

// Export streams the filtered winner window as a spreadsheet
func (h *GameWinnerHandler) Export(c *gin.Context) {
	qb := rangeQuery(c, h.resource, nil)
	start, end := exportWindow(c)

	buf, err := h.winners.Export(c.Request.Context(), qb, start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	streamWorkbook(c, "game-winners.xlsx", buf)
}
