package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	reportingapp "github.com/whizdome/promorama-backend/internal/application/reporting"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
	"github.com/whizdome/promorama-backend/internal/interfaces/http/middleware"
)

// ReportHandler serves sales reports
type ReportHandler struct {
	BaseHandler
	reports  *reportingapp.ReportService
	resource query.Resource
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *reportingapp.ReportService, resource query.Resource) *ReportHandler {
	return &ReportHandler{reports: reports, resource: resource}
}

// RegisterRoutes registers the report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("", h.List)
		reports.GET("/export", middleware.RequireRoles(
			shared.ActorAdmin, shared.ActorAgency, shared.ActorClient), h.Export)
		reports.POST("", middleware.RequireRoles(
			shared.ActorPromoter, shared.ActorSupervisor), h.Create)
		reports.GET("/:id", h.Get)
	}
}

type createReportRequest struct {
	InitiativeStoreID uuid.UUID       `json:"initiativeStoreId" binding:"required"`
	Date              time.Time       `json:"date" binding:"required"`
	BrandName         string          `json:"brandName" binding:"required"`
	UnitsSold         int             `json:"unitsSold" binding:"required,min=1"`
	UnitPrice         decimal.Decimal `json:"unitPrice" binding:"required"`
}

// Create files a sales report authored by the acting employee
func (h *ReportHandler) Create(c *gin.Context) {
	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Initiative store, date, brand, units and price are required")
		return
	}

	created, err := h.reports.Create(c.Request.Context(), reportingapp.CreateReportInput{
		InitiativeStoreID: req.InitiativeStoreID,
		EmployeeID:        actor(c).ID,
		Date:              req.Date,
		BrandName:         req.BrandName,
		UnitsSold:         req.UnitsSold,
		UnitPrice:         req.UnitPrice,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Report created", created)
}

// Get retrieves a report
func (h *ReportHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	r, err := h.reports.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Report retrieved", r)
}

// List lists reports with filtering, search, sort and pagination. A field
// employee only sees reports it filed.
func (h *ReportHandler) List(c *gin.Context) {
	base := map[string]any{}
	if a := actor(c); a.Is(shared.ActorPromoter) || a.Is(shared.ActorSupervisor) {
		base["employee_id"] = a.ID
	}

	qb := listQuery(c, h.resource, base)
	reports, total, err := h.reports.List(c.Request.Context(), qb)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, "Reports retrieved", reports, total)
}

// Export streams the filtered report window as a spreadsheet
func (h *ReportHandler) Export(c *gin.Context) {
	qb := rangeQuery(c, h.resource, nil)
	start, end := exportWindow(c)

	buf, err := h.reports.Export(c.Request.Context(), qb, start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	streamWorkbook(c, "reports.xlsx", buf)
}
