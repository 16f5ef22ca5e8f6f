package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	messagingapp "github.com/whizdome/promorama-backend/internal/application/messaging"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
	"github.com/whizdome/promorama-backend/internal/interfaces/http/middleware"
)

// TaskHandler serves initiative tasks
type TaskHandler struct {
	BaseHandler
	tasks    *messagingapp.TaskService
	resource query.Resource
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(tasks *messagingapp.TaskService, resource query.Resource) *TaskHandler {
	return &TaskHandler{tasks: tasks, resource: resource}
}

// RegisterRoutes registers the task routes
func (h *TaskHandler) RegisterRoutes(rg *gin.RouterGroup) {
	manage := middleware.RequireRoles(shared.ActorAdmin, shared.ActorAgency, shared.ActorClient)

	tasks := rg.Group("/tasks")
	{
		tasks.GET("", h.List)
		tasks.POST("", manage, h.Create)
		tasks.GET("/:id", h.Get)
		tasks.POST("/:id/assignees", manage, h.Assign)
	}
}

type createTaskRequest struct {
	InitiativeID uuid.UUID   `json:"initiativeId" binding:"required"`
	Title        string      `json:"title" binding:"required"`
	Description  string      `json:"description"`
	DueDate      *time.Time  `json:"dueDate"`
	AssigneeIDs  []uuid.UUID `json:"assigneeIds"`
}

// Create creates a task and notifies its assignees
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Initiative id and title are required")
		return
	}

	t, err := h.tasks.Create(c.Request.Context(), actor(c), messagingapp.CreateTaskInput{
		InitiativeID: req.InitiativeID,
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		AssigneeIDs:  req.AssigneeIDs,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Task created", t)
}

type assignTaskRequest struct {
	AssigneeIDs []uuid.UUID `json:"assigneeIds" binding:"required,min=1"`
}

// Assign adds employees to the task; only newly added ones are notified
func (h *TaskHandler) Assign(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req assignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "At least one assignee is required")
		return
	}

	t, err := h.tasks.Assign(c.Request.Context(), id, req.AssigneeIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Task assignees updated", t)
}

// Get retrieves a task with its assignments
func (h *TaskHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	t, err := h.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Task retrieved", t)
}

// List lists tasks with filtering, sort and pagination
func (h *TaskHandler) List(c *gin.Context) {
	qb := listQuery(c, h.resource, nil)
	tasks, total, err := h.tasks.List(c.Request.Context(), qb)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, "Tasks retrieved", tasks, total)
}
