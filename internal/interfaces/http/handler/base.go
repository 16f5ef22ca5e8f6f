// Package handler contains the gin handlers for the REST API. Each handler
// owns its routes, binds and validates input, delegates to an application
// service and answers with the shared envelope.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
	"github.com/whizdome/promorama-backend/internal/interfaces/http/dto"
	"github.com/whizdome/promorama-backend/internal/interfaces/http/middleware"
)

// BaseHandler provides the response and error plumbing shared by handlers
type BaseHandler struct{}

// Success sends a 200 envelope
func (h *BaseHandler) Success(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(message, data))
}

// Created sends a 201 envelope
func (h *BaseHandler) Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(message, data))
}

// Paginated sends a 200 envelope with the structural total
func (h *BaseHandler) Paginated(c *gin.Context, message string, data any, totalCount int64) {
	c.JSON(http.StatusOK, dto.NewListResponse(message, data, totalCount))
}

// BadRequest sends a 400 fail envelope
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewFailResponse(message))
}

// Forbidden sends a 403 fail envelope
func (h *BaseHandler) Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, dto.NewFailResponse("You do not have permission to perform this action"))
}

// HandleError maps a domain error to its HTTP status; anything else is a 500
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.HTTPStatus(domainErr.Code)
		if dto.StatusWord(status) == dto.StatusFail {
			c.JSON(status, dto.NewFailResponse(domainErr.Message))
		} else {
			c.JSON(status, dto.NewErrorResponse(domainErr.Message))
		}
		return
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("An unexpected error occurred"))
}

// parseID parses the :id path parameter
func parseID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, shared.NewDomainError("INVALID_INPUT", "Invalid id")
	}
	return id, nil
}

// actor returns the authenticated actor; the auth middleware guarantees it
func actor(c *gin.Context) shared.Actor {
	a, _ := middleware.GetActor(c)
	return a
}

// listQuery builds the list pipeline for one request: base visibility
// conditions plus filter, search, sort, projection and pagination.
func listQuery(c *gin.Context, resource query.Resource, base map[string]any) *query.Builder {
	return query.New(resource, c.Request.URL.Query(), base).
		Filter().Sort().LimitFields().Paginate()
}

// rangeQuery builds the export pipeline: filter, search and sort only; the
// window comes from startRange/endRange, not pages.
func rangeQuery(c *gin.Context, resource query.Resource, base map[string]any) *query.Builder {
	return query.New(resource, c.Request.URL.Query(), base).Filter().Sort()
}

// exportWindow reads the startRange/endRange query parameters, defaulting to
// the first document onward.
func exportWindow(c *gin.Context) (int, int) {
	start, err := strconv.Atoi(c.Query("startRange"))
	if err != nil {
		start = 1
	}
	end, err := strconv.Atoi(c.Query("endRange"))
	if err != nil {
		end = start
	}
	return start, end
}
