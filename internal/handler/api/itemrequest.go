package api

import (
	"errors"
	"net/http"

	reqdto "gearshare/internal/handler/dto/request"
	resdto "gearshare/internal/handler/dto/response"
	"gearshare/internal/handler/middleware"
	"gearshare/internal/pkg/errs"
	"gearshare/internal/usecase/commands"
	"gearshare/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ItemRequestHandler struct {
	requestCommands commands.RequestCommands
	requestQueries  queries.RequestQueries
}

func NewItemRequestHandler(requestCommands commands.RequestCommands, requestQueries queries.RequestQueries) *ItemRequestHandler {
	return &ItemRequestHandler{
		requestCommands: requestCommands,
		requestQueries:  requestQueries,
	}
}

// @Summary Create item request
// @Description Ask for an item nobody has listed yet
// @Tags requests
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Param request body reqdto.CreateItemRequestRequest true "Request"
// @Success 201 {object} resdto.ItemRequestResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /requests [post]
func (h *ItemRequestHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateItemRequestRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.requestCommands.Create(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		case errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Request description cannot be empty",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRequestView(view))
}

// @Summary List own item requests
// @Description List the user's requests with the items offered in answer
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Success 200 {array} resdto.ItemRequestWithAnswersResponse
// @Failure 404 {object} map[string]string
// @Router /requests [get]
func (h *ItemRequestHandler) ListOwn(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.requestQueries.ListOwn(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRequestWithAnswersViews(views))
}

// @Summary List other users' item requests
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Success 200 {array} resdto.ItemRequestResponse
// @Failure 404 {object} map[string]string
// @Router /requests/all [get]
func (h *ItemRequestHandler) ListOthers(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.requestQueries.ListOthers(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRequestViews(views))
}

// @Summary Get item request
// @Description Get a request with the items offered in answer
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Param requestId path string true "Request ID"
// @Success 200 {object} resdto.ItemRequestWithAnswersResponse
// @Failure 404 {object} map[string]string
// @Router /requests/{requestId} [get]
func (h *ItemRequestHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	requestID, err := uuid.Parse(c.Param("requestId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request ID format",
		})
		return
	}

	view, err := h.requestQueries.GetByID(c.Request.Context(), userID, requestID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		case errors.Is(err, errs.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item request not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRequestWithAnswersView(view))
}
