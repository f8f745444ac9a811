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

type ItemHandler struct {
	itemCommands commands.ItemCommands
	itemQueries  queries.ItemQueries
}

func NewItemHandler(itemCommands commands.ItemCommands, itemQueries queries.ItemQueries) *ItemHandler {
	return &ItemHandler{
		itemCommands: itemCommands,
		itemQueries:  itemQueries,
	}
}

// @Summary Create item
// @Description Register an item for sharing, optionally answering a request
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Param request body reqdto.CreateItemRequest true "Item"
// @Success 201 {object} resdto.ItemResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateItemRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.itemCommands.Create(c.Request.Context(), req, userID)
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
		case errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid item data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromItemView(view))
}

// @Summary Update item
// @Description Partially update an item; owner only
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Param itemId path string true "Item ID"
// @Param request body reqdto.UpdateItemRequest true "Fields to update"
// @Success 200 {object} resdto.ItemResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items/{itemId} [patch]
func (h *ItemHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item ID format",
		})
		return
	}

	var req reqdto.UpdateItemRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.itemCommands.Update(c.Request.Context(), req, userID, itemID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item not found",
			})
		case errors.Is(err, errs.ErrNotItemOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Only the owner can update an item",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromItemView(view))
}

// @Summary Get item
// @Description Get an item with comments; the owner also sees last/next booking
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Param itemId path string true "Item ID"
// @Success 200 {object} resdto.ItemDetailResponse
// @Failure 404 {object} map[string]string
// @Router /items/{itemId} [get]
func (h *ItemHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item ID format",
		})
		return
	}

	view, err := h.itemQueries.GetByID(c.Request.Context(), userID, itemID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromItemDetailView(view))
}

// @Summary List own items
// @Description List the user's items with last/next booking and comments
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Success 200 {array} resdto.ItemDetailResponse
// @Router /items [get]
func (h *ItemHandler) ListOwn(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.itemQueries.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromItemDetailViews(views))
}

// @Summary Search items
// @Description Search available items by name or description substring
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Param text query string true "Search text"
// @Success 200 {array} resdto.ItemResponse
// @Router /items/search [get]
func (h *ItemHandler) Search(c *gin.Context) {
	views, err := h.itemQueries.Search(c.Request.Context(), c.Query("text"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromItemViews(views))
}

// @Summary Add comment
// @Description Comment on an item after a finished approved booking
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header string true "Acting user ID"
// @Param itemId path string true "Item ID"
// @Param request body reqdto.CreateCommentRequest true "Comment"
// @Success 200 {object} resdto.CommentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /items/{itemId}/comment [post]
func (h *ItemHandler) AddComment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid item ID format",
		})
		return
	}

	var req reqdto.CreateCommentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.itemCommands.AddComment(c.Request.Context(), req, userID, itemID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		case errors.Is(err, errs.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item not found",
			})
		case errors.Is(err, errs.ErrCommentNotAllowed):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Commenting requires a finished approved booking",
			})
		case errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Comment text cannot be empty",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCommentView(view))
}
