package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskpal/taskpal-api/internal/constants"
	"github.com/taskpal/taskpal-api/internal/dto"
	apierrors "github.com/taskpal/taskpal-api/internal/errors"
	"github.com/taskpal/taskpal-api/internal/middleware"
	"github.com/taskpal/taskpal-api/internal/services"
	"github.com/taskpal/taskpal-api/internal/utils"
)

// UserHandler coordinates user listing handlers.
type UserHandler struct {
	orgService *services.OrganizationService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(orgService *services.OrganizationService) *UserHandler {
	return &UserHandler{
		orgService: orgService,
	}
}

// List returns users sharing the acting user's active organization, sorted
// by name. A user without an active organization gets an empty page.
func (h *UserHandler) List(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c, constants.UserPageSize)

	users, total, err := h.orgService.ListUsers(userID, params)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users, total, params.Page, utils.PageCount(total, params.Limit)))
}
