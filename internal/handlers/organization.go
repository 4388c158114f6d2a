package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskpal/taskpal-api/internal/dto"
	apierrors "github.com/taskpal/taskpal-api/internal/errors"
	"github.com/taskpal/taskpal-api/internal/middleware"
	"github.com/taskpal/taskpal-api/internal/services"
)

// OrganizationHandler coordinates organization HTTP handlers.
type OrganizationHandler struct {
	orgService *services.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(orgService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
	}
}

// Create creates an organization with the acting user as admin. The response
// is the only place the creator needs the full detail including invite code.
func (h *OrganizationHandler) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateOrgRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Organization name is required")
		return
	}

	org, err := h.orgService.Create(userID, req.Name)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	members, err := h.orgService.Members(org.ID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	user, memberships, err := h.orgService.GetUserView(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"org":  dto.ToOrganizationDTO(*org, members, true),
		"user": dto.ToUserDTO(*user, memberships),
	})
}

// Join adds the acting user to the organization matching the invite code.
func (h *OrganizationHandler) Join(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type JoinRequest struct {
		InviteCode string `json:"inviteCode" binding:"required"`
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invite code is required")
		return
	}

	org, members, err := h.orgService.Join(userID, req.InviteCode)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	user, memberships, err := h.orgService.GetUserView(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"org":  dto.ToOrganizationDTO(*org, members, true),
		"user": dto.ToUserDTO(*user, memberships),
	})
}

// Switch changes the acting user's active organization.
func (h *OrganizationHandler) Switch(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type SwitchRequest struct {
		OrgID uint64 `json:"orgId" binding:"required"`
	}

	var req SwitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Organization ID is required")
		return
	}

	user, err := h.orgService.Switch(userID, req.OrgID)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	_, memberships, err := h.orgService.GetUserView(user.ID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": dto.ToUserDTO(*user, memberships),
	})
}

// ListMine returns all organizations the acting user belongs to.
func (h *OrganizationHandler) ListMine(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	summaries, err := h.orgService.ListMine(userID)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	user, _, err := h.orgService.GetUserView(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	orgs := make([]dto.OrganizationSummaryDTO, len(summaries))
	for i, summary := range summaries {
		orgs[i] = dto.ToOrganizationSummaryDTO(summary)
	}

	c.JSON(http.StatusOK, gin.H{
		"orgs":               orgs,
		"activeOrganization": user.ActiveOrganizationID,
	})
}

func respondOrganizationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidOrganizationName),
		errors.Is(err, services.ErrInviteCodeRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidInviteCode):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyOrganizationMember):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotOrganizationMember):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrOrganizationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
