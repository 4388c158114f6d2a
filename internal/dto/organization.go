package dto

import (
	"github.com/taskpal/taskpal-api/internal/models"
	"github.com/taskpal/taskpal-api/internal/services"
)

// UserDTO represents the acting user's own view in API responses
type UserDTO struct {
	ID                 uint64   `json:"id"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Organizations      []uint64 `json:"organizations"`
	ActiveOrganization *uint64  `json:"activeOrganization"`
}

// MemberDTO represents a member in organization responses
type MemberDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// OrganizationDTO represents an organization in API responses. The invite
// code is included only where the endpoint contract calls for it.
type OrganizationDTO struct {
	ID         uint64      `json:"id"`
	Name       string      `json:"name"`
	InviteCode string      `json:"inviteCode,omitempty"`
	Members    []MemberDTO `json:"members,omitempty"`
}

// OrganizationSummaryDTO is an entry in the "my organizations" listing
type OrganizationSummaryDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	InviteCode  string `json:"inviteCode"`
	AdminName   string `json:"admin"`
	MemberCount int64  `json:"memberCount"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users []UserRefDTO `json:"users"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Pages int          `json:"pages"`
}

// ToUserDTO converts a user and their memberships to the acting user's view
func ToUserDTO(user models.User, memberships []models.OrganizationMember) UserDTO {
	orgIDs := make([]uint64, len(memberships))
	for i, m := range memberships {
		orgIDs[i] = m.OrganizationID
	}

	return UserDTO{
		ID:                 user.ID,
		Name:               user.Name,
		Email:              user.Email,
		Organizations:      orgIDs,
		ActiveOrganization: user.ActiveOrganizationID,
	}
}

// ToOrganizationDTO converts an organization and its members to a DTO
func ToOrganizationDTO(org models.Organization, members []models.OrganizationMember, includeInviteCode bool) OrganizationDTO {
	dto := OrganizationDTO{
		ID:   org.ID,
		Name: org.Name,
	}
	if includeInviteCode {
		dto.InviteCode = org.InviteCode
	}

	for _, m := range members {
		dto.Members = append(dto.Members, MemberDTO{
			ID:   m.UserID,
			Name: m.User.Name,
		})
	}

	return dto
}

// ToOrganizationSummaryDTO converts an organization summary to a DTO
func ToOrganizationSummaryDTO(summary services.OrganizationSummary) OrganizationSummaryDTO {
	return OrganizationSummaryDTO{
		ID:          summary.Organization.ID,
		Name:        summary.Organization.Name,
		InviteCode:  summary.Organization.InviteCode,
		AdminName:   summary.AdminName,
		MemberCount: summary.MemberCount,
	}
}

// ToUserListResponse converts users to a paginated response
func ToUserListResponse(users []models.User, total int64, page, pages int) UserListResponse {
	items := make([]UserRefDTO, len(users))
	for i, user := range users {
		items[i] = ToUserRefDTO(user)
	}

	return UserListResponse{
		Users: items,
		Total: total,
		Page:  page,
		Pages: pages,
	}
}
