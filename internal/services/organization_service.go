package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskpal/taskpal-api/internal/constants"
	"github.com/taskpal/taskpal-api/internal/models"
	"github.com/taskpal/taskpal-api/internal/repository"
	"github.com/taskpal/taskpal-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrInvalidOrganizationName    = errors.New("organization name is required")
	ErrInviteCodeRequired         = errors.New("invite code is required")
	ErrInviteCodeGenerationFailed = errors.New("failed to generate invite code")
	ErrInvalidInviteCode          = errors.New("invalid invite code")
	ErrAlreadyOrganizationMember  = errors.New("user is already a member of this organization")
	ErrNotOrganizationMember      = errors.New("user does not belong to this organization")
	ErrOrganizationNotFound       = errors.New("organization not found")
)

// OrganizationService provides business logic for organization operations.
type OrganizationService struct {
	orgRepo  repository.OrganizationRepository
	userRepo repository.UserRepository
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo repository.OrganizationRepository, userRepo repository.UserRepository) *OrganizationService {
	return &OrganizationService{
		orgRepo:  orgRepo,
		userRepo: userRepo,
	}
}

// Create creates an organization with the acting user as admin and first
// member, and makes it the user's active organization.
func (s *OrganizationService) Create(adminID uint64, name string) (*models.Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidOrganizationName
	}

	inviteCode, err := s.uniqueInviteCode()
	if err != nil {
		return nil, err
	}

	org := &models.Organization{
		Name:       name,
		InviteCode: inviteCode,
		AdminID:    adminID,
	}

	if err := s.orgRepo.CreateWithAdmin(org); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	return org, nil
}

// Join adds the user to the organization matching the invite code and makes
// it their active organization.
func (s *OrganizationService) Join(userID uint64, inviteCode string) (*models.Organization, []models.OrganizationMember, error) {
	code := utils.NormalizeInviteCode(inviteCode)
	if code == "" {
		return nil, nil, ErrInviteCodeRequired
	}

	org, err := s.orgRepo.FindByInviteCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidInviteCode
		}
		return nil, nil, fmt.Errorf("failed to find organization by invite code: %w", err)
	}

	if _, err := s.orgRepo.FindMember(org.ID, userID); err == nil {
		return nil, nil, ErrAlreadyOrganizationMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	if err := s.orgRepo.AddMemberAndActivate(org.ID, userID); err != nil {
		return nil, nil, fmt.Errorf("failed to add member to organization: %w", err)
	}

	members, err := s.orgRepo.ListMembers(org.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list organization members: %w", err)
	}

	return org, members, nil
}

// Switch changes the user's active organization. The user must already be a
// member of the target organization.
func (s *OrganizationService) Switch(userID, orgID uint64) (*models.User, error) {
	if _, err := s.orgRepo.FindMember(orgID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotOrganizationMember
		}
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.ActiveOrganizationID = &orgID
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to switch organization: %w", err)
	}

	return user, nil
}

// OrganizationSummary is an organization enriched with membership data for
// the "my organizations" listing.
type OrganizationSummary struct {
	Organization models.Organization
	AdminName    string
	MemberCount  int64
}

// ListMine returns all organizations the user belongs to, each with admin
// name and member count. A user with no organizations gets an empty list.
func (s *OrganizationService) ListMine(userID uint64) ([]OrganizationSummary, error) {
	memberships, err := s.orgRepo.ListMembershipsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}

	summaries := make([]OrganizationSummary, 0, len(memberships))
	for _, m := range memberships {
		count, err := s.orgRepo.CountMembers(m.OrganizationID)
		if err != nil {
			return nil, fmt.Errorf("failed to count members: %w", err)
		}
		summaries = append(summaries, OrganizationSummary{
			Organization: m.Organization,
			AdminName:    m.Organization.Admin.Name,
			MemberCount:  count,
		})
	}

	return summaries, nil
}

// ListUsers returns users sharing the acting user's active organization. A
// user without an active organization always gets an empty page: visibility
// is gated on tenancy, never widened to the global user list.
func (s *OrganizationService) ListUsers(userID uint64, params utils.PaginationParams) ([]models.User, int64, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrUserNotFound
		}
		return nil, 0, fmt.Errorf("failed to find user: %w", err)
	}

	if user.ActiveOrganizationID == nil {
		return []models.User{}, 0, nil
	}

	users, total, err := s.userRepo.ListByOrganization(*user.ActiveOrganizationID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

// Members returns all members of an organization with users preloaded.
func (s *OrganizationService) Members(orgID uint64) ([]models.OrganizationMember, error) {
	members, err := s.orgRepo.ListMembers(orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organization members: %w", err)
	}
	return members, nil
}

// GetUserView loads a user together with their memberships, the shape most
// responses echo back after an organization mutation.
func (s *OrganizationService) GetUserView(userID uint64) (*models.User, []models.OrganizationMember, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	memberships, err := s.orgRepo.ListMembershipsByUserID(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list memberships: %w", err)
	}

	return user, memberships, nil
}

// uniqueInviteCode generates an invite code, retrying on the rare collision
// with an existing organization.
func (s *OrganizationService) uniqueInviteCode() (string, error) {
	for attempt := 0; attempt < constants.InviteCodeMaxAttempts; attempt++ {
		code, err := utils.GenerateInviteCode()
		if err != nil {
			return "", ErrInviteCodeGenerationFailed
		}

		_, err = s.orgRepo.FindByInviteCode(code)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check invite code: %w", err)
		}
		// Collision: loop and regenerate
	}

	return "", ErrInviteCodeGenerationFailed
}
