package repository

import (
	"time"

	"github.com/taskpal/taskpal-api/internal/models"
	"gorm.io/gorm"
)

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// CreateWithAdmin creates the organization, the admin membership, and sets it
// active for the admin in one transaction.
func (r *GormOrganizationRepository) CreateWithAdmin(org *models.Organization) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}

		member := models.OrganizationMember{
			OrganizationID: org.ID,
			UserID:         org.AdminID,
			JoinedAt:       time.Now(),
		}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", org.AdminID).
			Update("active_organization_id", org.ID).Error
	})
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(id uint64) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindByInviteCode finds an organization by invite code
func (r *GormOrganizationRepository) FindByInviteCode(code string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("invite_code = ?", code).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// AddMemberAndActivate appends the member and activates the organization for
// the user in one transaction.
func (r *GormOrganizationRepository) AddMemberAndActivate(organizationID, userID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		member := models.OrganizationMember{
			OrganizationID: organizationID,
			UserID:         userID,
			JoinedAt:       time.Now(),
		}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("active_organization_id", organizationID).Error
	})
}

// FindMember finds a specific organization member
func (r *GormOrganizationRepository) FindMember(organizationID, userID uint64) (*models.OrganizationMember, error) {
	var member models.OrganizationMember
	if err := r.db.Where("organization_id = ? AND user_id = ?", organizationID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembershipsByUserID lists all organizations a user is a member of
func (r *GormOrganizationRepository) ListMembershipsByUserID(userID uint64) ([]models.OrganizationMember, error) {
	var memberships []models.OrganizationMember
	if err := r.db.Preload("Organization").
		Preload("Organization.Admin").
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// ListMembers lists all members of an organization
func (r *GormOrganizationRepository) ListMembers(organizationID uint64) ([]models.OrganizationMember, error) {
	var members []models.OrganizationMember
	if err := r.db.Preload("User").
		Where("organization_id = ?", organizationID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// CountMembers counts the members of an organization
func (r *GormOrganizationRepository) CountMembers(organizationID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.OrganizationMember{}).
		Where("organization_id = ?", organizationID).
		Count(&count).Error
	return count, err
}
