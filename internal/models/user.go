package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID                   uint64         `gorm:"primarykey" json:"id"`
	Name                 string         `gorm:"type:varchar(255);not null" json:"name"`
	Email                string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash         string         `gorm:"type:varchar(255);not null" json:"-"`
	ActiveOrganizationID *uint64        `json:"activeOrganization"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	ActiveOrganization *Organization        `gorm:"foreignKey:ActiveOrganizationID" json:"-"`
	Memberships        []OrganizationMember `gorm:"foreignKey:UserID" json:"-"`
	CreatedTasks       []Task               `gorm:"foreignKey:CreatedByID" json:"-"`
	AssignedTasks      []Task               `gorm:"foreignKey:AssignedToID" json:"-"`
}
