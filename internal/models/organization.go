package models

import (
	"time"

	"gorm.io/gorm"
)

type Organization struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	Name       string         `gorm:"type:varchar(255);not null" json:"name"`
	InviteCode string         `gorm:"type:varchar(8);uniqueIndex;not null" json:"inviteCode"`
	AdminID    uint64         `gorm:"not null" json:"adminId"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Admin   User                 `gorm:"foreignKey:AdminID" json:"-"`
	Members []OrganizationMember `gorm:"foreignKey:OrganizationID" json:"-"`
	Tasks   []Task               `gorm:"foreignKey:OrganizationID" json:"-"`
}
