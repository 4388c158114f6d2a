package models

import "time"

type OrganizationMember struct {
	OrganizationID uint64    `gorm:"primarykey" json:"organizationId"`
	UserID         uint64    `gorm:"primarykey" json:"userId"`
	JoinedAt       time.Time `json:"joinedAt"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
	User         User         `gorm:"foreignKey:UserID" json:"-"`
}
