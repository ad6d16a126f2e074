package models

import (
	"time"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/constants"
)

// EstablishmentModel is the read side of the establishment directory.
type EstablishmentModel struct {
	ID        uint   `gorm:"primarykey"`
	Name      string `gorm:"not null;size:150"`
	Timezone  string `gorm:"size:64"` // IANA zone, e.g. Europe/Paris
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM.
func (EstablishmentModel) TableName() string {
	return constants.TableEstablishments
}

// MembershipModel links a staff member to an establishment.
type MembershipModel struct {
	ID              uint `gorm:"primarykey"`
	EstablishmentID uint `gorm:"not null;index:idx_membership_establishment"`
	UserID          uint `gorm:"index:idx_membership_user"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the table name for GORM.
func (MembershipModel) TableName() string {
	return constants.TableMemberships
}
