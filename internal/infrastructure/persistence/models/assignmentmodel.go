package models

import (
	"time"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/constants"
)

// RpmMemberAssignmentModel represents the database persistence model for plan assignments.
// Dates are YYYY-MM-DD so string order equals calendar order.
type RpmMemberAssignmentModel struct {
	ID           uint    `gorm:"primarykey"`
	MembershipID uint    `gorm:"not null;index:idx_assignment_member_period,priority:1"`
	RpmID        uint    `gorm:"not null;index:idx_assignment_rpm"`
	StartDate    string  `gorm:"not null;size:10;index:idx_assignment_member_period,priority:2"`
	EndDate      *string `gorm:"size:10"` // nil = open-ended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM.
func (RpmMemberAssignmentModel) TableName() string {
	return constants.TableRpmMemberAssignments
}
