package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/constants"
)

// BreakRecord is the JSON shape of one break inside the breaks column.
type BreakRecord struct {
	ID          string `json:"id"`
	StartTime   string `json:"start_time"` // HH:MM:SS
	EndTime     string `json:"end_time"`   // HH:MM:SS
	BreakType   string `json:"break_type"`
	Description string `json:"description,omitempty"`
}

// RecurringPlanningModelModel represents the database persistence model for recurring planning models.
type RecurringPlanningModelModel struct {
	ID               uint                             `gorm:"primarykey"`
	EstablishmentID  uint                             `gorm:"not null;uniqueIndex:idx_rpm_establishment_name,priority:1"`
	Name             string                           `gorm:"not null;size:150;uniqueIndex:idx_rpm_establishment_name,priority:2"`
	Description      string                           `gorm:"size:500"`
	ReferenceDate    string                           `gorm:"not null;size:10"` // YYYY-MM-DD
	GlobalStartTime  string                           `gorm:"not null;size:8"`  // HH:MM:SS
	GlobalEndTime    string                           `gorm:"not null;size:8"`  // HH:MM:SS
	RecurrenceRule   string                           `gorm:"not null;size:500"`
	DefaultBlockType string                           `gorm:"not null;size:50;default:WORK"`
	Breaks           datatypes.JSONSlice[BreakRecord] `gorm:"column:breaks"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the table name for GORM.
func (RecurringPlanningModelModel) TableName() string {
	return constants.TableRecurringPlanningModels
}
