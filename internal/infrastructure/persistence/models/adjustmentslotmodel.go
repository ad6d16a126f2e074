package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/constants"
)

// TaskRecord is the JSON shape of one task inside the tasks column.
type TaskRecord struct {
	ID            string `json:"id"`
	TaskName      string `json:"task_name"`
	TaskStartTime string `json:"task_start_time"` // HH:MM:SS
	TaskEndTime   string `json:"task_end_time"`   // HH:MM:SS
}

// DailyAdjustmentSlotModel represents the database persistence model for daily adjustment slots.
type DailyAdjustmentSlotModel struct {
	ID               uint                            `gorm:"primarykey"`
	EstablishmentID  uint                            `gorm:"not null;index:idx_das_establishment"`
	MembershipID     uint                            `gorm:"not null;index:idx_das_member_date,priority:1"`
	SlotDate         string                          `gorm:"not null;size:10;index:idx_das_member_date,priority:2"` // YYYY-MM-DD
	StartTime        string                          `gorm:"not null;size:8"`                                       // HH:MM:SS
	EndTime          string                          `gorm:"not null;size:8"`                                       // HH:MM:SS
	SlotType         string                          `gorm:"not null;size:50"`
	Description      string                          `gorm:"size:500"`
	Tasks            datatypes.JSONSlice[TaskRecord] `gorm:"column:tasks"`
	SourceRpmID      *uint                           `gorm:"index:idx_das_source_rpm"`
	IsManualOverride bool                            `gorm:"not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the table name for GORM.
func (DailyAdjustmentSlotModel) TableName() string {
	return constants.TableDailyAdjustmentSlots
}
