// Package dto provides data transfer objects for resolved daily schedules.
package dto

import (
	"github.com/Kapooral/services-app-server-sub002/internal/domain/schedule"
)

// GetDailyScheduleRequest asks for one member's resolved day.
// A zero EstablishmentID skips the tenant check, as the CLI does.
type GetDailyScheduleRequest struct {
	MembershipID    uint   `json:"membership_id" validate:"required"`
	Date            string `json:"date" validate:"required,date"`
	EstablishmentID uint   `json:"-"`
}

// DailyScheduleResponse is a member's day as ordered, non-overlapping segments.
type DailyScheduleResponse struct {
	MembershipID    uint                      `json:"membership_id" yaml:"membership_id"`
	EstablishmentID uint                      `json:"establishment_id" yaml:"establishment_id"`
	Date            string                    `json:"date" yaml:"date"`
	Timezone        string                    `json:"timezone" yaml:"timezone"`
	Slots           []schedule.CalculatedSlot `json:"slots" yaml:"slots"`
}
