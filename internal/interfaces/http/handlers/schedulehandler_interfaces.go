package handlers

import (
	"context"

	scheduledto "github.com/Kapooral/services-app-server-sub002/internal/application/schedule/dto"
)

type getDailyScheduleUseCase interface {
	Execute(ctx context.Context, req scheduledto.GetDailyScheduleRequest) (*scheduledto.DailyScheduleResponse, error)
}
