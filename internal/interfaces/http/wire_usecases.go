package http

import (
	adjustmentUsecases "github.com/Kapooral/services-app-server-sub002/internal/application/adjustment/usecases"
	assignmentUsecases "github.com/Kapooral/services-app-server-sub002/internal/application/assignment/usecases"
	planningUsecases "github.com/Kapooral/services-app-server-sub002/internal/application/planning/usecases"
	scheduleUsecases "github.com/Kapooral/services-app-server-sub002/internal/application/schedule/usecases"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Recurring planning models
	createRpmUC *planningUsecases.CreateRpmUseCase
	getRpmUC    *planningUsecases.GetRpmUseCase
	listRpmUC   *planningUsecases.ListRpmUseCase
	updateRpmUC *planningUsecases.UpdateRpmUseCase
	deleteRpmUC *planningUsecases.DeleteRpmUseCase

	// Assignments
	createAssignmentUC *assignmentUsecases.CreateAssignmentUseCase
	listAssignmentsUC  *assignmentUsecases.ListAssignmentsUseCase
	updateAssignmentUC *assignmentUsecases.UpdateAssignmentUseCase
	deleteAssignmentUC *assignmentUsecases.DeleteAssignmentUseCase
	bulkAssignUC       *assignmentUsecases.BulkAssignUseCase
	bulkUnassignUC     *assignmentUsecases.BulkUnassignUseCase

	// Daily adjustment slots
	createDasUC     *adjustmentUsecases.CreateDasUseCase
	getDasUC        *adjustmentUsecases.GetDasUseCase
	listDasUC       *adjustmentUsecases.ListDasUseCase
	updateDasUC     *adjustmentUsecases.UpdateDasUseCase
	deleteDasUC     *adjustmentUsecases.DeleteDasUseCase
	bulkUpdateDasUC *adjustmentUsecases.BulkUpdateDasUseCase
	bulkDeleteDasUC *adjustmentUsecases.BulkDeleteDasUseCase

	// Schedule
	getDailyScheduleUC *scheduleUsecases.GetDailyScheduleUseCase
}
