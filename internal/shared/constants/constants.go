package constants

const (
	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType     = "Content-Type"
	HeaderXRequestID      = "X-Request-ID"
	HeaderEstablishmentID = "X-Establishment-ID"

	// Gin context keys
	ContextKeyEstablishmentID = "establishment_id"

	// Database table names
	TableEstablishments          = "establishments"
	TableMemberships             = "memberships"
	TableRecurringPlanningModels = "recurring_planning_models"
	TableRpmMemberAssignments    = "rpm_member_assignments"
	TableDailyAdjustmentSlots    = "daily_adjustment_slots"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
)

// Stable error codes reported per item by bulk operations.
const (
	BulkCodeMembershipNotFound = "MEMBERSHIP_NOT_FOUND"
	BulkCodeAssignmentOverlap  = "ASSIGNMENT_PERIOD_OVERLAP"
	BulkCodeAssignmentNotFound = "ASSIGNMENT_NOT_FOUND"
	BulkCodeSlotNotFound       = "ADJUSTMENT_SLOT_NOT_FOUND"
	BulkCodeSlotOverlap        = "ADJUSTMENT_SLOT_OVERLAP"
	BulkCodeValidation         = "VALIDATION_ERROR"
	BulkCodeInternal           = "INTERNAL_ERROR"
)
