package planning

import "context"

// Repository defines the persistence port for recurring planning models.
// Lookups return (nil, nil) when nothing matches.
type Repository interface {
	Create(ctx context.Context, rpm *RecurringPlanningModel) error
	Update(ctx context.Context, rpm *RecurringPlanningModel) error
	Delete(ctx context.Context, id uint) error

	// GetByID retrieves a plan scoped to its establishment.
	GetByID(ctx context.Context, id, establishmentID uint) (*RecurringPlanningModel, error)

	// GetByIDForUpdate is GetByID taking a row lock inside the current transaction.
	GetByIDForUpdate(ctx context.Context, id, establishmentID uint) (*RecurringPlanningModel, error)

	// ExistsByName checks name uniqueness within an establishment, ignoring excludeID.
	// Inside a transaction the matching rows are locked.
	ExistsByName(ctx context.Context, establishmentID uint, name string, excludeID uint) (bool, error)

	List(ctx context.Context, filter ListFilter) ([]*RecurringPlanningModel, int64, error)
}

// ListFilter defines the filter options for listing plans.
type ListFilter struct {
	EstablishmentID uint
	Name            string
	Page            int
	PageSize        int
}
