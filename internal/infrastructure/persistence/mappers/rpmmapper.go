package mappers

import (
	"fmt"

	"github.com/Kapooral/services-app-server-sub002/internal/domain/planning"
	"github.com/Kapooral/services-app-server-sub002/internal/domain/schedule"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/persistence/models"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/mapper"
)

// RpmMapper handles the conversion between plan entities and persistence models.
type RpmMapper interface {
	ToEntity(model *models.RecurringPlanningModelModel) (*planning.RecurringPlanningModel, error)
	ToModel(entity *planning.RecurringPlanningModel) *models.RecurringPlanningModelModel
	ToEntities(models []*models.RecurringPlanningModelModel) ([]*planning.RecurringPlanningModel, error)
}

// RpmMapperImpl is the concrete implementation of RpmMapper.
type RpmMapperImpl struct{}

// NewRpmMapper creates a new plan mapper.
func NewRpmMapper() RpmMapper {
	return &RpmMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity. Unreadable stored
// times become empty spans so resolution skips them instead of failing.
func (m *RpmMapperImpl) ToEntity(model *models.RecurringPlanningModelModel) (*planning.RecurringPlanningModel, error) {
	if model == nil {
		return nil, nil
	}

	refDate, err := biztime.ParseDate(model.ReferenceDate)
	if err != nil {
		return nil, fmt.Errorf("rpm %d: %w", model.ID, err)
	}
	start, end := lenientSpan(model.GlobalStartTime, model.GlobalEndTime)

	breaks := make([]planning.Break, 0, len(model.Breaks))
	for _, b := range model.Breaks {
		bs, be := lenientSpan(b.StartTime, b.EndTime)
		breaks = append(breaks, planning.Break{
			ID:          b.ID,
			StartTime:   bs,
			EndTime:     be,
			BreakType:   b.BreakType,
			Description: b.Description,
		})
	}

	entity, err := planning.ReconstructRecurringPlanningModel(
		model.ID,
		model.EstablishmentID,
		model.Name,
		model.Description,
		refDate,
		start,
		end,
		model.RecurrenceRule,
		model.DefaultBlockType,
		breaks,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct recurring planning model entity: %w", err)
	}
	return entity, nil
}

// ToModel converts a domain entity to a persistence model.
func (m *RpmMapperImpl) ToModel(entity *planning.RecurringPlanningModel) *models.RecurringPlanningModelModel {
	if entity == nil {
		return nil
	}

	breaks := mapper.Map(entity.Breaks(), func(b planning.Break) models.BreakRecord {
		return models.BreakRecord{
			ID:          b.ID,
			StartTime:   b.StartTime.String(),
			EndTime:     b.EndTime.String(),
			BreakType:   b.BreakType,
			Description: b.Description,
		}
	})

	return &models.RecurringPlanningModelModel{
		ID:               entity.ID(),
		EstablishmentID:  entity.EstablishmentID(),
		Name:             entity.Name(),
		Description:      entity.Description(),
		ReferenceDate:    biztime.FormatDate(entity.ReferenceDate()),
		GlobalStartTime:  entity.GlobalStartTime().String(),
		GlobalEndTime:    entity.GlobalEndTime().String(),
		RecurrenceRule:   entity.RecurrenceRule(),
		DefaultBlockType: entity.DefaultBlockType(),
		Breaks:           breaks,
		CreatedAt:        entity.CreatedAt(),
		UpdatedAt:        entity.UpdatedAt(),
	}
}

// ToEntities converts multiple persistence models to domain entities.
func (m *RpmMapperImpl) ToEntities(modelList []*models.RecurringPlanningModelModel) ([]*planning.RecurringPlanningModel, error) {
	return mapper.TryMap(modelList, m.ToEntity)
}

// lenientSpan parses a stored start/end pair. Either side failing yields an
// empty span.
func lenientSpan(start, end string) (schedule.TimeOfDay, schedule.TimeOfDay) {
	s, errS := schedule.ParseTimeOfDay(start)
	e, errE := schedule.ParseTimeOfDay(end)
	if errS != nil || errE != nil {
		return schedule.Midnight, schedule.Midnight
	}
	return s, e
}
