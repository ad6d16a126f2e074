package mappers

import (
	"fmt"

	"github.com/Kapooral/services-app-server-sub002/internal/domain/adjustment"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/persistence/models"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/mapper"
)

// AdjustmentSlotMapper handles the conversion between slot entities and persistence models.
type AdjustmentSlotMapper interface {
	ToEntity(model *models.DailyAdjustmentSlotModel) (*adjustment.Slot, error)
	ToModel(entity *adjustment.Slot) *models.DailyAdjustmentSlotModel
	ToEntities(models []*models.DailyAdjustmentSlotModel) ([]*adjustment.Slot, error)
}

// AdjustmentSlotMapperImpl is the concrete implementation of AdjustmentSlotMapper.
type AdjustmentSlotMapperImpl struct{}

// NewAdjustmentSlotMapper creates a new slot mapper.
func NewAdjustmentSlotMapper() AdjustmentSlotMapper {
	return &AdjustmentSlotMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity.
func (m *AdjustmentSlotMapperImpl) ToEntity(model *models.DailyAdjustmentSlotModel) (*adjustment.Slot, error) {
	if model == nil {
		return nil, nil
	}

	day, err := biztime.ParseDate(model.SlotDate)
	if err != nil {
		return nil, fmt.Errorf("adjustment slot %d: %w", model.ID, err)
	}
	start, end := lenientSpan(model.StartTime, model.EndTime)

	tasks := make([]adjustment.Task, 0, len(model.Tasks))
	for _, t := range model.Tasks {
		ts, te := lenientSpan(t.TaskStartTime, t.TaskEndTime)
		tasks = append(tasks, adjustment.Task{
			ID:        t.ID,
			Name:      t.TaskName,
			StartTime: ts,
			EndTime:   te,
		})
	}

	entity, err := adjustment.ReconstructSlot(model.ID, model.EstablishmentID, model.MembershipID, adjustment.SlotParams{
		SlotDate:         day,
		StartTime:        start,
		EndTime:          end,
		SlotType:         model.SlotType,
		Description:      model.Description,
		Tasks:            tasks,
		SourceRpmID:      model.SourceRpmID,
		IsManualOverride: model.IsManualOverride,
	}, model.CreatedAt, model.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct adjustment slot entity: %w", err)
	}
	return entity, nil
}

// ToModel converts a domain entity to a persistence model.
func (m *AdjustmentSlotMapperImpl) ToModel(entity *adjustment.Slot) *models.DailyAdjustmentSlotModel {
	if entity == nil {
		return nil
	}

	tasks := mapper.Map(entity.Tasks(), func(t adjustment.Task) models.TaskRecord {
		return models.TaskRecord{
			ID:            t.ID,
			TaskName:      t.Name,
			TaskStartTime: t.StartTime.String(),
			TaskEndTime:   t.EndTime.String(),
		}
	})

	return &models.DailyAdjustmentSlotModel{
		ID:               entity.ID(),
		EstablishmentID:  entity.EstablishmentID(),
		MembershipID:     entity.MembershipID(),
		SlotDate:         biztime.FormatDate(entity.SlotDate()),
		StartTime:        entity.StartTime().String(),
		EndTime:          entity.EndTime().String(),
		SlotType:         entity.SlotType(),
		Description:      entity.Description(),
		Tasks:            tasks,
		SourceRpmID:      entity.SourceRpmID(),
		IsManualOverride: entity.IsManualOverride(),
		CreatedAt:        entity.CreatedAt(),
		UpdatedAt:        entity.UpdatedAt(),
	}
}

// ToEntities converts multiple persistence models to domain entities.
func (m *AdjustmentSlotMapperImpl) ToEntities(modelList []*models.DailyAdjustmentSlotModel) ([]*adjustment.Slot, error) {
	return mapper.TryMap(modelList, m.ToEntity)
}
