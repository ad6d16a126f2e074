package mappers

import (
	"fmt"
	"time"

	"github.com/Kapooral/services-app-server-sub002/internal/domain/assignment"
	"github.com/Kapooral/services-app-server-sub002/internal/infrastructure/persistence/models"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/mapper"
)

// AssignmentMapper handles the conversion between assignment entities and persistence models.
type AssignmentMapper interface {
	ToEntity(model *models.RpmMemberAssignmentModel) (*assignment.Assignment, error)
	ToModel(entity *assignment.Assignment) *models.RpmMemberAssignmentModel
	ToEntities(models []*models.RpmMemberAssignmentModel) ([]*assignment.Assignment, error)
}

// AssignmentMapperImpl is the concrete implementation of AssignmentMapper.
type AssignmentMapperImpl struct{}

// NewAssignmentMapper creates a new assignment mapper.
func NewAssignmentMapper() AssignmentMapper {
	return &AssignmentMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity.
func (m *AssignmentMapperImpl) ToEntity(model *models.RpmMemberAssignmentModel) (*assignment.Assignment, error) {
	if model == nil {
		return nil, nil
	}

	start, err := biztime.ParseDate(model.StartDate)
	if err != nil {
		return nil, fmt.Errorf("assignment %d: %w", model.ID, err)
	}
	var end *time.Time
	if model.EndDate != nil {
		e, err := biztime.ParseDate(*model.EndDate)
		if err != nil {
			return nil, fmt.Errorf("assignment %d: %w", model.ID, err)
		}
		end = &e
	}

	entity, err := assignment.ReconstructAssignment(
		model.ID,
		model.MembershipID,
		model.RpmID,
		start,
		end,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct assignment entity: %w", err)
	}
	return entity, nil
}

// ToModel converts a domain entity to a persistence model.
func (m *AssignmentMapperImpl) ToModel(entity *assignment.Assignment) *models.RpmMemberAssignmentModel {
	if entity == nil {
		return nil
	}

	var end *string
	if d := entity.EndDate(); d != nil {
		s := biztime.FormatDate(*d)
		end = &s
	}

	return &models.RpmMemberAssignmentModel{
		ID:           entity.ID(),
		MembershipID: entity.MembershipID(),
		RpmID:        entity.RpmID(),
		StartDate:    biztime.FormatDate(entity.StartDate()),
		EndDate:      end,
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}

// ToEntities converts multiple persistence models to domain entities.
func (m *AssignmentMapperImpl) ToEntities(modelList []*models.RpmMemberAssignmentModel) ([]*assignment.Assignment, error) {
	return mapper.TryMap(modelList, m.ToEntity)
}
