package mappers

import (
	"fmt"

	"tessera/internal/domain/user"
	"tessera/internal/infrastructure/persistence/models"
)

type UserMapper interface {
	ToEntity(model *models.UserModel) (*user.User, error)
	ToModel(entity *user.User) (*models.UserModel, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}
	role, err := user.ParseRole(model.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to map user %d: %w", model.ID, err)
	}
	return user.ReconstructUser(model.ID, model.SID, model.Email, model.Name, model.PasswordHash, role, model.Active, model.CreatedAt)
}

func (m *UserMapperImpl) ToModel(entity *user.User) (*models.UserModel, error) {
	if entity == nil {
		return nil, nil
	}
	return &models.UserModel{
		ID:           entity.ID(),
		SID:          entity.SID(),
		Email:        entity.Email(),
		Name:         entity.Name(),
		PasswordHash: entity.PasswordHash(),
		Role:         entity.Role().String(),
		Active:       entity.IsActive(),
		CreatedAt:    entity.CreatedAt(),
	}, nil
}
