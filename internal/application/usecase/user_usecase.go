package usecase

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// UserUseCase administración de usuarios: listado, baja lógica y cambio de rol.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// ListActive usuarios activos.
func (uc *UserUseCase) ListActive(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, entityToUserResponse(u))
	}
	return out, nil
}

// Delete baja lógica; nunca se borra la fila.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	ok, err := uc.repo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("usuario no encontrado o no está activo")
	}
	return nil
}

// UpdateRole cambia el rol de un usuario activo.
func (uc *UserUseCase) UpdateRole(ctx context.Context, id int64, in dto.UpdateRoleRequest) error {
	if err := dto.Validate(in); err != nil {
		return err
	}
	role := entity.Role(in.RoleID)
	if !role.Valid() {
		return domain.ErrRoleNotFound
	}
	ok, err := uc.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("usuario no encontrado")
	}
	return nil
}

func entityToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		UserPublic: dto.UserPublic{
			ID:     u.ID,
			Name:   u.Name,
			Email:  u.Email,
			RoleID: int(u.Role),
		},
		RegisteredAt: u.RegisteredAt,
	}
}
