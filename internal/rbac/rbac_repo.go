package rbac

import (
	"go-leavedesk/internal/domain"

	"gorm.io/gorm"
)

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetRolePermissions() ([]domain.RolePermission, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetRolePermissions() ([]domain.RolePermission, error) {
	var perms []domain.RolePermission
	err := r.db.
		Table("role_permissions").
		Select("role", "resource", "action").
		Scan(&perms).Error
	return perms, err
}
