package personnel

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=personnel_repo.go -destination=mock/personnel_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Personnel) error
	FindAll(ctx context.Context) ([]Personnel, error)
	FindOptions(ctx context.Context) ([]Personnel, error)
	FindByID(ctx context.Context, id string) (*Personnel, error)
	Update(ctx context.Context, p *Personnel) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds the repository to an open transaction so its writes commit
// and roll back together with the outbox insert.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, p *Personnel) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Personnel, error) {
	var people []Personnel
	err := r.db.WithContext(ctx).
		Order("full_name ASC").
		Find(&people).Error
	return people, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Personnel, error) {
	var people []Personnel
	err := r.db.WithContext(ctx).
		Select("id", "full_name", "gender").
		Order("full_name ASC").
		Find(&people).Error
	return people, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Personnel, error) {
	var p Personnel
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) Update(ctx context.Context, p *Personnel) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Personnel{}, "id = ?", id).Error
}
