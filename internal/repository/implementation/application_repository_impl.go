package implementation

import (
	"context"
	"errors"

	"errortrack-be/internal/entity"
	"errortrack-be/internal/mapper"
	"errortrack-be/internal/model"
	"errortrack-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ApplicationMapper
}

func NewApplicationRepository(db *gorm.DB) contract.ApplicationRepository {
	return &ApplicationRepositoryImpl{
		db:     db,
		mapper: mapper.NewApplicationMapper(),
	}
}

func (r *ApplicationRepositoryImpl) Create(ctx context.Context, app *entity.Application) error {
	m := r.mapper.ToModel(app)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*app = *r.mapper.ToEntity(m)
	return nil
}

func (r *ApplicationRepositoryImpl) Update(ctx context.Context, app *entity.Application) error {
	m := r.mapper.ToModel(app)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*app = *r.mapper.ToEntity(m)
	return nil
}

func (r *ApplicationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Application{}, id).Error
}

func (r *ApplicationRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Application, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *ApplicationRepositoryImpl) FindByApiKey(ctx context.Context, apiKey string) (*entity.Application, error) {
	return r.findOne(ctx, "api_key = ?", apiKey)
}

func (r *ApplicationRepositoryImpl) FindByName(ctx context.Context, name string) (*entity.Application, error) {
	return r.findOne(ctx, "name = ?", name)
}

func (r *ApplicationRepositoryImpl) FindAll(ctx context.Context) ([]*entity.Application, error) {
	var models []*model.Application
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ApplicationRepositoryImpl) findOne(ctx context.Context, query string, arg interface{}) (*entity.Application, error) {
	var m model.Application
	if err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
