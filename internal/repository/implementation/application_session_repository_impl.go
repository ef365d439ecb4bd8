package implementation

import (
	"context"
	"errors"

	"job-proposal-be/internal/entity"
	"job-proposal-be/internal/mapper"
	"job-proposal-be/internal/model"
	"job-proposal-be/internal/repository/contract"
	"job-proposal-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ApplicationSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewApplicationSessionRepository(db *gorm.DB) contract.ApplicationSessionRepository {
	return &ApplicationSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *ApplicationSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ApplicationSessionRepositoryImpl) Create(ctx context.Context, session *entity.ApplicationSession) error {
	m, err := r.mapper.ToModel(session)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	e, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*session = *e
	return nil
}

func (r *ApplicationSessionRepositoryImpl) Update(ctx context.Context, session *entity.ApplicationSession) error {
	m, err := r.mapper.ToModel(session)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	e, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*session = *e
	return nil
}

func (r *ApplicationSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ApplicationSession, error) {
	var m model.ApplicationSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *ApplicationSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ApplicationSession, error) {
	var models []*model.ApplicationSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ApplicationSession, len(models))
	for i, m := range models {
		e, err := r.mapper.ToEntity(m)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}

func (r *ApplicationSessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ApplicationSession{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
