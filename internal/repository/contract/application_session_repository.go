package contract

import (
	"context"

	"job-proposal-be/internal/entity"
	"job-proposal-be/internal/repository/specification"
)

type ApplicationSessionRepository interface {
	Create(ctx context.Context, session *entity.ApplicationSession) error
	Update(ctx context.Context, session *entity.ApplicationSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ApplicationSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ApplicationSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
