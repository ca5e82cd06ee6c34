package courierrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// GormCourierRepository implements ports.CourierRepository using GORM.
type GormCourierRepository struct {
	db *gorm.DB
}

// NewGormCourierRepository creates a courier repository on the given
// connection, which may be a transaction handle.
func NewGormCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{db: db}
}

// Add saves a new courier to the database.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return errs.NewValueIsInvalidErrorWithCause("courier id", err)
		}
		return err
	}

	return nil
}

// Update saves an existing courier to the database.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&CourierDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("courier", aggregate.ID().String())
	}

	return nil
}

// UpdateIfStatus writes the courier only if the stored row still holds the
// expected status. A zero-row update means a concurrent writer got there
// first and is reported as a precondition failure.
func (r *GormCourierRepository) UpdateIfStatus(ctx context.Context, aggregate *courier.Courier, expected courier.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := expected.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&CourierDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Select("*").Omit("id").
		Updates(dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewPreconditionFailedError("courier status")
	}

	return nil
}

// Get retrieves a courier by ID within the business scope.
func (r *GormCourierRepository) Get(ctx context.Context, businessID, id kernel.UUID) (*courier.Courier, error) {
	if err := businessID.Validate(); err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CourierDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND business_id = ?", id.Bytes(), businessID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllAvailable retrieves the business's couriers currently open for
// assignment.
func (r *GormCourierRepository) GetAllAvailable(ctx context.Context, businessID kernel.UUID) ([]*courier.Courier, error) {
	if err := businessID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CourierDTO
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND status = ? AND enabled", businessID.Bytes(), courier.StatusAvailable.String()).
		Order("name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllEnabled retrieves all enabled couriers for the business regardless of
// shift status.
func (r *GormCourierRepository) GetAllEnabled(ctx context.Context, businessID kernel.UUID) ([]*courier.Courier, error) {
	if err := businessID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CourierDTO
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND enabled", businessID.Bytes()).
		Order("name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllStale retrieves on-shift couriers whose last position report is older
// than the cutoff, across all businesses. The stale-courier sweep uses this
// to force them offline.
func (r *GormCourierRepository) GetAllStale(ctx context.Context, cutoff time.Time) ([]*courier.Courier, error) {
	var dtos []CourierDTO
	err := r.db.WithContext(ctx).
		Where("status IN ? AND position_at IS NOT NULL AND position_at < ?",
			[]string{courier.StatusAvailable.String(), courier.StatusOnBreak.String()}, cutoff).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []CourierDTO) ([]*courier.Courier, error) {
	couriers := make([]*courier.Courier, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, aggregate)
	}
	return couriers, nil
}
