package zonerepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/zone"
	"dispatch/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// GormZoneRepository implements ports.ZoneRepository using GORM.
type GormZoneRepository struct {
	db *gorm.DB
}

// NewGormZoneRepository creates a zone repository on the given connection,
// which may be a transaction handle.
func NewGormZoneRepository(db *gorm.DB) *GormZoneRepository {
	return &GormZoneRepository{db: db}
}

// Add saves a new zone to the database.
func (r *GormZoneRepository) Add(ctx context.Context, aggregate *zone.Zone) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return errs.NewValueIsInvalidErrorWithCause("zone id", err)
		}
		return err
	}

	return nil
}

// Update saves an existing zone to the database.
func (r *GormZoneRepository) Update(ctx context.Context, aggregate *zone.Zone) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ZoneDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("zone", aggregate.ID().String())
	}

	return nil
}

// Get retrieves a zone by ID within the business scope.
func (r *GormZoneRepository) Get(ctx context.Context, businessID, id kernel.UUID) (*zone.Zone, error) {
	if err := businessID.Validate(); err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ZoneDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND business_id = ?", id.Bytes(), businessID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("zone", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllEnabled retrieves the business's enabled zones ordered by priority,
// highest first. Zone resolution walks this list and takes the first match.
func (r *GormZoneRepository) GetAllEnabled(ctx context.Context, businessID kernel.UUID) ([]*zone.Zone, error) {
	if err := businessID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ZoneDTO
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND enabled", businessID.Bytes()).
		Order("priority DESC, name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	zones := make([]*zone.Zone, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		zones = append(zones, aggregate)
	}

	return zones, nil
}
