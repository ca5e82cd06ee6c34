package deliveryrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// GormDeliveryRepository implements ports.DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRepository creates a delivery repository on the given
// connection, which may be a transaction handle.
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// Add saves a new delivery to the database. A duplicate delivery ID or
// tracking token surfaces as a value error instead of a raw driver error.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return errs.NewValueIsInvalidErrorWithCause("delivery id", err)
		}
		return err
	}

	return nil
}

// Update saves an existing delivery to the database.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
	}

	return nil
}

// UpdateIfStatus writes the delivery only if the stored row still holds the
// expected status. A zero-row update means a concurrent writer moved the
// delivery first and is reported as a precondition failure.
func (r *GormDeliveryRepository) UpdateIfStatus(ctx context.Context, aggregate *delivery.Delivery, expected delivery.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := expected.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Select("*").Omit("id").
		Updates(dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewPreconditionFailedError("delivery status")
	}

	return nil
}

// Get retrieves a delivery by ID within the business scope.
func (r *GormDeliveryRepository) Get(ctx context.Context, businessID, id kernel.UUID) (*delivery.Delivery, error) {
	if err := businessID.Validate(); err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND business_id = ?", id.Bytes(), businessID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingToken retrieves a delivery by its public tracking token. The
// token is the only handle the tracking surface holds, so no business scope
// applies here.
func (r *GormDeliveryRepository) GetByTrackingToken(ctx context.Context, token string) (*delivery.Delivery, error) {
	if token == "" {
		return nil, errs.NewValueIsRequiredError("trackingToken")
	}

	var dto DeliveryDTO
	err := r.db.WithContext(ctx).First(&dto, "tracking_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", token)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves the business's deliveries in non-terminal statuses,
// oldest first.
func (r *GormDeliveryRepository) GetAllActive(ctx context.Context, businessID kernel.UUID) ([]*delivery.Delivery, error) {
	if err := businessID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND status NOT IN ?", businessID.Bytes(), terminalStatuses()).
		Order("accepted_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllInStatus retrieves the business's deliveries in the given status,
// oldest first. The assignment sweep uses this to pick up accepted deliveries
// still waiting for a courier.
func (r *GormDeliveryRepository) GetAllInStatus(ctx context.Context, businessID kernel.UUID, status delivery.Status) ([]*delivery.Delivery, error) {
	if err := businessID.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND status = ?", businessID.Bytes(), status.String()).
		Order("accepted_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllAwaitingAssignment retrieves accepted, unassigned deliveries across
// all businesses, oldest first. The assignment sweep walks this list.
func (r *GormDeliveryRepository) GetAllAwaitingAssignment(ctx context.Context) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND courier_id IS NULL", delivery.StatusAccepted.String()).
		Order("accepted_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func terminalStatuses() []string {
	return []string{
		delivery.StatusDelivered.String(),
		delivery.StatusCancelled.String(),
		delivery.StatusFailed.String(),
	}
}

func toDomainSlice(dtos []DeliveryDTO) ([]*delivery.Delivery, error) {
	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, aggregate)
	}
	return deliveries, nil
}
