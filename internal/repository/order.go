package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"evcharge-payment-relay/internal/model"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrAlreadyPaid   = errors.New("order already paid")
	// ErrStorageWrite wraps driver write failures. Losing a created order or
	// a paid transition silently is a correctness violation, so callers must
	// see these.
	ErrStorageWrite = errors.New("storage write failed")
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByOrderCode(ctx context.Context, orderCode int64) (*model.Order, error)
	ExistsByOrderCode(ctx context.Context, orderCode int64) (bool, error)
	MarkPaid(ctx context.Context, orderCode int64, paidAt time.Time) (*model.Order, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, order *model.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	return nil
}

func (r *orderRepoImpl) FindByOrderCode(ctx context.Context, orderCode int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("order_code = ?", orderCode).
		First(&order).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) ExistsByOrderCode(ctx context.Context, orderCode int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_code = ?", orderCode).
		Count(&count).Error

	return count > 0, err
}

// MarkPaid flips a PENDING order to PAID in a single status-guarded update.
// The guard is the idempotency barrier: a duplicate delivery loses the
// RowsAffected race and gets ErrAlreadyPaid instead of re-setting paid_at.
func (r *orderRepoImpl) MarkPaid(ctx context.Context, orderCode int64, paidAt time.Time) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Order{}).
			Where("order_code = ? AND status = ?", orderCode, model.StatusPending).
			Updates(map[string]interface{}{
				"status":     model.StatusPaid,
				"paid_at":    paidAt,
				"updated_at": time.Now(),
			})

		if result.Error != nil {
			return fmt.Errorf("%w: %v", ErrStorageWrite, result.Error)
		}

		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.Order{}).
				Where("order_code = ?", orderCode).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrOrderNotFound
			}
			return ErrAlreadyPaid
		}

		return tx.Where("order_code = ?", orderCode).First(&order).Error
	})

	if err != nil {
		return nil, err
	}

	return &order, nil
}
