package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aliskhannn/lingua/internal/domain/entities"
	"github.com/aliskhannn/lingua/internal/infra/sqlite"
	"github.com/aliskhannn/lingua/internal/storage"
)

// SubscriptionRepository handles database operations for subscriptions.
type SubscriptionRepository struct {
	db sqlite.DBTX
}

// NewSubscriptionRepository creates a new repository instance.
func NewSubscriptionRepository(db sqlite.DBTX) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// GetByUserID returns the user's subscription.
func (r *SubscriptionRepository) GetByUserID(ctx context.Context, userID string) (*entities.UserSubscription, error) {
	var row subscriptionRow
	err := sqlite.Conn(ctx, r.db).GetContext(ctx, &row, `
		SELECT id, user_id, stripe_customer_id, stripe_subscription_id,
		       stripe_price_id, stripe_current_period_end_ms
		FROM user_subscription
		WHERE user_id = ?
	`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return row.entity(), nil
}

// Upsert creates or replaces the user's subscription and sets its id.
func (r *SubscriptionRepository) Upsert(ctx context.Context, s *entities.UserSubscription) error {
	err := sqlite.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO user_subscription (
			user_id, stripe_customer_id, stripe_subscription_id,
			stripe_price_id, stripe_current_period_end_ms
		) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			stripe_customer_id = excluded.stripe_customer_id,
			stripe_subscription_id = excluded.stripe_subscription_id,
			stripe_price_id = excluded.stripe_price_id,
			stripe_current_period_end_ms = excluded.stripe_current_period_end_ms
		RETURNING id
	`,
		s.UserID,
		s.StripeCustomerID,
		s.StripeSubscriptionID,
		s.StripePriceID,
		nullableMillis(s.StripeCurrentPeriodEnd),
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("upsert subscription: %w", constraintError(err))
	}
	return nil
}
