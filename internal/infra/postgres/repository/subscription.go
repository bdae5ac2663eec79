package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/lingua/internal/domain/entities"
	"github.com/aliskhannn/lingua/internal/infra/postgres"
	"github.com/aliskhannn/lingua/internal/storage"
)

// SubscriptionRepository stores billing subscription records.
type SubscriptionRepository struct {
	db postgres.DBTX
}

// NewSubscriptionRepository creates a new SubscriptionRepository with the provided database pool.
func NewSubscriptionRepository(db postgres.DBTX) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// GetByUserID retrieves the user's subscription.
func (r *SubscriptionRepository) GetByUserID(ctx context.Context, userID string) (*entities.UserSubscription, error) {
	query := `
		SELECT id, user_id, stripe_customer_id, stripe_subscription_id,
		       stripe_price_id, stripe_current_period_end
		FROM user_subscription
		WHERE user_id = $1
	`

	var s entities.UserSubscription
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, userID).Scan(
		&s.ID,
		&s.UserID,
		&s.StripeCustomerID,
		&s.StripeSubscriptionID,
		&s.StripePriceID,
		&s.StripeCurrentPeriodEnd,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}

	return &s, nil
}

// Upsert creates or replaces the user's subscription and sets its id.
func (r *SubscriptionRepository) Upsert(ctx context.Context, s *entities.UserSubscription) error {
	query := `
		INSERT INTO user_subscription (
			user_id, stripe_customer_id, stripe_subscription_id,
			stripe_price_id, stripe_current_period_end
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			stripe_customer_id = EXCLUDED.stripe_customer_id,
			stripe_subscription_id = EXCLUDED.stripe_subscription_id,
			stripe_price_id = EXCLUDED.stripe_price_id,
			stripe_current_period_end = EXCLUDED.stripe_current_period_end
		RETURNING id
	`

	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query,
		s.UserID,
		s.StripeCustomerID,
		s.StripeSubscriptionID,
		s.StripePriceID,
		s.StripeCurrentPeriodEnd,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("upsert subscription: %w", constraintError(err))
	}
	return nil
}
