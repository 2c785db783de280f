package repository

import (
	"context"

	"car-leasing/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type contactRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewContactRepository creates a new PostgreSQL-backed contact repository.
func NewContactRepository(pool *pgxpool.Pool, logger zerolog.Logger) ContactRepository {
	return &contactRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "contact").Logger(),
	}
}

func (r *contactRepository) Create(ctx context.Context, contact *model.Contact) error {
	query := `
		INSERT INTO contacts (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, contact.Name, contact.Email, contact.Message).
		Scan(&contact.ID, &contact.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to store contact")
		return persistenceError("failed to store contact", err)
	}

	r.logger.Debug().Int64("contact_id", contact.ID).Msg("contact stored")

	return nil
}
