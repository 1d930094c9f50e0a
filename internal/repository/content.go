package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pawshield/adtrack/internal/model"
)

// ErrContentNotFound indicates no cached content exists for a keyword.
var ErrContentNotFound = errors.New("content not found")

// GetContent retrieves cached landing copy for a keyword.
func (r *Repository) GetContent(ctx context.Context, keyword string) (*model.ContentRecord, error) {
	query := `
		SELECT keyword, COALESCE(headline, ''), COALESCE(subheadline, ''),
			   COALESCE(body_content, ''), COALESCE(cta_text, ''), updated_at
		FROM page_content
		WHERE keyword = $1
	`

	var rec model.ContentRecord
	err := r.pool.QueryRow(ctx, query, keyword).Scan(
		&rec.Keyword,
		&rec.Headline,
		&rec.Subheadline,
		&rec.BodyContent,
		&rec.CTAText,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to get content: %w", err)
	}

	return &rec, nil
}

// UpsertContent stores landing copy for a keyword, fully replacing any
// existing record. Old field values are discarded, never merged.
func (r *Repository) UpsertContent(ctx context.Context, rec *model.ContentRecord) error {
	query := `
		INSERT INTO page_content (keyword, headline, subheadline, body_content, cta_text, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (keyword) DO UPDATE SET
			headline = EXCLUDED.headline,
			subheadline = EXCLUDED.subheadline,
			body_content = EXCLUDED.body_content,
			cta_text = EXCLUDED.cta_text,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		rec.Keyword,
		rec.Headline,
		rec.Subheadline,
		rec.BodyContent,
		rec.CTAText,
		rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert content: %w", err)
	}

	return nil
}
