package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pawshield/adtrack/internal/model"
)

// Common errors for click storage operations.
var (
	ErrSessionNotFound = errors.New("session not found")
)

// InsertOrUpdateClick stores a click record. When a record with the
// same non-null gclid already exists, the insert collapses into an
// update that only refreshes the stored timestamp; the statement is a
// single atomic upsert, so two near-simultaneous clicks with the same
// gclid can never both insert.
//
// Returns the session id of the stored record: the record's own id for
// a fresh insert, the original session id when the gclid was already
// known. Clicks without a gclid always insert a new row.
func (r *Repository) InsertOrUpdateClick(ctx context.Context, rec *model.ClickRecord) (string, error) {
	query := `
		INSERT INTO click_data (
			id, session_id, timestamp, keyword, campaign, source, medium,
			content, gclid, full_url, ip_address, user_agent, converted, conversion_value
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (gclid) DO UPDATE SET timestamp = EXCLUDED.timestamp
		RETURNING session_id
	`

	var sessionID string
	err := r.pool.QueryRow(ctx, query,
		rec.ID,
		rec.SessionID,
		rec.Timestamp,
		nullableString(rec.Keyword),
		nullableString(rec.Campaign),
		nullableString(rec.Source),
		nullableString(rec.Medium),
		nullableString(rec.Content),
		nullableString(rec.GCLID),
		nullableString(rec.URL),
		nullableString(rec.IPAddress),
		nullableString(rec.UserAgent),
		rec.Converted,
		rec.ConversionValue,
	).Scan(&sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to upsert click: %w", err)
	}

	return sessionID, nil
}

// GetClickBySession retrieves the click record for a session id. If
// more than one row ever shares a session id, the one with the latest
// timestamp wins so the lookup stays deterministic.
func (r *Repository) GetClickBySession(ctx context.Context, sessionID string) (*model.ClickRecord, error) {
	query := clickSelect + `
		WHERE session_id = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT 1
	`

	rec, err := scanClick(r.pool.QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get click by session: %w", err)
	}

	return rec, nil
}

// MarkConverted flags the most recent click for a session as converted
// and sets its conversion value. Last write wins; repeated calls with
// the same value leave the row unchanged. Returns ErrSessionNotFound
// when no click matches - a conversion never fabricates a click.
func (r *Repository) MarkConverted(ctx context.Context, sessionID string, value float64) error {
	query := `
		UPDATE click_data
		SET converted = TRUE, conversion_value = $2
		WHERE id = (
			SELECT id FROM click_data
			WHERE session_id = $1
			ORDER BY timestamp DESC, id DESC
			LIMIT 1
		)
	`

	tag, err := r.pool.Exec(ctx, query, sessionID, value)
	if err != nil {
		return fmt.Errorf("failed to mark conversion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// ClicksSince returns all click records with a timestamp strictly
// after the cutoff, newest first.
func (r *Repository) ClicksSince(ctx context.Context, cutoff time.Time) ([]*model.ClickRecord, error) {
	query := clickSelect + `
		WHERE timestamp > $1
		ORDER BY timestamp DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query clicks: %w", err)
	}
	defer rows.Close()

	var records []*model.ClickRecord
	for rows.Next() {
		rec, err := scanClick(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan click: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

const clickSelect = `
	SELECT id, session_id, timestamp,
		   COALESCE(keyword, ''), COALESCE(campaign, ''), COALESCE(source, ''),
		   COALESCE(medium, ''), COALESCE(content, ''), COALESCE(gclid, ''),
		   COALESCE(full_url, ''), COALESCE(ip_address, ''), COALESCE(user_agent, ''),
		   converted, conversion_value
	FROM click_data
`

// scanClick scans a click_data row into a ClickRecord.
func scanClick(row pgx.Row) (*model.ClickRecord, error) {
	var rec model.ClickRecord
	err := row.Scan(
		&rec.ID,
		&rec.SessionID,
		&rec.Timestamp,
		&rec.Keyword,
		&rec.Campaign,
		&rec.Source,
		&rec.Medium,
		&rec.Content,
		&rec.GCLID,
		&rec.URL,
		&rec.IPAddress,
		&rec.UserAgent,
		&rec.Converted,
		&rec.ConversionValue,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
