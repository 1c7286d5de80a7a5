package pictor

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// resolveOrigin looks up the stored origin image URL for an artwork. A
// missing row and a row without an origin URL both come back as ErrNotFound.
// The URL is only ever read from the database, never from the request, so
// the fetch stage cannot be pointed at arbitrary hosts.
func (p *Pictor) resolveOrigin(ctx context.Context, artworkId string) (string, error) {
	var originURL *string
	query := fmt.Sprintf(`SELECT origin_url FROM %s.artwork WHERE id = $1`, p.dbSchema)
	err := p.db.QueryRow(ctx, query, artworkId).Scan(&originURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", &StageError{Stage: "resolve", Err: err}
	}
	if originURL == nil || *originURL == "" {
		return "", ErrNotFound
	}
	return *originURL, nil
}
