package db

import (
	"context"
	"time"

	"github.com/shandysiswandi/otpsender/internal/otp/entity"
)

// ConsumeCode flips an active code to used. The status guard in the WHERE
// clause makes the flip a compare-and-set, so of two racing calls exactly
// one observes a row change.
func (s *DB) ConsumeCode(ctx context.Context, id string, usedAt time.Time) (won bool, err error) {
	ctx, span := s.startSpan(ctx, "ConsumeCode")
	defer func() { s.endSpan(span, err) }()

	const q = `
		UPDATE otp_codes
		SET status = $1, used_at = $2
		WHERE id = $3 AND status = $4`

	tag, err := s.conn.Exec(ctx, q,
		int16(entity.CodeStatusUsed), usedAt, id, int16(entity.CodeStatusActive))
	if err != nil {
		err = s.mapError(err)
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

// ExpireCode flips an active code to expired, same compare-and-set shape as
// ConsumeCode. A code that was consumed in the meantime is left alone.
func (s *DB) ExpireCode(ctx context.Context, id string) (flipped bool, err error) {
	ctx, span := s.startSpan(ctx, "ExpireCode")
	defer func() { s.endSpan(span, err) }()

	const q = `
		UPDATE otp_codes
		SET status = $1
		WHERE id = $2 AND status = $3`

	tag, err := s.conn.Exec(ctx, q,
		int16(entity.CodeStatusExpired), id, int16(entity.CodeStatusActive))
	if err != nil {
		err = s.mapError(err)
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

func (s *DB) UpdateConfig(ctx context.Context, id int64, codeLength, ttlSeconds int) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateConfig")
	defer func() { s.endSpan(span, err) }()

	const q = `
		UPDATE otp_configs
		SET code_length = $1, ttl_seconds = $2, updated_at = now()
		WHERE id = $3`

	_, err = s.conn.Exec(ctx, q, codeLength, ttlSeconds, id)
	err = s.mapError(err)
	return err
}
