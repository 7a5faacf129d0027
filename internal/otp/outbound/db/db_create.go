package db

import (
	"context"

	"github.com/shandysiswandi/otpsender/internal/otp/entity"
)

func (s *DB) CreateCode(ctx context.Context, in entity.Code) (err error) {
	ctx, span := s.startSpan(ctx, "CreateCode")
	defer func() { s.endSpan(span, err) }()

	const q = `
		INSERT INTO otp_codes (id, user_id, value, operation_id, status, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = s.conn.Exec(ctx, q,
		in.ID, in.UserID, in.Value, in.OperationID, int16(in.Status), in.CreatedAt, in.ExpiresAt)
	err = s.mapError(err)
	return err
}

func (s *DB) CreateConfig(ctx context.Context, in entity.Config) (err error) {
	ctx, span := s.startSpan(ctx, "CreateConfig")
	defer func() { s.endSpan(span, err) }()

	const q = `
		INSERT INTO otp_configs (code_length, ttl_seconds, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`

	_, err = s.conn.Exec(ctx, q, in.CodeLength, in.TTLSeconds, in.CreatedAt, in.UpdatedAt)
	err = s.mapError(err)
	return err
}
