package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/otpsender/internal/otp/entity"
)

func (s *DB) GetEarliestConfig(ctx context.Context) (cfg *entity.Config, err error) {
	ctx, span := s.startSpan(ctx, "GetEarliestConfig")
	defer func() { s.endSpan(span, err) }()

	const q = `
		SELECT id, code_length, ttl_seconds, created_at, updated_at
		FROM otp_configs
		ORDER BY created_at ASC, id ASC
		LIMIT 1`

	var out entity.Config
	err = s.conn.QueryRow(ctx, q).
		Scan(&out.ID, &out.CodeLength, &out.TTLSeconds, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return &out, nil
}

func (s *DB) GetActiveCode(ctx context.Context, userID int64, operationID, value string) (code *entity.Code, err error) {
	ctx, span := s.startSpan(ctx, "GetActiveCode")
	defer func() { s.endSpan(span, err) }()

	const q = `
		SELECT id, user_id, value, operation_id, status, created_at, expires_at, used_at
		FROM otp_codes
		WHERE user_id = $1 AND operation_id = $2 AND value = $3 AND status = $4
		ORDER BY created_at DESC
		LIMIT 1`

	var out entity.Code
	var status int16
	err = s.conn.QueryRow(ctx, q, userID, operationID, value, int16(entity.CodeStatusActive)).
		Scan(&out.ID, &out.UserID, &out.Value, &out.OperationID, &status,
			&out.CreatedAt, &out.ExpiresAt, &out.UsedAt)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}
	out.Status = entity.CodeStatus(status)

	return &out, nil
}

func (s *DB) GetExpiredActiveCodes(ctx context.Context, ref time.Time, limit int32) (codes []entity.Code, err error) {
	ctx, span := s.startSpan(ctx, "GetExpiredActiveCodes")
	defer func() { s.endSpan(span, err) }()

	const q = `
		SELECT id, user_id, value, operation_id, status, created_at, expires_at, used_at
		FROM otp_codes
		WHERE status = $1 AND expires_at <= $2
		ORDER BY expires_at ASC
		LIMIT $3`

	rows, err := s.conn.Query(ctx, q, int16(entity.CodeStatusActive), ref, limit)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	codes, err = scanCodes(rows)
	err = s.mapError(err)
	return codes, err
}

func (s *DB) GetCodeList(ctx context.Context, filter entity.CodeListFilter) (codes []entity.Code, total int64, err error) {
	ctx, span := s.startSpan(ctx, "GetCodeList")
	defer func() { s.endSpan(span, err) }()

	const q = `
		SELECT id, user_id, value, operation_id, status, created_at, expires_at, used_at,
			COUNT(*) OVER() AS total
		FROM otp_codes
		WHERE ($1::boolean = false OR user_id = $2)
		  AND ($3::boolean = false OR status = $4)
		ORDER BY created_at DESC
		LIMIT $5 OFFSET $6`

	rows, err := s.conn.Query(ctx, q,
		filter.IsFilterByUser, filter.UserID,
		filter.IsFilterByStatus, int16(filter.Status),
		filter.Limit, filter.Offset)
	if err != nil {
		err = s.mapError(err)
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var c entity.Code
		var status int16
		if err = rows.Scan(&c.ID, &c.UserID, &c.Value, &c.OperationID, &status,
			&c.CreatedAt, &c.ExpiresAt, &c.UsedAt, &total); err != nil {
			err = s.mapError(err)
			return nil, 0, err
		}
		c.Status = entity.CodeStatus(status)
		codes = append(codes, c)
	}
	if err = rows.Err(); err != nil {
		err = s.mapError(err)
		return nil, 0, err
	}

	return codes, total, nil
}

func scanCodes(rows pgx.Rows) ([]entity.Code, error) {
	defer rows.Close()

	var out []entity.Code
	for rows.Next() {
		var c entity.Code
		var status int16
		if err := rows.Scan(&c.ID, &c.UserID, &c.Value, &c.OperationID, &status,
			&c.CreatedAt, &c.ExpiresAt, &c.UsedAt); err != nil {
			return nil, err
		}
		c.Status = entity.CodeStatus(status)
		out = append(out, c)
	}

	return out, rows.Err()
}
