package db

import (
	"context"

	"github.com/shandysiswandi/otpsender/internal/identity/entity"
)

func (s *DB) CreateUser(ctx context.Context, user entity.User, passwordHash string) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	const q = `
		INSERT INTO users (id, email, full_name, password, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = s.conn.Exec(ctx, q,
		user.ID, user.Email, user.FullName, passwordHash,
		user.Role, int16(user.Status), user.CreatedAt, user.UpdatedAt)
	err = s.mapError(err)
	return err
}

func (s *DB) GetUserByEmail(ctx context.Context, email string) (user *entity.UserCredentialInfo, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	const q = `
		SELECT id, email, role, status, password
		FROM users
		WHERE email = $1 AND deleted_at IS NULL`

	var out entity.UserCredentialInfo
	var status int16
	err = s.conn.QueryRow(ctx, q, email).
		Scan(&out.ID, &out.Email, &out.Role, &status, &out.Password)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}
	out.Status = entity.UserStatus(status)

	return &out, nil
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (user *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	const q = `
		SELECT id, email, full_name, role, status, created_at, updated_at, deleted_at
		FROM users
		WHERE id = $1`

	var out entity.User
	var status int16
	err = s.conn.QueryRow(ctx, q, id).
		Scan(&out.ID, &out.Email, &out.FullName, &out.Role, &status,
			&out.CreatedAt, &out.UpdatedAt, &out.DeletedAt)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}
	out.Status = entity.UserStatus(status)

	return &out, nil
}

func (s *DB) GetUserList(ctx context.Context, filter entity.UserListFilter) (users []entity.User, total int64, err error) {
	ctx, span := s.startSpan(ctx, "GetUserList")
	defer func() { s.endSpan(span, err) }()

	const q = `
		SELECT id, email, full_name, role, status, created_at, updated_at, deleted_at,
			COUNT(*) OVER() AS total
		FROM users
		WHERE deleted_at IS NULL
		  AND ($1::boolean = false OR email ILIKE '%' || $2 || '%' OR full_name ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := s.conn.Query(ctx, q,
		filter.IsFilterBySearch, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		err = s.mapError(err)
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var u entity.User
		var status int16
		if err = rows.Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &status,
			&u.CreatedAt, &u.UpdatedAt, &u.DeletedAt, &total); err != nil {
			err = s.mapError(err)
			return nil, 0, err
		}
		u.Status = entity.UserStatus(status)
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		err = s.mapError(err)
		return nil, 0, err
	}

	return users, total, nil
}

func (s *DB) MarkUserDeleted(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "MarkUserDeleted")
	defer func() { s.endSpan(span, err) }()

	const q = `
		UPDATE users
		SET status = $1, deleted_at = now(), updated_at = now()
		WHERE id = $2 AND deleted_at IS NULL`

	_, err = s.conn.Exec(ctx, q, int16(entity.UserStatusInactive), id)
	err = s.mapError(err)
	return err
}
