package db

import "context"

func (s *DB) DeleteUserCodes(ctx context.Context, userID int64) (deleted int64, err error) {
	ctx, span := s.startSpan(ctx, "DeleteUserCodes")
	defer func() { s.endSpan(span, err) }()

	const q = `DELETE FROM otp_codes WHERE user_id = $1`

	tag, err := s.conn.Exec(ctx, q, userID)
	if err != nil {
		err = s.mapError(err)
		return 0, err
	}

	return tag.RowsAffected(), nil
}
