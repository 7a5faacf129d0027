package identity

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/otpsender/internal/identity/inbound"
	"github.com/shandysiswandi/otpsender/internal/identity/outbound/db"
	"github.com/shandysiswandi/otpsender/internal/identity/usecase"
	"github.com/shandysiswandi/otpsender/internal/pkg/clock"
	"github.com/shandysiswandi/otpsender/internal/pkg/hash"
	"github.com/shandysiswandi/otpsender/internal/pkg/instrument"
	"github.com/shandysiswandi/otpsender/internal/pkg/jwt"
	"github.com/shandysiswandi/otpsender/internal/pkg/router"
	"github.com/shandysiswandi/otpsender/internal/pkg/uid"
	"github.com/shandysiswandi/otpsender/internal/pkg/validator"
)

// CodePurger removes every verification code owned by a user.
type CodePurger interface {
	PurgeUserCodes(ctx context.Context, userID int64) (int64, error)
}

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	CodePurger CodePurger                 `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbUser := db.NewDB(dep.DBConn, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:     dbUser,
		CodePurger: dep.CodePurger,
		Validator:  dep.Validator,
		Bcrypt:     dep.Bcrypt,
		UID:        dep.UID,
		Clock:      dep.Clock,
		JWT:        dep.JWT,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
