package usecase

import (
	"context"

	"github.com/shandysiswandi/otpsender/internal/identity/entity"
	"github.com/shandysiswandi/otpsender/internal/pkg/clock"
	"github.com/shandysiswandi/otpsender/internal/pkg/goerror"
	"github.com/shandysiswandi/otpsender/internal/pkg/hash"
	"github.com/shandysiswandi/otpsender/internal/pkg/instrument"
	"github.com/shandysiswandi/otpsender/internal/pkg/jwt"
	"github.com/shandysiswandi/otpsender/internal/pkg/uid"
	"github.com/shandysiswandi/otpsender/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	CreateUser(ctx context.Context, user entity.User, passwordHash string) error
	GetUserByEmail(ctx context.Context, email string) (*entity.UserCredentialInfo, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	GetUserList(ctx context.Context, filter entity.UserListFilter) ([]entity.User, int64, error)
	MarkUserDeleted(ctx context.Context, id int64) error
}

// codePurger removes every verification code owned by a user.
type codePurger interface {
	PurgeUserCodes(ctx context.Context, userID int64) (int64, error)
}

type Usecase struct {
	repoDB     repoDB
	codePurger codePurger
	validator  validator.Validator
	bcrypt     hash.Hash
	uid        uid.NumberID
	clock      clock.Clocker
	jwt        jwt.JWT
	ins        instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	CodePurger codePurger
	Validator  validator.Validator
	Bcrypt     hash.Hash
	UID        uid.NumberID
	Clock      clock.Clocker
	JWT        jwt.JWT
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:     dep.RepoDB,
		codePurger: dep.CodePurger,
		validator:  dep.Validator,
		bcrypt:     dep.Bcrypt,
		uid:        dep.UID,
		clock:      dep.Clock,
		jwt:        dep.JWT,
		ins:        dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

func (s *Usecase) requireAdmin(ctx context.Context) error {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}
	if !clm.IsAdmin() {
		return goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return nil
}
