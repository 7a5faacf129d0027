package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/shandysiswandi/otpsender/internal/otp/entity"
	"github.com/shandysiswandi/otpsender/internal/pkg/channel"
	"github.com/shandysiswandi/otpsender/internal/pkg/clock"
	"github.com/shandysiswandi/otpsender/internal/pkg/goerror"
	"github.com/shandysiswandi/otpsender/internal/pkg/idempotency"
	"github.com/shandysiswandi/otpsender/internal/pkg/instrument"
	"github.com/shandysiswandi/otpsender/internal/pkg/jwt"
	"github.com/shandysiswandi/otpsender/internal/pkg/otp"
	"github.com/shandysiswandi/otpsender/internal/pkg/uid"
	"github.com/shandysiswandi/otpsender/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type OtpIssuedEvent struct {
	CodeID      string
	UserID      int64
	OperationID string
	Channel     string
	ExpiresAt   time.Time
}

type OtpConsumedEvent struct {
	CodeID      string
	UserID      int64
	OperationID string
	ConsumedAt  time.Time
}

type SweepCompletedEvent struct {
	Scanned   int
	Expired   int
	Failed    int
	StartedAt time.Time
	Elapsed   time.Duration
}

type repoMessaging interface {
	PublishOtpIssued(ctx context.Context, msg OtpIssuedEvent) error
	PublishOtpConsumed(ctx context.Context, msg OtpConsumedEvent) error
	PublishSweepCompleted(ctx context.Context, msg SweepCompletedEvent) error
}

type repoDB interface {
	GetEarliestConfig(ctx context.Context) (*entity.Config, error)
	CreateConfig(ctx context.Context, in entity.Config) error
	UpdateConfig(ctx context.Context, id int64, codeLength, ttlSeconds int) error

	CreateCode(ctx context.Context, in entity.Code) error
	GetActiveCode(ctx context.Context, userID int64, operationID, value string) (*entity.Code, error)
	GetExpiredActiveCodes(ctx context.Context, ref time.Time, limit int32) ([]entity.Code, error)
	GetCodeList(ctx context.Context, filter entity.CodeListFilter) ([]entity.Code, int64, error)

	ConsumeCode(ctx context.Context, id string, usedAt time.Time) (bool, error)
	ExpireCode(ctx context.Context, id string) (bool, error)

	DeleteUserCodes(ctx context.Context, userID int64) (int64, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	channels      *channel.Registry
	idemp         idempotency.Idempotency
	validator     validator.Validator
	generator     otp.Generator
	uuid          uid.StringID
	clock         clock.Clocker
	ins           instrument.Instrumentation

	// Serializes lazy creation of the runtime config within this process.
	cfgOnce sync.Mutex
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Channels      *channel.Registry
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Generator     otp.Generator
	UUID          uid.StringID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		channels:      dep.Channels,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		generator:     dep.Generator,
		uuid:          dep.UUID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("otp.usecase").Start(ctx, name)
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
