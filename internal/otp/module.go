package otp

import (
	"github.com/go-co-op/gocron/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/otpsender/internal/otp/inbound"
	"github.com/shandysiswandi/otpsender/internal/otp/outbound/db"
	"github.com/shandysiswandi/otpsender/internal/otp/outbound/mq"
	"github.com/shandysiswandi/otpsender/internal/otp/usecase"
	"github.com/shandysiswandi/otpsender/internal/pkg/channel"
	"github.com/shandysiswandi/otpsender/internal/pkg/clock"
	"github.com/shandysiswandi/otpsender/internal/pkg/config"
	"github.com/shandysiswandi/otpsender/internal/pkg/idempotency"
	"github.com/shandysiswandi/otpsender/internal/pkg/instrument"
	"github.com/shandysiswandi/otpsender/internal/pkg/messaging"
	pkgotp "github.com/shandysiswandi/otpsender/internal/pkg/otp"
	"github.com/shandysiswandi/otpsender/internal/pkg/router"
	"github.com/shandysiswandi/otpsender/internal/pkg/uid"
	"github.com/shandysiswandi/otpsender/internal/pkg/validator"
)

type Dependency struct {
	DBConn      *pgxpool.Pool              `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Scheduler   gocron.Scheduler           `validate:"required"`
	Channels    *channel.Registry          `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Messaging   messaging.Messaging        `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	Generator   pkgotp.Generator           `validate:"required"`
	UUID        uid.StringID               `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

// New wires the module and returns its usecase so other modules can purge
// a user's codes when the account goes away.
func New(dep Dependency) (*usecase.Usecase, error) {
	if err := dep.Validator.Validate(dep); err != nil {
		return nil, err
	}

	dbOtp := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbOtp,
		RepoMessaging: repoMsg,
		Channels:      dep.Channels,
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Generator:     dep.Generator,
		UUID:          dep.UUID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	if err := inbound.RegisterCronJob(dep.Scheduler, dep.Clock, uc, inbound.CronConfig{
		Interval: dep.Config.GetMinute("modules.otp.sweep_interval_minutes"),
		Warmup:   dep.Config.GetMinute("modules.otp.sweep_warmup_minutes"),
	}); err != nil {
		return nil, err
	}

	return uc, nil
}
