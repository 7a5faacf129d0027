package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/otpsender/internal/audit"
	"github.com/shandysiswandi/otpsender/internal/identity"
	"github.com/shandysiswandi/otpsender/internal/otp"
)

func (a *App) initModules() {
	// The otp module comes first so its usecase can serve as the code
	// purger for the identity module.
	otpUC, err := otp.New(otp.Dependency{
		DBConn:      a.dbConn,
		Router:      a.router,
		Scheduler:   a.scheduler,
		Channels:    a.channels,
		Idempotency: a.idemp,
		Messaging:   a.messaging,
		Config:      a.config,
		Instrument:  a.ins,
		Generator:   a.generator,
		UUID:        a.uuid,
		Clock:       a.clock,
		Validator:   a.validator,
	})
	if err != nil {
		slog.Error("failed to init module otp", "error", err)
		os.Exit(1)
	}

	if a.config.GetBool("modules.identity.enabled") {
		if err := identity.New(identity.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			CodePurger: otpUC,
			Instrument: a.ins,
			UID:        a.uid,
			Bcrypt:     a.bcrypt,
			Clock:      a.clock,
			Validator:  a.validator,
			JWT:        a.jwt,
		}); err != nil {
			slog.Error("failed to init module identity", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.audit.enabled") {
		if err := audit.New(audit.Dependency{
			Ctx:        a.ctx,
			DBConn:     a.dbConn,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			UUID:       a.uuid,
			Clock:      a.clock,
			Goroutine:  a.goroutine,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module audit", "error", err)
			os.Exit(1)
		}
	}
}
