package app

import (
	"context"
	"net/http"

	"github.com/go-co-op/gocron/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/otpsender/internal/pkg/channel"
	"github.com/shandysiswandi/otpsender/internal/pkg/clock"
	"github.com/shandysiswandi/otpsender/internal/pkg/config"
	"github.com/shandysiswandi/otpsender/internal/pkg/goroutine"
	"github.com/shandysiswandi/otpsender/internal/pkg/hash"
	"github.com/shandysiswandi/otpsender/internal/pkg/idempotency"
	"github.com/shandysiswandi/otpsender/internal/pkg/instrument"
	"github.com/shandysiswandi/otpsender/internal/pkg/jwt"
	"github.com/shandysiswandi/otpsender/internal/pkg/mail"
	"github.com/shandysiswandi/otpsender/internal/pkg/messaging"
	"github.com/shandysiswandi/otpsender/internal/pkg/otp"
	"github.com/shandysiswandi/otpsender/internal/pkg/router"
	"github.com/shandysiswandi/otpsender/internal/pkg/uid"
	"github.com/shandysiswandi/otpsender/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	generator otp.Generator
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail
	messaging messaging.Messaging
	channels  *channel.Registry
	scheduler gocron.Scheduler

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initMessaging()
	app.initChannels()
	app.initScheduler()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
