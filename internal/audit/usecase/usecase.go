package usecase

import (
	"context"

	"github.com/shandysiswandi/otpsender/internal/audit/entity"
	"github.com/shandysiswandi/otpsender/internal/pkg/clock"
	"github.com/shandysiswandi/otpsender/internal/pkg/instrument"
	"github.com/shandysiswandi/otpsender/internal/pkg/uid"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	CreateEntry(ctx context.Context, in entity.Entry) error
}

type Usecase struct {
	repoDB repoDB
	uid    uid.NumberID
	clock  clock.Clocker
	ins    instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	UID        uid.NumberID
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB: dep.RepoDB,
		uid:    dep.UID,
		clock:  dep.Clock,
		ins:    dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("audit.usecase").Start(ctx, name)
}
