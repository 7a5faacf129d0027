package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/shandysiswandi/otpsender/internal/audit/usecase"
	"github.com/shandysiswandi/otpsender/internal/pkg/config"
	"github.com/shandysiswandi/otpsender/internal/pkg/goroutine"
	"github.com/shandysiswandi/otpsender/internal/pkg/instrument"
	"github.com/shandysiswandi/otpsender/internal/pkg/messaging"
	"github.com/shandysiswandi/otpsender/internal/pkg/uid"
	"github.com/shandysiswandi/otpsender/internal/shared/event"
)

type uc interface {
	Record(ctx context.Context, in usecase.RecordInput) error
}

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.audit.consumer_names")

	var consumers = []struct {
		name    string
		topic   string // destination where publisher sent message
		handler messaging.Handler
	}{
		{
			name:    event.OtpIssuedConsumerAudit,
			topic:   event.OtpIssuedDestination,
			handler: mqHandler.OtpIssued,
		},
		{
			name:    event.OtpConsumedConsumerAudit,
			topic:   event.OtpConsumedDestination,
			handler: mqHandler.OtpConsumed,
		},
		{
			name:    event.OtpSweepCompletedConsumerAudit,
			topic:   event.OtpSweepCompletedDestination,
			handler: mqHandler.SweepCompleted,
		},
	}

	for _, consumer := range consumers {
		if len(enableConsumerNames) > 0 && slices.Contains(enableConsumerNames, consumer.name) {
			routine.Go(ctx, func(pCtx context.Context) error {
				slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
				return messenger.Consume(pCtx, consumer.topic, consumer.handler)
			})
		}
	}
}
