package mq

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/otpsender/internal/otp/usecase"
	"github.com/shandysiswandi/otpsender/internal/pkg/instrument"
	"github.com/shandysiswandi/otpsender/internal/pkg/messaging"
	"github.com/shandysiswandi/otpsender/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) publish(ctx context.Context, destination string, payload any) error {
	ctx, span := m.ins.Tracer("otp.outbound.mq").Start(ctx, "Publish."+destination)
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if err := m.client.Publish(ctx, destination, messaging.Event{
		Body:    body,
		Headers: map[string]string{keyOfCorrelationID: cID},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) PublishOtpIssued(ctx context.Context, msg usecase.OtpIssuedEvent) error {
	return m.publish(ctx, event.OtpIssuedDestination, event.OtpIssuedMessage{
		CodeID:      msg.CodeID,
		UserID:      msg.UserID,
		OperationID: msg.OperationID,
		Channel:     msg.Channel,
		ExpiresAt:   msg.ExpiresAt.Unix(),
	})
}

func (m *Messaging) PublishOtpConsumed(ctx context.Context, msg usecase.OtpConsumedEvent) error {
	return m.publish(ctx, event.OtpConsumedDestination, event.OtpConsumedMessage{
		CodeID:      msg.CodeID,
		UserID:      msg.UserID,
		OperationID: msg.OperationID,
		ConsumedAt:  msg.ConsumedAt.Unix(),
	})
}

func (m *Messaging) PublishSweepCompleted(ctx context.Context, msg usecase.SweepCompletedEvent) error {
	return m.publish(ctx, event.OtpSweepCompletedDestination, event.OtpSweepCompletedMessage{
		Scanned:   msg.Scanned,
		Expired:   msg.Expired,
		Failed:    msg.Failed,
		StartedAt: msg.StartedAt.Unix(),
		Elapsed:   msg.Elapsed.Milliseconds(),
	})
}
