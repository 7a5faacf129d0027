package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shandysiswandi/otpsender/internal/audit/entity"
	"github.com/shandysiswandi/otpsender/internal/audit/usecase"
	"github.com/shandysiswandi/otpsender/internal/pkg/instrument"
	"github.com/shandysiswandi/otpsender/internal/pkg/messaging"
	"github.com/shandysiswandi/otpsender/internal/pkg/uid"
	"github.com/shandysiswandi/otpsender/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers map[string]string) context.Context {
	if cID, ok := headers[keyOfCorrelationID]; ok && cID != "" {
		return instrument.SetCorrelationID(ctx, cID)
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) OtpIssued(ctx context.Context, d messaging.Delivery) error {
	ctx = h.ensureCorrelationID(ctx, d.Headers)

	ctx, span := h.ins.Tracer("audit.inbound.mq").Start(ctx, "OtpIssued")
	defer span.End()

	var payload event.OtpIssuedMessage
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse issued event", "msg_body", string(d.Body), "error", err)
		return nil
	}

	return h.uc.Record(ctx, usecase.RecordInput{
		Kind:        entity.KindOtpIssued,
		UserID:      payload.UserID,
		CodeID:      payload.CodeID,
		OperationID: payload.OperationID,
		Detail:      d.Body,
	})
}

func (h *MQHandler) OtpConsumed(ctx context.Context, d messaging.Delivery) error {
	ctx = h.ensureCorrelationID(ctx, d.Headers)

	ctx, span := h.ins.Tracer("audit.inbound.mq").Start(ctx, "OtpConsumed")
	defer span.End()

	var payload event.OtpConsumedMessage
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse consumed event", "msg_body", string(d.Body), "error", err)
		return nil
	}

	return h.uc.Record(ctx, usecase.RecordInput{
		Kind:        entity.KindOtpConsumed,
		UserID:      payload.UserID,
		CodeID:      payload.CodeID,
		OperationID: payload.OperationID,
		Detail:      d.Body,
	})
}

func (h *MQHandler) SweepCompleted(ctx context.Context, d messaging.Delivery) error {
	ctx = h.ensureCorrelationID(ctx, d.Headers)

	ctx, span := h.ins.Tracer("audit.inbound.mq").Start(ctx, "SweepCompleted")
	defer span.End()

	var payload event.OtpSweepCompletedMessage
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse sweep event", "msg_body", string(d.Body), "error", err)
		return nil
	}

	return h.uc.Record(ctx, usecase.RecordInput{
		Kind:   entity.KindSweepComplete,
		Detail: d.Body,
	})
}
