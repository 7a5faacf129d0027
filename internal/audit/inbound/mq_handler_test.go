package inbound

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shandysiswandi/otpsender/internal/audit/entity"
	"github.com/shandysiswandi/otpsender/internal/audit/usecase"
	"github.com/shandysiswandi/otpsender/internal/pkg/instrument"
	"github.com/shandysiswandi/otpsender/internal/pkg/messaging"
	"github.com/shandysiswandi/otpsender/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUC struct {
	inputs []usecase.RecordInput
	err    error
}

func (r *recordingUC) Record(_ context.Context, in usecase.RecordInput) error {
	if r.err != nil {
		return r.err
	}
	r.inputs = append(r.inputs, in)

	return nil
}

type staticUUID struct{}

func (staticUUID) Generate() string { return "generated-cid" }

func newHandler(rec *recordingUC) *MQHandler {
	return &MQHandler{uc: rec, uuid: staticUUID{}, ins: instrument.NewNoop()}
}

func TestMQHandlerOtpIssued(t *testing.T) {
	rec := &recordingUC{}
	h := newHandler(rec)

	body, err := json.Marshal(event.OtpIssuedMessage{
		CodeID:      "code-1",
		UserID:      7,
		OperationID: "login",
		Channel:     "email",
		ExpiresAt:   time.Now().Add(5 * time.Minute).Unix(),
	})
	require.NoError(t, err)

	err = h.OtpIssued(context.Background(), messaging.Delivery{
		Body:    body,
		Headers: map[string]string{"cID": "abc-123"},
	})
	require.NoError(t, err)

	require.Len(t, rec.inputs, 1)
	assert.Equal(t, entity.KindOtpIssued, rec.inputs[0].Kind)
	assert.Equal(t, int64(7), rec.inputs[0].UserID)
	assert.Equal(t, "code-1", rec.inputs[0].CodeID)
	assert.Equal(t, "login", rec.inputs[0].OperationID)
	assert.JSONEq(t, string(body), string(rec.inputs[0].Detail))
}

func TestMQHandlerOtpConsumed(t *testing.T) {
	rec := &recordingUC{}
	h := newHandler(rec)

	body, err := json.Marshal(event.OtpConsumedMessage{
		CodeID:      "code-1",
		UserID:      7,
		OperationID: "login",
		ConsumedAt:  time.Now().Unix(),
	})
	require.NoError(t, err)

	err = h.OtpConsumed(context.Background(), messaging.Delivery{Body: body})
	require.NoError(t, err)

	require.Len(t, rec.inputs, 1)
	assert.Equal(t, entity.KindOtpConsumed, rec.inputs[0].Kind)
}

func TestMQHandlerSweepCompleted(t *testing.T) {
	rec := &recordingUC{}
	h := newHandler(rec)

	body, err := json.Marshal(event.OtpSweepCompletedMessage{Scanned: 3, Expired: 2, Failed: 1})
	require.NoError(t, err)

	err = h.SweepCompleted(context.Background(), messaging.Delivery{Body: body})
	require.NoError(t, err)

	require.Len(t, rec.inputs, 1)
	assert.Equal(t, entity.KindSweepComplete, rec.inputs[0].Kind)
}

func TestMQHandlerMalformedBody(t *testing.T) {
	rec := &recordingUC{}
	h := newHandler(rec)

	// A broken payload is logged and dropped, not redelivered forever.
	err := h.OtpIssued(context.Background(), messaging.Delivery{Body: []byte("{not json")})
	require.NoError(t, err)
	assert.Empty(t, rec.inputs)
}
