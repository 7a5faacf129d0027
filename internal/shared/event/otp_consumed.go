package event

const OtpConsumedDestination string = "otp_consumed"
const OtpConsumedConsumerAudit string = "otp_consumed_audit"

type OtpConsumedMessage struct {
	CodeID      string `json:"code_id"`
	UserID      int64  `json:"user_id"`
	OperationID string `json:"operation_id"`
	ConsumedAt  int64  `json:"consumed_at"`
}
