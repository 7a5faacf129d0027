package event

const OtpIssuedDestination string = "otp_issued"
const OtpIssuedConsumerAudit string = "otp_issued_audit"

type OtpIssuedMessage struct {
	CodeID      string `json:"code_id"`
	UserID      int64  `json:"user_id"`
	OperationID string `json:"operation_id"`
	Channel     string `json:"channel"`
	ExpiresAt   int64  `json:"expires_at"`
}
