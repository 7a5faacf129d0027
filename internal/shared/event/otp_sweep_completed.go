package event

const OtpSweepCompletedDestination string = "otp_sweep_completed"
const OtpSweepCompletedConsumerAudit string = "otp_sweep_completed_audit"

type OtpSweepCompletedMessage struct {
	Scanned   int   `json:"scanned"`
	Expired   int   `json:"expired"`
	Failed    int   `json:"failed"`
	StartedAt int64 `json:"started_at"`
	Elapsed   int64 `json:"elapsed_ms"`
}
