package channel

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SMSConfig configures the SMS gateway channel.
type SMSConfig struct {
	// AccountSID identifies the gateway account.
	AccountSID string
	// AuthToken authenticates against the gateway.
	AuthToken string
	// From is the sending phone number.
	From string
	// BaseURL overrides the gateway endpoint, mainly for tests.
	BaseURL string
	// Timeout bounds each delivery attempt.
	Timeout time.Duration
}

// SMS delivers codes through a Twilio-compatible HTTP gateway.
type SMS struct {
	cfg    SMSConfig
	client *http.Client
}

// NewSMS constructs the SMS channel. The HTTP client is created once; each
// send is a single request/response exchange.
func NewSMS(cfg SMSConfig) *SMS {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.twilio.com/2010-04-01"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &SMS{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Name returns the channel identifier.
func (*SMS) Name() string {
	return NameSMS
}

// Available reports whether the gateway credentials are complete.
func (s *SMS) Available() bool {
	return s.cfg.AccountSID != "" && s.cfg.AuthToken != "" && s.cfg.From != ""
}

// Send submits the code to the gateway as a text message.
func (s *SMS) Send(ctx context.Context, destination, code string) error {
	form := url.Values{}
	form.Set("To", destination)
	form.Set("From", s.cfg.From)
	form.Set("Body", fmt.Sprintf("Your verification code is: %s", code))

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", strings.TrimRight(s.cfg.BaseURL, "/"), s.cfg.AccountSID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: gateway returned %s", ErrDeliveryFailed, resp.Status)
	}

	return nil
}
