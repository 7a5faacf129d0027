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

// TelegramConfig configures the Telegram bot channel.
type TelegramConfig struct {
	// BotToken authenticates the bot against the Bot API.
	BotToken string
	// ChatID is the chat that receives code messages.
	ChatID string
	// BaseURL overrides the Bot API endpoint, mainly for tests.
	BaseURL string
	// Timeout bounds each delivery attempt.
	Timeout time.Duration
}

// Telegram delivers codes as bot messages through the Telegram Bot API.
type Telegram struct {
	cfg    TelegramConfig
	client *http.Client
}

// NewTelegram constructs the Telegram channel.
func NewTelegram(cfg TelegramConfig) *Telegram {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.telegram.org"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Telegram{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Name returns the channel identifier.
func (*Telegram) Name() string {
	return NameTelegram
}

// Available reports whether the bot token and chat ID are configured.
func (t *Telegram) Available() bool {
	return t.cfg.BotToken != "" && t.cfg.ChatID != ""
}

// Send posts the code to the configured chat, addressed to destination.
func (t *Telegram) Send(ctx context.Context, destination, code string) error {
	text := fmt.Sprintf("%s, your confirmation code is: %s", destination, code)

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage?chat_id=%s&text=%s",
		strings.TrimRight(t.cfg.BaseURL, "/"),
		t.cfg.BotToken,
		url.QueryEscape(t.cfg.ChatID),
		url.QueryEscape(text),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: bot api returned %s", ErrDeliveryFailed, resp.Status)
	}

	return nil
}
