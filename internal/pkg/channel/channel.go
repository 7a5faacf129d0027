package channel

import (
	"context"
	"errors"
)

// Supported channel names.
const (
	NameEmail    = "email"
	NameSMS      = "sms"
	NameTelegram = "telegram"
	NameFile     = "file"
)

var (
	// ErrNotFound indicates the requested channel name is not registered.
	ErrNotFound = errors.New("channel: not found")

	// ErrUnavailable indicates the channel exists but its own configuration
	// is incomplete (missing credentials, endpoint, etc).
	ErrUnavailable = errors.New("channel: not configured")

	// ErrDeliveryFailed is the uniform outcome for any transport failure.
	ErrDeliveryFailed = errors.New("channel: delivery failed")
)

// Channel is a delivery backend for verification codes.
type Channel interface {
	// Name returns the stable symbolic identifier of the channel.
	Name() string

	// Available reports whether the channel's own configuration is complete
	// and usable. It says nothing about network reachability.
	Available() bool

	// Send delivers the code to the destination. Any transport failure is
	// reported as an error wrapping ErrDeliveryFailed.
	Send(ctx context.Context, destination, code string) error
}
