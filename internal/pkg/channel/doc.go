// Package channel provides out-of-band delivery backends for verification
// codes and a registry that resolves them by name.
//
// Every backend satisfies the same small contract (Name, Available, Send) and
// owns its transport session end to end. Transport failures never escape as
// provider-specific errors: each implementation wraps them into
// ErrDeliveryFailed so callers handle one uniform outcome.
package channel
