// Package otp generates one-time verification codes.
//
// Codes are fixed-length decimal strings drawn from a cryptographically
// secure random source. They carry no structure: validity comes entirely
// from the persisted record they are stored against.
package otp
