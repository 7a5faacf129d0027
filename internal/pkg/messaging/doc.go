// Package messaging provides a broker-agnostic publish/consume client
// used for emitting and observing audit events.
package messaging
