package channel

import (
	"sort"
	"strings"
)

// Registry maps channel names to implementations.
//
// Adding a delivery backend means registering one more Channel; the registry
// itself never changes.
type Registry struct {
	channels map[string]Channel
}

// NewRegistry builds a registry from the given channels, keyed by Name.
func NewRegistry(channels ...Channel) *Registry {
	m := make(map[string]Channel, len(channels))
	for _, ch := range channels {
		m[strings.ToLower(ch.Name())] = ch
	}

	return &Registry{channels: m}
}

// Resolve returns the channel registered under name.
//
// It returns ErrNotFound for unrecognized names and ErrUnavailable when the
// channel's configuration is incomplete; in both cases no transport is
// touched.
func (r *Registry) Resolve(name string) (Channel, error) {
	ch, ok := r.channels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, ErrNotFound
	}

	if !ch.Available() {
		return nil, ErrUnavailable
	}

	return ch, nil
}

// Names returns the registered channel names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.channels))
	for name := range r.channels {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
