package particles

import (
	"errors"
	"fmt"
)

var (
	// ErrChannelNotFound indicates a stage needs a channel no earlier stage allocated.
	ErrChannelNotFound = errors.New("particles: channel not found")

	// ErrNoTemplates indicates a nested-controller or model stage configured without templates.
	ErrNoTemplates = errors.New("particles: no templates configured")

	// ErrNoEmitter indicates a controller initialized without an emitter.
	ErrNoEmitter = errors.New("particles: controller has no emitter")

	// ErrNotInitialized indicates an effect used before Init.
	ErrNotInitialized = errors.New("particles: effect not initialized")
)

// ChannelError reports which component was missing which channel.
type ChannelError struct {
	Component string
	Channel   string
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("particles: %s: channel %s not found; register a stage that allocates it earlier in the pipeline", e.Component, e.Channel)
}

func (e *ChannelError) Unwrap() error {
	return ErrChannelNotFound
}
