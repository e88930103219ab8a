package bind

import (
	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

// Option is a function that can be used to configure a Loop.
type Option func(*config)

type config struct {
	clock  clock.Clock
	speeds Speeds
	logger *zap.Logger
}

func defaultConfig() config {
	return config{
		clock:  clock.New(),
		speeds: DefaultSpeeds(),
		logger: zap.NewNop(),
	}
}

// WithClock returns an option that sets the clock used to schedule timers.
// Tests typically pass a *clock.Mock to control the passing of time.
//
// A nil clock is ignored.
func WithClock(c clock.Clock) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.clock = c
		}
	}
}

// WithSpeeds returns an option that sets the speed table used to resolve
// named durations, the default duration, and whether effects are turned off.
//
// Speeds are read when a binder is attached, so changing them affects only
// bindings made afterwards. The table is copied, so later changes to s.Table
// have no effect on the loop.
func WithSpeeds(s Speeds) Option {
	return func(cfg *config) {
		cfg.speeds = s.clone()
	}
}

// WithLogger returns an option that sets the logger used to trace timer
// transitions at debug level. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}
