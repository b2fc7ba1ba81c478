// SPDX-License-Identifier: MIT
// Package engine: Session options.

package engine

import (
	"io"
	"log/slog"

	"github.com/katalvlaran/fwviz/core"
	"github.com/katalvlaran/fwviz/playback"
)

// Options configures a Session.
type Options struct {
	Logger   *slog.Logger
	Clock    playback.Clock
	Speed    int
	Autoplay bool
	Graph    []core.GraphOption
}

// Option is a functional option for New.
type Option func(*Options)

// WithLogger sets the logger; nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithClock replaces the playback wall clock.
func WithClock(c playback.Clock) Option {
	return func(o *Options) {
		if c != nil {
			o.Clock = c
		}
	}
}

// WithSpeed sets the initial playback speed (clamped to 1..100).
func WithSpeed(s int) Option {
	return func(o *Options) { o.Speed = playback.ClampSpeed(s) }
}

// WithAutoplay controls whether Run starts playing right away.
func WithAutoplay(on bool) Option {
	return func(o *Options) { o.Autoplay = on }
}

// WithCanvas sets the placement bounds of nodes added without a position.
func WithCanvas(c core.Canvas) Option {
	return func(o *Options) { o.Graph = append(o.Graph, core.WithCanvas(c)) }
}

// WithSeed makes node placement deterministic.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Graph = append(o.Graph, core.WithSeed(seed)) }
}

// DefaultOptions: discard logger, wall clock, default speed, autoplay on.
func DefaultOptions() Options {
	return Options{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Clock:    playback.RealClock(),
		Speed:    playback.DefaultSpeed,
		Autoplay: true,
	}
}
