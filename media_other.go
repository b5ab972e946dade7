//go:build !darwin && !linux
// +build !darwin,!linux

package main

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

var errUnsupportedPlatform = errors.New("now-playing is not supported on this platform")

type unsupportedController struct{}

// NewMediaController creates a new media controller for the current platform
func NewMediaController(cfg *SafeConfig, logger *zap.Logger) MediaController {
	logger.Warn("No media controller for this platform")
	return unsupportedController{}
}

func (unsupportedController) NowPlaying(context.Context) (NowPlaying, error) {
	return NowPlaying{}, errUnsupportedPlatform
}

func (unsupportedController) Control(context.Context, string) error {
	return errUnsupportedPlatform
}
