//go:build linux
// +build linux

package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

// MPRISController implements MediaController over the D-Bus session bus
type MPRISController struct {
	cfg    *SafeConfig
	logger *zap.Logger

	mu   sync.Mutex
	conn *dbus.Conn
}

// NewMediaController creates a new media controller for the current platform
func NewMediaController(cfg *SafeConfig, logger *zap.Logger) MediaController {
	return &MPRISController{cfg: cfg, logger: logger}
}

// player returns the configured player's object, connecting on first use
func (p *MPRISController) player() (dbus.BusObject, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || !p.conn.Connected() {
		conn, err := dbus.SessionBus()
		if err != nil {
			return nil, fmt.Errorf("failed to connect to session bus: %w", err)
		}
		p.conn = conn
	}
	name := mprisBusName(p.cfg.Get().Source.Player)
	return p.conn.Object(name, mprisPath), nil
}

func getProperty(ctx context.Context, obj dbus.BusObject, prop string) (dbus.Variant, error) {
	var v dbus.Variant
	err := obj.CallWithContext(ctx, propertiesGet, 0, mprisPlayerIface, prop).Store(&v)
	return v, err
}

func (p *MPRISController) NowPlaying(ctx context.Context) (NowPlaying, error) {
	obj, err := p.player()
	if err != nil {
		return NowPlaying{}, err
	}

	status, err := getProperty(ctx, obj, "PlaybackStatus")
	if err != nil {
		// The player is not on the bus
		p.logger.Debug("PlaybackStatus unavailable",
			zap.String("player", string(obj.Destination())),
			zap.Error(err))
		return NowPlaying{}, fmt.Errorf("%w: %w", ErrNothingPlaying, err)
	}

	metadata, err := getProperty(ctx, obj, "Metadata")
	if err != nil {
		return NowPlaying{}, fmt.Errorf("failed to read metadata: %w", err)
	}

	return parseMPRISMetadata(status, metadata)
}

func (p *MPRISController) Control(ctx context.Context, command string) error {
	method, err := mprisMethod(command)
	if err != nil {
		return err
	}
	obj, err := p.player()
	if err != nil {
		return err
	}
	if call := obj.CallWithContext(ctx, method, 0); call.Err != nil {
		return fmt.Errorf("%s failed: %w", method, call.Err)
	}
	return nil
}
