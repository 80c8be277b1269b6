package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/wifijump/internal/logger"
	"github.com/MrSnakeDoc/wifijump/internal/network"
)

// NetworkReloader keeps a network snapshot in sync with its source
type NetworkReloader struct {
	source        network.Source
	snapshot      *network.Snapshot
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	done          chan struct{}
	manualTrigger chan struct{}
}

// NewNetworkReloader creates a new network reloader.
// A nil manualTrigger disables manual reloads.
func NewNetworkReloader(
	source network.Source,
	snapshot *network.Snapshot,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *NetworkReloader {
	return &NetworkReloader{
		source:        source,
		snapshot:      snapshot,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		done:          make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the source once and, for non-static sources, keeps
// reloading it on every tick and manual trigger until Stop or ctx is done.
func (nr *NetworkReloader) Start(ctx context.Context) error {
	if err := nr.Reload(ctx); err != nil {
		close(nr.done)
		return fmt.Errorf("initial network load failed: %w", err)
	}

	if nr.source.Name() == network.SourceStatic {
		nr.logger.Debug("static network source, periodic reload disabled")
		go nr.waitManual(ctx)
		return nil
	}

	ticker := time.NewTicker(nr.interval)
	go func() {
		defer close(nr.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				nr.reloadAndLog(ctx)
			case <-nr.manualTrigger:
				nr.logger.Info("manual network reload triggered")
				nr.reloadAndLog(ctx)
			case <-nr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// waitManual serves manual triggers for a static source.
func (nr *NetworkReloader) waitManual(ctx context.Context) {
	defer close(nr.done)
	for {
		select {
		case <-nr.manualTrigger:
			nr.logger.Info("manual network reload triggered")
			nr.reloadAndLog(ctx)
		case <-nr.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop stops the reload loop and waits for it to exit. Call it only
// after Start.
func (nr *NetworkReloader) Stop() {
	nr.stopOnce.Do(func() { close(nr.stopCh) })
	<-nr.done
}

func (nr *NetworkReloader) reloadAndLog(ctx context.Context) {
	if err := nr.Reload(ctx); err != nil {
		nr.logger.Error("failed to reload network state, keeping previous snapshot",
			logger.String("source", nr.source.Name()),
			logger.Error(err))
	}
}

// Reload reads the source and updates the snapshot.
// On error the previous snapshot is left untouched.
func (nr *NetworkReloader) Reload(ctx context.Context) error {
	state, err := nr.source.Load(ctx)
	if err != nil {
		return err
	}

	wasLoaded := nr.snapshot.Loaded()
	previous := nr.snapshot.SSID()
	nr.snapshot.Update(state)

	if wasLoaded && previous != state.SSID {
		nr.logger.Info("network changed",
			logger.String("source", state.Source),
			logger.String("from", previous),
			logger.String("to", state.SSID))
	} else {
		nr.logger.Debug("network state reloaded",
			logger.String("source", state.Source),
			logger.String("ssid", state.SSID))
	}
	return nil
}
