package app

import "time"

// runLoop drives the engine at the configured tick interval until
// stopCh closes. Ticks while the engine is stopped are no-ops inside
// Tick itself, so the loop never needs to coordinate with the toggle.
func (a *App) runLoop(stopCh chan struct{}) {
	ticker := time.NewTicker(a.engine.Config().TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			a.engine.Tick(time.Now().UnixMilli())
		}
	}
}
