package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// monitorRunTimeout bounds one alert sweep, covering the price fetch and
// notification dispatch.
const monitorRunTimeout = 2 * time.Minute

// Monitor periodically re-evaluates alert conditions and dispatches
// notifications. It replaces manually refreshing the dashboard to notice a
// triggered stop loss.
type Monitor struct {
	alertService *AlertService
	schedule     string
	cron         *cron.Cron
}

// NewMonitor creates a monitor that runs the alert sweep on the given cron
// schedule (e.g. "@every 15m").
func NewMonitor(alertService *AlertService, schedule string) *Monitor {
	return &Monitor{
		alertService: alertService,
		schedule:     schedule,
		cron:         cron.New(),
	}
}

// Start registers the sweep job and starts the scheduler.
func (m *Monitor) Start() error {
	if _, err := m.cron.AddFunc(m.schedule, m.run); err != nil {
		return fmt.Errorf("failed to schedule alert monitor: %w", err)
	}
	m.cron.Start()
	log.Printf("Alert monitor started (schedule %s)", m.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (m *Monitor) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Alert monitor stopped")
}

func (m *Monitor) run() {
	ctx, cancel := context.WithTimeout(context.Background(), monitorRunTimeout)
	defer cancel()

	alerts, err := m.alertService.EvaluateAndNotify(ctx)
	if err != nil {
		log.Printf("Alert sweep failed: %v", err)
		return
	}
	log.Printf("Alert sweep completed: %d active alerts", len(alerts))
}
