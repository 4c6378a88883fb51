// Package scheduler runs the portal's periodic maintenance: sweeping idle
// order review workspaces and checking the health of the Redis pool.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"DoctorPortal/database"
	"DoctorPortal/metrics"
	"DoctorPortal/services"
	"DoctorPortal/utils"

	"github.com/go-co-op/gocron"
)

// Maintenance owns the background jobs of the portal process.
type Maintenance struct {
	orders    *services.OrderService
	scheduler *gocron.Scheduler
}

func NewMaintenance(orders *services.OrderService) *Maintenance {
	return &Maintenance{
		orders:    orders,
		scheduler: gocron.NewScheduler(time.Local),
	}
}

// Start schedules the hourly workspace sweep and the Redis pool monitor,
// then runs the scheduler asynchronously.
func (m *Maintenance) Start() error {
	if _, err := m.scheduler.Every(1).Hour().Do(m.sweepWorkspaces); err != nil {
		return fmt.Errorf("failed to schedule workspace sweep: %w", err)
	}
	if _, err := m.scheduler.Every(5).Minutes().Do(func() {
		database.MonitorRedisPool(context.Background())
	}); err != nil {
		return fmt.Errorf("failed to schedule redis pool monitor: %w", err)
	}

	m.scheduler.StartAsync()
	return nil
}

// Stop halts the scheduler.
func (m *Maintenance) Stop() {
	m.scheduler.Stop()
}

func (m *Maintenance) sweepWorkspaces() {
	removed := m.orders.SweepIdle(utils.SessionExpiry)
	if removed > 0 {
		metrics.ReviewWorkspacesSwept.Add(float64(removed))
		log.Printf("maintenance: removed %d idle review workspaces", removed)
	}
}
