package services

import (
	"context"
	"time"
)

// HealthPingTimeout bounds the database check behind /health.
const HealthPingTimeout = 2 * time.Second

// Pinger is satisfied by *database.DB.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthReport is the /health payload.
type HealthReport struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
}

// Healthy reports whether every dependency answered.
func (r *HealthReport) Healthy() bool {
	return r.Status == "ok"
}

// HealthService checks the dependencies the API cannot serve without.
type HealthService interface {
	Check(ctx context.Context) *HealthReport
}

type healthService struct {
	db Pinger
}

// NewHealthService creates a new instance of HealthService.
func NewHealthService(db Pinger) HealthService {
	return &healthService{db: db}
}

func (s *healthService) Check(ctx context.Context) *HealthReport {
	report := &HealthReport{Status: "ok", Timestamp: time.Now().UTC(), Database: "connected"}

	pingCtx, cancel := context.WithTimeout(ctx, HealthPingTimeout)
	defer cancel()
	if err := s.db.Ping(pingCtx); err != nil {
		report.Status = "degraded"
		report.Database = "disconnected"
	}
	return report
}
