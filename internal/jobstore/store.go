// internal/jobstore/store.go
package jobstore

import (
	"context"
	"fmt"
	"time"

	"transit-report/internal/common/config"
	"transit-report/internal/common/database"
	"transit-report/internal/common/errors"
	"transit-report/internal/models"
)

// Store hands slide jobs from plan compilation to element materialization.
// Every write is an exclusive create keyed by plan id: a second write for the same
// plan and artifact fails with PLAN_ALREADY_EXISTS instead of overwriting.
type Store interface {
	ClaimPlan(ctx context.Context, planID string) error
	PutJobs(ctx context.Context, planID string, jobs []models.SlideJob) error
	GetJobs(ctx context.Context, planID string) ([]models.SlideJob, error)
	PutElements(ctx context.Context, planID string, elements models.ElementSet) error
	GetElements(ctx context.Context, planID string) (*models.ElementSet, error)
}

const (
	artifactClaim    = "claim"
	artifactJobs     = "jobs"
	artifactElements = "elements"
)

// New builds the store selected by cfg.Driver. redis may be nil for the memory driver.
func New(cfg config.JobStoreConfig, redis *database.RedisClient) (Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return NewMemoryStore(), nil
	case config.DriverRedis:
		if redis == nil {
			return nil, fmt.Errorf("redis job store requires a redis client")
		}
		return NewRedisStore(redis, cfg.KeyPrefix, time.Duration(cfg.TTL)*time.Second), nil
	default:
		return nil, fmt.Errorf("unknown job store driver %q", cfg.Driver)
	}
}

func conflictError(planID, artifact string) error {
	err := errors.NewPlanAlreadyExistsError(planID)
	err.Metadata = map[string]interface{}{"planId": planID, "artifact": artifact}
	return err
}
