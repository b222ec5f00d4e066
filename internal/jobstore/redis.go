// internal/jobstore/redis.go
package jobstore

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"transit-report/internal/common/database"
	"transit-report/internal/common/errors"
	"transit-report/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store with SETNX, so exclusivity holds across worker replicas.
type RedisStore struct {
	client *database.RedisClient
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *database.RedisClient, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(planID, artifact string) string {
	return s.prefix + planID + ":" + artifact
}

func (s *RedisStore) ClaimPlan(ctx context.Context, planID string) error {
	return s.create(ctx, planID, artifactClaim, planID)
}

func (s *RedisStore) PutJobs(ctx context.Context, planID string, jobs []models.SlideJob) error {
	raw, err := json.Marshal(jobs)
	if err != nil {
		return errors.NewJobStoreFailedError("encode jobs", err)
	}
	return s.create(ctx, planID, artifactJobs, string(raw))
}

func (s *RedisStore) GetJobs(ctx context.Context, planID string) ([]models.SlideJob, error) {
	raw, err := s.get(ctx, planID, artifactJobs)
	if err != nil {
		return nil, err
	}
	var jobs []models.SlideJob
	if err := json.Unmarshal([]byte(raw), &jobs); err != nil {
		return nil, errors.NewJobStoreFailedError("decode jobs", err)
	}
	return jobs, nil
}

func (s *RedisStore) PutElements(ctx context.Context, planID string, elements models.ElementSet) error {
	raw, err := json.Marshal(elements)
	if err != nil {
		return errors.NewJobStoreFailedError("encode elements", err)
	}
	return s.create(ctx, planID, artifactElements, string(raw))
}

func (s *RedisStore) GetElements(ctx context.Context, planID string) (*models.ElementSet, error) {
	raw, err := s.get(ctx, planID, artifactElements)
	if err != nil {
		return nil, err
	}
	var set models.ElementSet
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		return nil, errors.NewJobStoreFailedError("decode elements", err)
	}
	return &set, nil
}

func (s *RedisStore) create(ctx context.Context, planID, artifact, value string) error {
	ok, err := s.client.SetNX(ctx, s.key(planID, artifact), value, s.ttl)
	if err != nil {
		return errors.NewJobStoreFailedError("setnx "+artifact, err)
	}
	if !ok {
		return conflictError(planID, artifact)
	}
	return nil
}

func (s *RedisStore) get(ctx context.Context, planID, artifact string) (string, error) {
	raw, err := s.client.Get(ctx, s.key(planID, artifact))
	if stderrors.Is(err, redis.Nil) {
		return "", errors.NewPlanNotFoundError(planID)
	}
	if err != nil {
		return "", errors.NewJobStoreFailedError("get "+artifact, err)
	}
	return raw, nil
}
