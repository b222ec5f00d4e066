// internal/jobstore/memory.go
package jobstore

import (
	"context"
	"encoding/json"
	"sync"

	"transit-report/internal/common/errors"
	"transit-report/internal/models"
)

// MemoryStore keeps artifacts in process. Values are stored encoded so callers never share slices.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) ClaimPlan(ctx context.Context, planID string) error {
	return s.create(planID, artifactClaim, []byte(planID))
}

func (s *MemoryStore) PutJobs(ctx context.Context, planID string, jobs []models.SlideJob) error {
	raw, err := json.Marshal(jobs)
	if err != nil {
		return errors.NewJobStoreFailedError("encode jobs", err)
	}
	return s.create(planID, artifactJobs, raw)
}

func (s *MemoryStore) GetJobs(ctx context.Context, planID string) ([]models.SlideJob, error) {
	raw, ok := s.get(planID, artifactJobs)
	if !ok {
		return nil, errors.NewPlanNotFoundError(planID)
	}
	var jobs []models.SlideJob
	if err := json.Unmarshal(raw, &jobs); err != nil {
		return nil, errors.NewJobStoreFailedError("decode jobs", err)
	}
	return jobs, nil
}

func (s *MemoryStore) PutElements(ctx context.Context, planID string, elements models.ElementSet) error {
	raw, err := json.Marshal(elements)
	if err != nil {
		return errors.NewJobStoreFailedError("encode elements", err)
	}
	return s.create(planID, artifactElements, raw)
}

func (s *MemoryStore) GetElements(ctx context.Context, planID string) (*models.ElementSet, error) {
	raw, ok := s.get(planID, artifactElements)
	if !ok {
		return nil, errors.NewPlanNotFoundError(planID)
	}
	var set models.ElementSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, errors.NewJobStoreFailedError("decode elements", err)
	}
	return &set, nil
}

func (s *MemoryStore) create(planID, artifact string, raw []byte) error {
	key := planID + ":" + artifact

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[key]; exists {
		return conflictError(planID, artifact)
	}
	s.data[key] = raw
	return nil
}

func (s *MemoryStore) get(planID, artifact string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.data[planID+":"+artifact]
	return raw, ok
}
