// internal/workers/report/create-plan/handler_test.go
package createplan

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"transit-report/internal/common/camunda/camundatest"
	"transit-report/internal/common/config"
	"transit-report/internal/common/errors"
	"transit-report/internal/common/logger"
	"transit-report/internal/common/metrics"
	"transit-report/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helpers
// ==========================

type mockPlanner struct {
	mock.Mock
}

func (m *mockPlanner) CreatePlan(ctx context.Context, planID string, input *models.CreateResearchTaskInput) (*models.CreatePlanResult, error) {
	args := m.Called(ctx, planID, input)
	result, _ := args.Get(0).(*models.CreatePlanResult)
	return result, args.Error(1)
}

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)

	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                key,
		Type:               TaskType,
		ProcessInstanceKey: key * 10,
		BpmnProcessId:      "transit-report",
		ElementId:          "Activity_CreatePlan",
		CustomHeaders:      "{}",
		Worker:             "test-worker",
		Variables:          string(variablesJSON),
	}}
}

func createTestConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 2,
		Timeout:       5 * time.Second,
	}
}

func createTestHandler(t *testing.T, p Planner) *Handler {
	t.Helper()
	h, err := NewHandler(HandlerOptions{
		CustomConfig: createTestConfig(),
		Planner:      p,
		Logger:       logger.NewTestLogger(t),
	})
	require.NoError(t, err)
	return h
}

// ==========================
// Handler Tests
// ==========================

func TestHandler_NewHandler(t *testing.T) {
	t.Run("requires a planner", func(t *testing.T) {
		_, err := NewHandler(HandlerOptions{CustomConfig: createTestConfig(), Logger: logger.NewNoOpLogger()})
		assert.Error(t, err)
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		cfg := createTestConfig()
		cfg.Timeout = 0
		_, err := NewHandler(HandlerOptions{CustomConfig: cfg, Planner: &mockPlanner{}, Logger: logger.NewNoOpLogger()})
		assert.Error(t, err)
	})

	t.Run("reads the worker section of the app config", func(t *testing.T) {
		appCfg := &config.Config{Workers: map[string]config.WorkerConfig{
			TaskType: {Enabled: false, MaxJobsActive: 3, Timeout: 45000},
		}}
		h, err := NewHandler(HandlerOptions{AppConfig: appCfg, Planner: &mockPlanner{}, Logger: logger.NewNoOpLogger()})

		require.NoError(t, err)
		assert.False(t, h.IsEnabled())
		assert.Equal(t, 3, h.GetConfig().MaxJobsActive)
		assert.Equal(t, 45*time.Second, h.GetConfig().Timeout)
		assert.Equal(t, config.WorkerConfig{Enabled: false, MaxJobsActive: 3, Timeout: 45000}, h.GetConfig().WorkerConfig())
	})
}

func TestHandler_ParseInput(t *testing.T) {
	h := createTestHandler(t, &mockPlanner{})

	t.Run("plan id from process instance", func(t *testing.T) {
		job := createMockJob(7, map[string]interface{}{
			"subwayLines": []string{"N", "W"},
			"stats":       []map[string]string{{"id": "stats_1", "value": "12 min"}},
		})

		input, err := h.parseInput(job)

		require.NoError(t, err)
		assert.Equal(t, "70", input.PlanID)
		assert.Equal(t, []string{"N", "W"}, input.Research.SubwayLines)
	})

	t.Run("explicit plan id wins", func(t *testing.T) {
		input, err := h.parseInput(createMockJob(7, map[string]interface{}{"planId": "report-42"}))

		require.NoError(t, err)
		assert.Equal(t, "report-42", input.PlanID)
	})

	t.Run("invalid variables", func(t *testing.T) {
		_, err := h.parseInput(createMockJob(7, map[string]interface{}{"charts": "not-a-list"}))

		assert.True(t, errors.HasCode(err, errors.ErrCodeInputValidationFailed))
	})
}

func TestHandler_Execute(t *testing.T) {
	research := &models.CreateResearchTaskInput{SubwayLines: []string{"A"}}
	job := *models.NewCreateJob(models.ResearchTask{ReferenceElementKey: "k1"}, models.TextParams("A"))

	t.Run("success", func(t *testing.T) {
		p := &mockPlanner{}
		p.On("CreatePlan", mock.Anything, "plan-1", research).Return(&models.CreatePlanResult{
			PlanID:          "plan-1",
			TaskCount:       1,
			CreateSlideJobs: []models.SlideJob{job},
		}, nil)

		output, err := createTestHandler(t, p).Execute(context.Background(), &Input{PlanID: "plan-1", Research: research})

		require.NoError(t, err)
		assert.Equal(t, &Output{PlanID: "plan-1", TaskCount: 1, CreateSlideJobs: []models.SlideJob{job}}, output)
		p.AssertExpectations(t)
	})

	t.Run("planner failure", func(t *testing.T) {
		p := &mockPlanner{}
		p.On("CreatePlan", mock.Anything, "plan-1", research).Return(nil, errors.NewPlanAlreadyExistsError("plan-1"))

		output, err := createTestHandler(t, p).Execute(context.Background(), &Input{PlanID: "plan-1", Research: research})

		assert.Nil(t, output)
		assert.True(t, errors.HasCode(err, errors.ErrCodePlanAlreadyExists))
	})
}

func TestHandler_Handle(t *testing.T) {
	variables := map[string]interface{}{"planId": "plan-1", "subwayLines": []string{"A"}}
	result := &models.CreatePlanResult{PlanID: "plan-1", TaskCount: 1, CreateSlideJobs: []models.SlideJob{}}

	t.Run("completes the job", func(t *testing.T) {
		p := &mockPlanner{}
		p.On("CreatePlan", mock.Anything, "plan-1", mock.Anything).Return(result, nil)
		client := camundatest.NewJobClient()
		before := testutil.ToFloat64(metrics.WorkerJobsCompleted.WithLabelValues(TaskType))

		createTestHandler(t, p).Handle(client, createMockJob(7, variables))

		completed := client.Completed()
		require.Len(t, completed, 1)
		assert.Equal(t, int64(7), completed[0].JobKey)
		assert.Contains(t, completed[0].Variables, `"planId":"plan-1"`)
		assert.Empty(t, client.Thrown())
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.WorkerJobsCompleted.WithLabelValues(TaskType)))
	})

	t.Run("failed completion is not counted", func(t *testing.T) {
		p := &mockPlanner{}
		p.On("CreatePlan", mock.Anything, "plan-1", mock.Anything).Return(result, nil)
		client := camundatest.NewJobClient()
		client.CompleteErr = context.DeadlineExceeded
		before := testutil.ToFloat64(metrics.WorkerJobsCompleted.WithLabelValues(TaskType))

		createTestHandler(t, p).Handle(client, createMockJob(7, variables))

		assert.Len(t, client.Completed(), 1)
		assert.Empty(t, client.Thrown())
		assert.Equal(t, before, testutil.ToFloat64(metrics.WorkerJobsCompleted.WithLabelValues(TaskType)))
	})

	t.Run("planner failure throws a BPMN error", func(t *testing.T) {
		p := &mockPlanner{}
		p.On("CreatePlan", mock.Anything, "plan-1", mock.Anything).Return(nil, errors.NewPlanAlreadyExistsError("plan-1"))
		client := camundatest.NewJobClient()

		createTestHandler(t, p).Handle(client, createMockJob(7, variables))

		assert.Empty(t, client.Completed())
		assert.Empty(t, client.Failed())
		thrown := client.Thrown()
		require.Len(t, thrown, 1)
		assert.Equal(t, string(errors.ErrCodePlanAlreadyExists), thrown[0].ErrorCode)
	})
}

func TestOutput_WorkflowVariables(t *testing.T) {
	output := &Output{PlanID: "p", TaskCount: 0, CreateSlideJobs: []models.SlideJob{}}

	raw, err := json.Marshal(output)
	require.NoError(t, err)

	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &vars))
	assert.Equal(t, "p", vars["planId"])
	assert.Equal(t, float64(0), vars["taskCount"])
	assert.Equal(t, []interface{}{}, vars["createSlideJobs"])
}
