// internal/common/camunda/camundatest/jobclient.go

// Package camundatest provides an in-memory worker.JobClient for handler tests.
package camundatest

import (
	"context"
	"sync"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"google.golang.org/grpc"
)

// JobClient records the commands a handler sends instead of talking to a gateway.
// CompleteErr, when set, is returned by every complete command.
type JobClient struct {
	CompleteErr error

	mu        sync.Mutex
	completed []*pb.CompleteJobRequest
	thrown    []*pb.ThrowErrorRequest
	failed    []*pb.FailJobRequest
}

func NewJobClient() *JobClient {
	return &JobClient{}
}

func (c *JobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	return commands.NewCompleteJobCommand(&gateway{client: c}, noRetry)
}

func (c *JobClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	return commands.NewFailJobCommand(&gateway{client: c}, noRetry)
}

func (c *JobClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	return commands.NewThrowErrorCommand(&gateway{client: c}, noRetry)
}

// Completed returns the complete requests that reached the gateway, including failed sends.
func (c *JobClient) Completed() []*pb.CompleteJobRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*pb.CompleteJobRequest(nil), c.completed...)
}

func (c *JobClient) Thrown() []*pb.ThrowErrorRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*pb.ThrowErrorRequest(nil), c.thrown...)
}

func (c *JobClient) Failed() []*pb.FailJobRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*pb.FailJobRequest(nil), c.failed...)
}

func noRetry(context.Context, error) bool { return false }

// gateway implements only the job commands; any other call panics on the nil embedded client.
type gateway struct {
	pb.GatewayClient
	client *JobClient
}

func (g *gateway) CompleteJob(ctx context.Context, in *pb.CompleteJobRequest, opts ...grpc.CallOption) (*pb.CompleteJobResponse, error) {
	g.client.mu.Lock()
	defer g.client.mu.Unlock()
	g.client.completed = append(g.client.completed, in)
	if g.client.CompleteErr != nil {
		return nil, g.client.CompleteErr
	}
	return &pb.CompleteJobResponse{}, nil
}

func (g *gateway) FailJob(ctx context.Context, in *pb.FailJobRequest, opts ...grpc.CallOption) (*pb.FailJobResponse, error) {
	g.client.mu.Lock()
	defer g.client.mu.Unlock()
	g.client.failed = append(g.client.failed, in)
	return &pb.FailJobResponse{}, nil
}

func (g *gateway) ThrowError(ctx context.Context, in *pb.ThrowErrorRequest, opts ...grpc.CallOption) (*pb.ThrowErrorResponse, error) {
	g.client.mu.Lock()
	defer g.client.mu.Unlock()
	g.client.thrown = append(g.client.thrown, in)
	return &pb.ThrowErrorResponse{}, nil
}
