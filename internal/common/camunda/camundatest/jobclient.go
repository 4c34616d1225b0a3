// internal/common/camunda/camundatest/jobclient.go
package camundatest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"google.golang.org/grpc"
)

// Gateway records the job commands sent through it. Methods other than
// CompleteJob, FailJob and ThrowError panic via the nil embedded client.
type Gateway struct {
	pb.GatewayClient

	mu        sync.Mutex
	Completed []*pb.CompleteJobRequest
	Failed    []*pb.FailJobRequest
	Thrown    []*pb.ThrowErrorRequest
}

func (g *Gateway) CompleteJob(_ context.Context, in *pb.CompleteJobRequest, _ ...grpc.CallOption) (*pb.CompleteJobResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Completed = append(g.Completed, in)
	return &pb.CompleteJobResponse{}, nil
}

func (g *Gateway) FailJob(_ context.Context, in *pb.FailJobRequest, _ ...grpc.CallOption) (*pb.FailJobResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Failed = append(g.Failed, in)
	return &pb.FailJobResponse{}, nil
}

func (g *Gateway) ThrowError(_ context.Context, in *pb.ThrowErrorRequest, _ ...grpc.CallOption) (*pb.ThrowErrorResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Thrown = append(g.Thrown, in)
	return &pb.ThrowErrorResponse{}, nil
}

// JobClient implements worker.JobClient on top of a recording Gateway.
type JobClient struct {
	*Gateway
}

func NewJobClient() *JobClient {
	return &JobClient{Gateway: &Gateway{}}
}

func noRetry(context.Context, error) bool { return false }

func (c *JobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	return commands.NewCompleteJobCommand(c.Gateway, noRetry)
}

func (c *JobClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	return commands.NewFailJobCommand(c.Gateway, noRetry)
}

func (c *JobClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	return commands.NewThrowErrorCommand(c.Gateway, noRetry)
}

// CompletedVariables decodes the variables of the only completed job.
func (c *JobClient) CompletedVariables() map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Completed) != 1 {
		return nil
	}
	return decode(c.Completed[0].Variables)
}

// ThrownVariables decodes the variables of the only thrown BPMN error.
func (c *JobClient) ThrownVariables() map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Thrown) != 1 {
		return nil
	}
	return decode(c.Thrown[0].Variables)
}

// FailedVariables decodes the variables of the i-th failed job.
func (c *JobClient) FailedVariables(i int) map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i >= len(c.Failed) {
		return nil
	}
	return decode(c.Failed[i].Variables)
}

func decode(variables string) map[string]interface{} {
	out := map[string]interface{}{}
	if variables == "" {
		return out
	}
	_ = json.Unmarshal([]byte(variables), &out)
	return out
}

// NewJob builds an activated job carrying variables.
func NewJob(key int64, jobType string, retries int32, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                      key,
		Type:                     jobType,
		ProcessInstanceKey:       key * 10,
		BpmnProcessId:            "loan-risk-review",
		ProcessDefinitionVersion: 1,
		ProcessDefinitionKey:     1,
		ElementId:                "Activity_" + jobType,
		ElementInstanceKey:       1,
		CustomHeaders:            "{}",
		Worker:                   "test-worker",
		Retries:                  retries,
		Variables:                string(variablesJSON),
	}}
}
