package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

type ErrorHandler struct {
	logger     Logger
	maxRetries int
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// JobOutcome is what HandleJobError did with a failed job.
type JobOutcome string

const (
	OutcomeRetried  JobOutcome = "retried"
	OutcomeThrown   JobOutcome = "thrown"
	OutcomeIncident JobOutcome = "incident"
)

// NewErrorHandler returns a handler whose retries never exceed maxRetries,
// the worker's max_retries setting. Zero disables retries for the worker.
func NewErrorHandler(logger Logger, maxRetries int) *ErrorHandler {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &ErrorHandler{logger: logger, maxRetries: maxRetries}
}

// RetryLimit is the number of retries a job failing with code gets on a
// worker capped at maxRetries.
func RetryLimit(code ErrorCode, maxRetries int) int {
	return min(GetRetryCount(code), maxRetries)
}

// Decide picks how a job failing with stdErr is reported to the engine.
// Retryable codes fail with retries, business codes are thrown as BPMN errors,
// and everything else fails with zero retries so an incident is raised.
func Decide(stdErr *StandardError, jobRetries int32, maxRetries int) JobOutcome {
	if stdErr.Retryable && RetryLimit(stdErr.Code, maxRetries) > 0 && jobRetries > 0 {
		return OutcomeRetried
	}
	if IsBusinessErrorCode(stdErr.Code) {
		return OutcomeThrown
	}
	return OutcomeIncident
}

func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) JobOutcome {
	stdErr := Normalize(err)
	bpmnErr := ConvertToBPMNError(stdErr)
	outcome := Decide(stdErr, job.Retries, h.maxRetries)

	h.logError(job, stdErr, bpmnErr, outcome)

	switch outcome {
	case OutcomeRetried:
		h.failJob(ctx, client, job, bpmnErr, retriesLeft(job.Retries, RetryLimit(stdErr.Code, h.maxRetries)))
	case OutcomeThrown:
		h.throwBPMNError(ctx, client, job, bpmnErr)
	default:
		h.failJob(ctx, client, job, bpmnErr, 0)
	}
	return outcome
}

// Normalize returns err as a StandardError, wrapping unknown errors as internal.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

func retriesLeft(jobRetries int32, maxRetries int) int32 {
	// job.Retries counts down from the process definition; never raise it
	if int(jobRetries) < maxRetries {
		return jobRetries - 1
	}
	return int32(maxRetries) - 1
}

func (h *ErrorHandler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError, retries int32) {
	if retries < 0 {
		retries = 0
	}
	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(retries).
		ErrorMessage(bpmnErr.Message)

	if varsJSON, err := json.Marshal(bpmnErr.ToErrorVariables()); err == nil {
		if withVars, err := cmd.VariablesFromString(string(varsJSON)); err == nil {
			_, _ = withVars.Send(ctx)
			return
		}
	}
	_, _ = cmd.Send(ctx)
}

func (h *ErrorHandler) throwBPMNError(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	if varsJSON, err := json.Marshal(bpmnErr.ToErrorVariables()); err == nil {
		if withVars, err := cmd.VariablesFromString(string(varsJSON)); err == nil {
			_, _ = withVars.Send(ctx)
			return
		}
	}
	_, _ = cmd.Send(ctx)
}

func (h *ErrorHandler) logError(job entities.Job, stdErr *StandardError, bpmnErr *BPMNError, outcome JobOutcome) {
	h.logger.Error("Job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(stdErr.Code),
		"bpmnErrorCode":    bpmnErr.Code,
		"message":          bpmnErr.Message,
		"details":          stdErr.Details,
		"retryable":        stdErr.Retryable,
		"outcome":          string(outcome),
		"errorCategory":    GetErrorCategory(stdErr.Code),
		"workflowInstance": job.ProcessInstanceKey,
	})
}
