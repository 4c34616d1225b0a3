package assessdefaultrisk

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/config"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/errors"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/logger"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/metrics"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/observability"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/risk"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/risk/form"
)

const TaskType = "assess-default-risk"

type Handler struct {
	config       *Config
	logger       logger.Logger
	service      ServiceInterface
	obs          *observability.Observability
	errorHandler *errors.ErrorHandler
}

type HandlerOptions struct {
	AppConfig     *config.Config
	CustomConfig  *Config
	Assessor      *risk.Assessor
	Observability *observability.Observability
	Logger        logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if opts.Assessor == nil {
		return nil, fmt.Errorf("assessor is required for %s", TaskType)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"worker": TaskType})

	return &Handler{
		config:       workerConfig,
		logger:       log,
		service:      NewService(opts.Assessor),
		obs:          opts.Observability,
		errorHandler: errors.NewErrorHandler(log, workerConfig.MaxRetries),
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	ctx, span := h.obs.StartSpan(ctx, TaskType,
		attribute.Int64("job.key", job.GetKey()),
		attribute.Int64("process.instance.key", job.GetProcessInstanceKey()),
	)
	defer span.End()

	h.logger.Info("Processing default risk assessment", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	variables, err := job.GetVariablesAsMap()
	if err != nil {
		h.fail(ctx, client, job, errors.NewApplicantValidationFailedError(
			fmt.Sprintf("job variables are not a JSON object: %v", err)))
		span.SetStatus(codes.Error, "invalid variables")
		return
	}

	applicant, err := parseInput(variables)
	if err != nil {
		h.fail(ctx, client, job, form.ToStandardError(err))
		span.SetStatus(codes.Error, err.Error())
		return
	}

	output, err := h.service.Execute(ctx, *applicant)
	if err != nil {
		h.fail(ctx, client, job, form.ToStandardError(err))
		span.SetStatus(codes.Error, err.Error())
		return
	}

	request, err := client.NewCompleteJobCommand().JobKey(job.GetKey()).VariablesFromMap(output.ToVariables())
	if err == nil {
		_, err = request.Send(ctx)
	}
	if err != nil {
		h.logger.Error("Failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		span.SetStatus(codes.Error, "complete job failed")
		return
	}

	verdict := string(output.Assessment.Verdict)
	span.SetAttributes(
		attribute.String("risk.verdict", verdict),
		attribute.Float64("risk.probability", output.Assessment.Probability),
	)
	h.obs.RecordAssessment(ctx, "worker", verdict)
	h.obs.RecordJobProcessed(ctx, "completed")
	h.obs.RecordJobDuration(ctx, time.Since(startTime), "completed")
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())

	h.logger.Info("Default risk assessment completed", map[string]interface{}{
		"jobKey":       job.GetKey(),
		"assessmentId": output.Assessment.AssessmentID,
		"verdict":      verdict,
	})
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, stdErr *errors.StandardError) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.obs.RecordJobProcessed(ctx, "failed")
	h.errorHandler.HandleJobError(ctx, client, job, stdErr)
}

func (h *Handler) GetTaskType() string {
	return TaskType
}

func (h *Handler) GetConfig() *Config {
	return h.config
}

func createConfigFromAppConfig(appConfig *config.Config, customConfig *Config) *Config {
	if customConfig != nil {
		return customConfig
	}

	cfg := DefaultConfig()
	if appConfig != nil {
		if workerCfg, exists := appConfig.Workers[TaskType]; exists {
			cfg.Enabled = workerCfg.Enabled
			if workerCfg.MaxJobsActive > 0 {
				cfg.MaxJobsActive = workerCfg.MaxJobsActive
			}
			if workerCfg.Timeout > 0 {
				cfg.Timeout = time.Duration(workerCfg.Timeout) * time.Millisecond
			}
			cfg.MaxRetries = workerCfg.MaxRetries
		}
	}
	return cfg
}
