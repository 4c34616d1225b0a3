package notifyriskreview

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	awsx "github.com/ansar-mazhar/Loan-Approval-System/internal/common/aws"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/config"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/errors"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/logger"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/metrics"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/validation"
)

const TaskType = "notify-risk-review"

type Handler struct {
	config       *Config
	logger       logger.Logger
	service      ServiceInterface
	errorHandler *errors.ErrorHandler
}

type HandlerOptions struct {
	AppConfig    *config.Config
	CustomConfig *Config
	// SNS and SES default to real clients for the configured region when the
	// channel is enabled and no client is given.
	SNS    awsx.SNSPublisher
	SES    awsx.SESSender
	Logger logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"worker": TaskType})

	snsClient, sesClient := opts.SNS, opts.SES
	if workerConfig.SNSEnabled && snsClient == nil {
		c, err := awsx.NewSNSClient(context.Background(), workerConfig.AWSRegion)
		if err != nil {
			return nil, err
		}
		snsClient = c
	}
	if workerConfig.EmailEnabled && sesClient == nil {
		c, err := awsx.NewSESClient(context.Background(), workerConfig.AWSRegion)
		if err != nil {
			return nil, err
		}
		sesClient = c
	}

	return &Handler{
		config: workerConfig,
		logger: log,
		service: NewService(ServiceDependencies{
			SNS:    snsClient,
			SES:    sesClient,
			Logger: log,
		}, workerConfig),
		errorHandler: errors.NewErrorHandler(log, workerConfig.MaxRetries),
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("Processing risk review notification", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
		"retries":            job.GetRetries(),
	})

	input, stdErr := h.parseInput(job)
	if stdErr != nil {
		h.fail(ctx, client, job, stdErr)
		return
	}

	output, err := h.service.Execute(ctx, input)
	if err != nil {
		h.fail(ctx, client, job, errors.Normalize(err))
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
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	h.logger.Info("Risk review notification completed", map[string]interface{}{
		"jobKey": job.GetKey(),
		"status": output.Status,
	})
}

func (h *Handler) parseInput(job entities.Job) (*Input, *errors.StandardError) {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, errors.NewInvalidJobInputError(fmt.Sprintf("job variables are not a JSON object: %v", err))
	}

	result := validation.ValidateInput(variables, GetInputSchema())
	if !result.Valid {
		return nil, errors.NewInvalidJobInputError(fmt.Sprintf("Validation errors: %v", result.GetErrorMessages())).
			WithMetadata("validationErrors", result.Errors)
	}

	var input Input
	if err := json.Unmarshal([]byte(job.GetVariables()), &input); err != nil {
		return nil, errors.NewInvalidJobInputError(fmt.Sprintf("decode variables: %v", err))
	}
	return &input, nil
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, stdErr *errors.StandardError) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
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
	if appConfig == nil {
		return cfg
	}

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

	n := appConfig.Notifications
	cfg.SNSEnabled = n.SNS.Enabled
	cfg.TopicARN = n.SNS.TopicARN
	cfg.EmailEnabled = n.Email.Enabled
	cfg.FromEmail = n.Email.FromEmail
	cfg.ToEmail = n.Email.ToEmail
	if n.AWS.Region != "" {
		cfg.AWSRegion = n.AWS.Region
	}
	return cfg
}
