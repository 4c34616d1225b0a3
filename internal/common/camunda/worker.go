// internal/common/camunda/worker.go
package camunda

import (
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"

	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/config"
)

// WorkerManager opens job workers against one Zeebe client and closes them
// together on shutdown.
type WorkerManager struct {
	client    zbc.Client
	logger    *zap.Logger
	workers   []worker.JobWorker
	taskTypes []string
}

func NewWorkerManager(client zbc.Client, logger *zap.Logger) *WorkerManager {
	return &WorkerManager{client: client, logger: logger}
}

// Register opens a job worker for taskType unless it is disabled in config.
// It reports whether a worker was opened.
func (m *WorkerManager) Register(taskType string, wcfg config.WorkerConfig, handler worker.JobHandler) bool {
	if !wcfg.Enabled {
		m.logger.Info("worker disabled", zap.String("taskType", taskType))
		return false
	}

	builder := m.client.NewJobWorker().
		JobType(taskType).
		Handler(handler).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond)
	if wcfg.RequestTimeout > 0 {
		builder = builder.RequestTimeout(time.Duration(wcfg.RequestTimeout) * time.Millisecond)
	}
	jobWorker := builder.Open()

	m.workers = append(m.workers, jobWorker)
	m.taskTypes = append(m.taskTypes, taskType)

	m.logger.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
		zap.Int("requestTimeout_ms", wcfg.RequestTimeout),
		zap.Int("maxRetries", wcfg.MaxRetries),
	)
	return true
}

// TaskTypes lists the task types with an open worker.
func (m *WorkerManager) TaskTypes() []string {
	return append([]string(nil), m.taskTypes...)
}

// Close stops every worker and waits for in-flight jobs to finish.
func (m *WorkerManager) Close() {
	for i, w := range m.workers {
		m.logger.Info("stopping worker", zap.String("taskType", m.taskTypes[i]))
		w.Close()
		w.AwaitClose()
	}
	m.workers = nil
}
