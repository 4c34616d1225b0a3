package notifyriskreview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	awsx "github.com/ansar-mazhar/Loan-Approval-System/internal/common/aws"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/errors"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/logger"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/metrics"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/models"
)

type ServiceInterface interface {
	Execute(ctx context.Context, input *Input) (*Output, error)
}

type Service struct {
	config *Config
	logger logger.Logger
	sns    awsx.SNSPublisher
	ses    awsx.SESSender
	now    func() time.Time
	newID  func() string
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config: config,
		logger: deps.Logger,
		sns:    deps.SNS,
		ses:    deps.SES,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// Execute alerts the review desk about a high-risk assessment. Low-risk
// assessments are skipped and nothing is sent when both channels are off.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	out := &Output{
		NotificationID: s.newID(),
		SentAt:         s.now().Format(time.RFC3339),
	}

	if input.Verdict != string(models.VerdictHighRisk) {
		out.Status = StatusSkipped
		s.logger.Debug("Assessment below threshold, no review needed", map[string]interface{}{
			"assessmentId": input.AssessmentID,
		})
		return out, nil
	}

	if !s.config.SNSEnabled && !s.config.EmailEnabled {
		out.Status = StatusDisabled
		metrics.RiskNotificationsSent.WithLabelValues("none", StatusDisabled).Inc()
		return out, nil
	}

	subject := fmt.Sprintf("HIGH RISK loan application %s", displayID(input))
	body := renderBody(input)

	if s.config.SNSEnabled {
		if input.SNSMessageID != "" {
			out.SNSMessageID = input.SNSMessageID
			s.logger.Debug("SNS alert already published", map[string]interface{}{
				"assessmentId": input.AssessmentID,
				"snsMessageId": input.SNSMessageID,
			})
		} else {
			id, err := awsx.PublishAlert(ctx, s.sns, s.config.TopicARN, subject, body, map[string]string{
				"verdict":      input.Verdict,
				"assessmentId": input.AssessmentID,
			})
			if err != nil {
				metrics.RiskNotificationsSent.WithLabelValues(ChannelSNS, "failed").Inc()
				return nil, errors.NewNotificationSendFailedError(ChannelSNS, err)
			}
			out.SNSMessageID = id
			metrics.RiskNotificationsSent.WithLabelValues(ChannelSNS, StatusSent).Inc()
		}
		out.Channels = append(out.Channels, ChannelSNS)
	}

	if s.config.EmailEnabled {
		id, err := awsx.SendTextEmail(ctx, s.ses, s.config.FromEmail, s.config.ToEmail, subject, body)
		if err != nil {
			metrics.RiskNotificationsSent.WithLabelValues(ChannelEmail, "failed").Inc()
			sendErr := errors.NewNotificationSendFailedError(ChannelEmail, err)
			// the failure variables carry the published alert into the retried job
			if out.SNSMessageID != "" {
				sendErr = sendErr.WithMetadata("snsMessageId", out.SNSMessageID)
			}
			return nil, sendErr
		}
		out.EmailMessageID = id
		out.Channels = append(out.Channels, ChannelEmail)
		metrics.RiskNotificationsSent.WithLabelValues(ChannelEmail, StatusSent).Inc()
	}

	out.Status = StatusSent
	s.logger.Info("Risk review notification sent", map[string]interface{}{
		"assessmentId":   input.AssessmentID,
		"notificationId": out.NotificationID,
		"channels":       strings.Join(out.Channels, ","),
	})
	return out, nil
}

func displayID(input *Input) string {
	if input.ApplicationID != "" {
		return input.ApplicationID
	}
	return input.AssessmentID
}

func renderBody(input *Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Prediction: %s\n", models.VerdictHighRisk.Summary())
	fmt.Fprintf(&b, "Probability of default: %s\n", input.ProbabilityDisplay)
	if input.ThresholdDisplay != "" {
		fmt.Fprintf(&b, "Decision threshold: %s\n", input.ThresholdDisplay)
	}
	if input.LoanPercentIncome > 0 {
		fmt.Fprintf(&b, "Loan percent income: %.3f\n", input.LoanPercentIncome)
	}
	fmt.Fprintf(&b, "Assessment: %s\n", input.AssessmentID)
	if input.ApplicationID != "" {
		fmt.Fprintf(&b, "Application: %s\n", input.ApplicationID)
	}
	if input.ModelVersion != "" {
		fmt.Fprintf(&b, "Model version: %s\n", input.ModelVersion)
	}
	return b.String()
}
