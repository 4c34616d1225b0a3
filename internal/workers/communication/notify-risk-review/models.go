package notifyriskreview

import (
	awsx "github.com/ansar-mazhar/Loan-Approval-System/internal/common/aws"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/logger"
)

const (
	StatusSent     = "sent"
	StatusSkipped  = "skipped"
	StatusDisabled = "disabled"
)

const (
	ChannelSNS   = "sns"
	ChannelEmail = "email"
)

type Input struct {
	AssessmentID       string  `json:"assessmentId"`
	ApplicationID      string  `json:"applicationId,omitempty"`
	Verdict            string  `json:"verdict"`
	Probability        float64 `json:"probability"`
	ProbabilityDisplay string  `json:"probabilityDisplay"`
	ThresholdDisplay   string  `json:"thresholdDisplay,omitempty"`
	LoanPercentIncome  float64 `json:"loanPercentIncome,omitempty"`
	ModelVersion       string  `json:"modelVersion,omitempty"`
	// SNSMessageID is set when an earlier attempt already published the alert.
	SNSMessageID string `json:"snsMessageId,omitempty"`
}

type Output struct {
	NotificationID string   `json:"notificationId"`
	Status         string   `json:"notificationStatus"`
	Channels       []string `json:"notificationChannels"`
	SNSMessageID   string   `json:"snsMessageId,omitempty"`
	EmailMessageID string   `json:"emailMessageId,omitempty"`
	SentAt         string   `json:"notifiedAt"`
}

func (o *Output) ToVariables() map[string]interface{} {
	channels := o.Channels
	if channels == nil {
		channels = []string{}
	}
	vars := map[string]interface{}{
		"notificationId":       o.NotificationID,
		"notificationStatus":   o.Status,
		"notificationChannels": channels,
		"notifiedAt":           o.SentAt,
	}
	if o.SNSMessageID != "" {
		vars["snsMessageId"] = o.SNSMessageID
	}
	if o.EmailMessageID != "" {
		vars["emailMessageId"] = o.EmailMessageID
	}
	return vars
}

type ServiceDependencies struct {
	SNS    awsx.SNSPublisher
	SES    awsx.SESSender
	Logger logger.Logger
}
