package validateapplicantdata

import (
	"context"
	"errors"

	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/logger"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/validation"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/risk"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/risk/form"
)

type ServiceInterface interface {
	Execute(ctx context.Context, variables map[string]interface{}) (*Output, error)
}

type Service struct {
	config *Config
	logger logger.Logger
}

func NewService(config *Config, log logger.Logger) *Service {
	return &Service{config: config, logger: log}
}

// Execute validates the applicant variables. Invalid input is returned as an
// error when ThrowOnInvalid is set and reported in the output otherwise.
func (s *Service) Execute(_ context.Context, variables map[string]interface{}) (*Output, error) {
	applicant, err := form.Parse(variables)
	if err == nil {
		s.logger.Debug("Applicant data valid", map[string]interface{}{
			"loanPercentIncome": applicant.LoanPercentIncome(),
		})
		return &Output{
			IsValid:           true,
			Applicant:         applicant,
			LoanPercentIncome: applicant.LoanPercentIncome(),
			ValidationErrors:  []validation.ValidationError{},
		}, nil
	}

	if s.config.ThrowOnInvalid {
		return nil, err
	}

	out := &Output{IsValid: false}
	var invalid *form.InvalidInputError
	var mapping *risk.MappingError
	switch {
	case errors.As(err, &invalid):
		out.ValidationErrors = invalid.Result.Errors
	case errors.As(err, &mapping):
		out.ValidationErrors = []validation.ValidationError{{
			Field:   form.FieldForColumn(mapping.Column),
			Message: mapping.Error(),
			Code:    "CATEGORY_UNKNOWN",
		}}
	default:
		return nil, err
	}

	s.logger.Info("Applicant data invalid", map[string]interface{}{
		"errorCount": len(out.ValidationErrors),
	})
	return out, nil
}
