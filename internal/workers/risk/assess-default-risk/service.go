package assessdefaultrisk

import (
	"context"

	"github.com/ansar-mazhar/Loan-Approval-System/internal/models"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/risk"
)

type ServiceInterface interface {
	Execute(ctx context.Context, applicant models.Applicant) (*Output, error)
}

type Service struct {
	assessor *risk.Assessor
}

func NewService(assessor *risk.Assessor) *Service {
	return &Service{assessor: assessor}
}

func (s *Service) Execute(ctx context.Context, applicant models.Applicant) (*Output, error) {
	assessment, err := s.assessor.Assess(ctx, applicant)
	if err != nil {
		return nil, err
	}
	return &Output{Assessment: assessment}, nil
}
