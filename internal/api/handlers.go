// internal/api/handlers.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/ansar-mazhar/Loan-Approval-System/internal/common/errors"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/risk/form"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   s.now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	a := s.assessor.Load()
	if a == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"time":   s.now().Format(time.RFC3339),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":       "ready",
		"modelVersion": a.Bundle().ModelVersion,
		"time":         s.now().Format(time.RFC3339),
	})
}

func (s *Server) handleForm(w http.ResponseWriter, _ *http.Request) {
	a := s.assessor.Load()
	if a == nil {
		writeError(w, apperrors.NewInternalError(fmt.Errorf("artifacts not loaded")), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, form.Describe(a.Bundle()))
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	a := s.assessor.Load()
	if a == nil {
		writeError(w, apperrors.NewInternalError(fmt.Errorf("artifacts not loaded")), http.StatusServiceUnavailable)
		return
	}

	var vars map[string]interface{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&vars); err != nil {
		writeError(w, apperrors.NewApplicantValidationFailedError(fmt.Sprintf("request body must be a JSON object: %v", err)),
			http.StatusBadRequest)
		return
	}

	applicant, err := form.Parse(vars)
	if err != nil {
		s.fail(w, err)
		return
	}

	assessment, err := a.Assess(r.Context(), *applicant)
	if err != nil {
		s.fail(w, err)
		return
	}

	s.obs.RecordAssessment(r.Context(), "api", string(assessment.Verdict))
	writeJSON(w, http.StatusOK, assessment)
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	stdErr := form.ToStandardError(err)
	status := http.StatusInternalServerError
	if apperrors.IsBusinessErrorCode(stdErr.Code) {
		status = http.StatusBadRequest
	} else {
		s.logger.Error("Assessment request failed", map[string]interface{}{
			"errorCode": string(stdErr.Code),
			"error":     err.Error(),
		})
	}
	writeError(w, stdErr, status)
}

type errorResponse struct {
	Error *apperrors.StandardError `json:"error"`
}

func writeError(w http.ResponseWriter, stdErr *apperrors.StandardError, status int) {
	writeJSON(w, status, errorResponse{Error: stdErr})
}
