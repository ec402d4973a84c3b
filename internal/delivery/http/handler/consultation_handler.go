package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/usecase"
	"hospital-portal/pkg/response"
	"hospital-portal/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// maxImageSize caps the uploaded scan at 10 MiB.
const maxImageSize = 10 << 20

type ConsultationHandler struct {
	consultationUsecase usecase.ConsultationUsecase
	validator           *validator.CustomValidator
}

func NewConsultationHandler(consultationUsecase usecase.ConsultationUsecase, validator *validator.CustomValidator) *ConsultationHandler {
	return &ConsultationHandler{
		consultationUsecase: consultationUsecase,
		validator:           validator,
	}
}

// Submit accepts a multipart form with a "file" part holding the
// medical image and "patient_id" and "doctor_id" text fields.
func (h *ConsultationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}

	req := dto.SubmitConsultationRequest{
		PatientID: r.FormValue("patient_id"),
		DoctorID:  r.FormValue("doctor_id"),
	}

	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
		image, readErr := io.ReadAll(file)
		if readErr != nil {
			response.Error(w, http.StatusBadRequest, "Failed to read uploaded file", nil)
			return
		}
		req.Image = image
		req.ImageName = header.Filename
	}

	consultation, err := h.consultationUsecase.Submit(r.Context(), &req)
	if err != nil {
		var missing *usecase.MissingFieldError
		switch {
		case errors.As(err, &missing):
			response.Error(w, http.StatusBadRequest, missing.Error(), map[string]string{"field": missing.Field})
		case errors.Is(err, usecase.ErrAnalysisFailed):
			response.Error(w, http.StatusBadGateway, "Image analysis failed", nil)
		default:
			response.InternalServerError(w, "Failed to process consultation")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Consultation report generated successfully", consultation)
}

func (h *ConsultationHandler) Dispose(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	consultationID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid consultation ID", nil)
		return
	}

	var req dto.DisposeConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	consultation, err := h.consultationUsecase.Dispose(r.Context(), consultationID, req.Decision)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrConsultationNotFound):
			response.NotFound(w, "Consultation not found")
		case errors.Is(err, usecase.ErrInvalidDecision):
			response.Error(w, http.StatusBadRequest, "Decision must be Approve or Reject", nil)
		case errors.Is(err, usecase.ErrInvalidTransition):
			response.Error(w, http.StatusConflict, "Consultation is not awaiting disposition", nil)
		default:
			response.InternalServerError(w, "Failed to dispose consultation")
		}
		return
	}

	response.Success(w, http.StatusOK, "Consultation disposed successfully", consultation)
}

func (h *ConsultationHandler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	consultationID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid consultation ID", nil)
		return
	}

	consultation, err := h.consultationUsecase.Get(r.Context(), consultationID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrConsultationNotFound):
			response.NotFound(w, "Consultation not found")
		default:
			response.InternalServerError(w, "Failed to get consultation")
		}
		return
	}

	response.Success(w, http.StatusOK, "Consultation retrieved successfully", consultation)
}

func (h *ConsultationHandler) List(w http.ResponseWriter, r *http.Request) {
	doctorID := r.URL.Query().Get("doctor_id")

	var (
		consultations *dto.ConsultationListResponse
		err           error
	)
	if doctorID != "" {
		consultations, err = h.consultationUsecase.ListByDoctor(r.Context(), doctorID)
	} else {
		consultations, err = h.consultationUsecase.List(r.Context())
	}
	if err != nil {
		response.InternalServerError(w, "Failed to get consultations")
		return
	}

	response.Success(w, http.StatusOK, "Consultations retrieved successfully", consultations)
}

func (h *ConsultationHandler) CheckSymptoms(w http.ResponseWriter, r *http.Request) {
	var req dto.SymptomCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.consultationUsecase.CheckSymptoms(r.Context(), &req)
	if err != nil {
		var missing *usecase.MissingFieldError
		switch {
		case errors.As(err, &missing):
			response.Error(w, http.StatusBadRequest, missing.Error(), map[string]string{"field": missing.Field})
		default:
			response.InternalServerError(w, "Failed to check symptoms")
		}
		return
	}

	response.Success(w, http.StatusOK, "Symptom check completed", result)
}
