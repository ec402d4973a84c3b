package converter

import (
	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
)

// ConsultationToResponse converts a ConsultationRequest entity to its DTO
func ConsultationToResponse(request *entity.ConsultationRequest) *dto.ConsultationResponse {
	if request == nil {
		return nil
	}

	return &dto.ConsultationResponse{
		ID:                request.ID,
		PatientID:         request.PatientID,
		DoctorID:          request.DoctorID,
		ImageName:         request.ImageName,
		State:             string(request.State),
		ConditionDetected: request.ConditionDetected,
		Confidence:        request.Confidence,
		AITreatmentPlan:   request.TreatmentPlan,
		FailureReason:     request.FailureReason,
		Disposition:       string(request.Disposition),
		DisposedAt:        request.DisposedAt,
		CreatedAt:         request.CreatedAt,
	}
}

// ConsultationsToResponses converts a slice of ConsultationRequest entities
func ConsultationsToResponses(requests []entity.ConsultationRequest) []dto.ConsultationResponse {
	responses := make([]dto.ConsultationResponse, len(requests))
	for i, request := range requests {
		resp := ConsultationToResponse(&request)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
