package converter

import (
	"vetadmin/internal/delivery/dto"
	"vetadmin/internal/domain/entity"
)

func SpecialtiesToResponses(specialties []entity.Specialty) []dto.SpecialtyResponse {
	responses := make([]dto.SpecialtyResponse, len(specialties))
	for i, s := range specialties {
		responses[i] = dto.SpecialtyResponse{
			ID:          s.ID,
			Description: s.Description,
		}
	}
	return responses
}

func ClinicServicesToResponses(services []entity.ClinicService) []dto.ClinicServiceResponse {
	responses := make([]dto.ClinicServiceResponse, len(services))
	for i, s := range services {
		responses[i] = dto.ClinicServiceResponse{
			ID:              s.ID,
			Description:     s.Description,
			Price:           s.Price,
			DurationMinutes: s.Duration,
		}
	}
	return responses
}
