package converter

import (
	"vetadmin/internal/delivery/dto"
	"vetadmin/internal/domain/entity"
)

// EnrichedStaffToResponse converts an enriched staff row to its response DTO
func EnrichedStaffToResponse(staff *entity.EnrichedStaff) *dto.StaffResponse {
	if staff == nil {
		return nil
	}

	return &dto.StaffResponse{
		ID:              staff.ID,
		AccountID:       staff.AccountID,
		NationalID:      staff.NationalID,
		GivenName:       staff.GivenName,
		PaternalSurname: staff.PaternalSurname,
		MaternalSurname: staff.MaternalSurname,
		Phone:           staff.Phone,
		Email:           staff.Email,
		Gender:          staff.Gender,
		Shift:           staff.Shift,
		HireDate:        staff.HireDate,
		LicenseCode:     staff.LicenseCode,
		BirthDate:       staff.BirthDate,
		SpecialtyID:     staff.SpecialtyID,
		VetKind:         staff.VetKind,
		Availability:    staff.Availability,
		LoginName:       staff.LoginName,
		AccountStatus:   staff.AccountStatus,
	}
}

// EnrichedStaffToResponses converts a page of enriched rows
func EnrichedStaffToResponses(staff []entity.EnrichedStaff) []dto.StaffResponse {
	responses := make([]dto.StaffResponse, len(staff))
	for i := range staff {
		responses[i] = *EnrichedStaffToResponse(&staff[i])
	}
	return responses
}
