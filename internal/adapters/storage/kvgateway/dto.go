package kvgateway

import (
	"time"

	"medassist/internal/domain/medications"
	"medassist/internal/domain/profile"
	"medassist/internal/domain/timeofday"
)

// Formato persistido: snake_case, horas como {"hours","minutes","value"} y
// timestamps RFC3339.

type medicationDTO struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	DosesPerDay   int                   `json:"doses_per_day"`
	TreatmentDays int                   `json:"treatment_days"`
	CustomTimes   []timeofday.TimeOfDay `json:"custom_times"`
	Status        string                `json:"status"`
	StartDate     time.Time             `json:"start_date"`
}

type scheduledDTO struct {
	ID           string    `json:"id"`
	MedicationID string    `json:"medication_id"`
	Name         string    `json:"name"`
	DueAt        time.Time `json:"due_at"`
	Status       string    `json:"status"`
}

type profileDTO struct {
	Name                  string    `json:"name"`
	RH                    string    `json:"rh"`
	NationalID            string    `json:"national_id"`
	BirthdayDate          string    `json:"birthday_date"`
	Gender                string    `json:"gender"`
	PhoneNumber           string    `json:"phone_number"`
	Address               string    `json:"address"`
	DepartmentOfResidence string    `json:"department_of_residence"`
	HealthProvider        string    `json:"health_provider"`
	Diseases              string    `json:"diseases,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func fromMedication(m medications.Medication) medicationDTO {
	times := m.CustomTimes
	if times == nil {
		times = []timeofday.TimeOfDay{}
	}
	return medicationDTO{
		ID:            m.ID,
		Name:          m.Name,
		DosesPerDay:   m.DosesPerDay,
		TreatmentDays: m.TreatmentDays,
		CustomTimes:   times,
		Status:        string(m.Status),
		StartDate:     m.StartDate,
	}
}

func (d medicationDTO) toDomain() medications.Medication {
	return medications.Medication{
		ID:            d.ID,
		Name:          d.Name,
		DosesPerDay:   d.DosesPerDay,
		TreatmentDays: d.TreatmentDays,
		CustomTimes:   d.CustomTimes,
		Status:        medications.Status(d.Status),
		StartDate:     d.StartDate,
	}
}

func fromScheduled(s medications.ScheduledMedication) scheduledDTO {
	return scheduledDTO{
		ID:           s.ID,
		MedicationID: s.MedicationID,
		Name:         s.Name,
		DueAt:        s.DueAt,
		Status:       string(s.Status),
	}
}

func (d scheduledDTO) toDomain() medications.ScheduledMedication {
	return medications.ScheduledMedication{
		ID:           d.ID,
		MedicationID: d.MedicationID,
		Name:         d.Name,
		DueAt:        d.DueAt,
		Status:       medications.DoseStatus(d.Status),
	}
}

func fromProfile(p profile.Profile) profileDTO {
	return profileDTO{
		Name:                  p.Name,
		RH:                    string(p.RH),
		NationalID:            p.NationalID,
		BirthdayDate:          p.Birthday,
		Gender:                string(p.Gender),
		PhoneNumber:           p.PhoneNumber,
		Address:               p.Address,
		DepartmentOfResidence: p.DepartmentOfResidence,
		HealthProvider:        p.HealthProvider,
		Diseases:              p.Diseases,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func (d profileDTO) toDomain() profile.Profile {
	return profile.Profile{
		Name:                  d.Name,
		RH:                    profile.RH(d.RH),
		NationalID:            d.NationalID,
		Birthday:              d.BirthdayDate,
		Gender:                profile.Gender(d.Gender),
		PhoneNumber:           d.PhoneNumber,
		Address:               d.Address,
		DepartmentOfResidence: d.DepartmentOfResidence,
		HealthProvider:        d.HealthProvider,
		Diseases:              d.Diseases,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}
}
