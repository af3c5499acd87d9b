package profile

import "time"

// BirthdayLayout es el formato de birthday_date.
const BirthdayLayout = "2006-01-02"

// Profile son los datos personales y de salud del único usuario del dispositivo.
// Mientras no exista, la app no deja registrar medicaciones.
type Profile struct {
	Name       string
	RH         RH
	NationalID string
	Birthday   string // YYYY-MM-DD
	Gender     Gender

	PhoneNumber           string
	Address               string
	DepartmentOfResidence string
	HealthProvider        string

	Diseases string // opcional

	CreatedAt time.Time
	UpdatedAt time.Time
}
