package profile

import (
	"time"

	"medassist/internal/domain/validation"
)

// Check valida un perfil completo. Todos los campos salvo diseases son obligatorios.
func Check(p Profile) validation.Result[Profile] {
	var c validation.Collector

	c.Required("name", p.Name, "Ingrese su nombre")
	if !p.RH.Valid() {
		c.Addf("rh", "unknown rh %q", p.RH)
	}
	c.Required("national_id", p.NationalID, "Ingrese su número de identificación")
	if p.Birthday == "" {
		c.Add("birthday_date", "Ingrese su fecha de nacimiento")
	} else if _, err := time.Parse(BirthdayLayout, p.Birthday); err != nil {
		c.Add("birthday_date", "birthday_date must be YYYY-MM-DD")
	}
	if !p.Gender.Valid() {
		c.Addf("gender", "unknown gender %q", p.Gender)
	}
	c.Required("phone_number", p.PhoneNumber, "Ingrese su número de teléfono")
	c.Required("address", p.Address, "Ingrese su dirección")
	c.Required("department_of_residence", p.DepartmentOfResidence, "Ingrese su departamento de residencia")
	c.Required("health_provider", p.HealthProvider, "Ingrese su EPS")

	return validation.Check(p, &c)
}
