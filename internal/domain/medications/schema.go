package medications

import (
	"medassist/internal/domain/timeofday"
	"medassist/internal/domain/validation"
)

// Limits acota el tamaño de un tratamiento para no generar colecciones sin techo.
type Limits struct {
	MaxDosesPerDay   int
	MaxTreatmentDays int
}

var DefaultLimits = Limits{
	MaxDosesPerDay:   24,
	MaxTreatmentDays: 365,
}

// CheckNew aplica las reglas de negocio a una medicación recién enviada:
// forma válida, límites, horarios distintos y len(custom_times) == doses_per_day.
func CheckNew(m Medication, limits Limits) validation.Result[Medication] {
	var c validation.Collector
	checkShape(&c, "", m)

	if limits.MaxDosesPerDay > 0 && m.DosesPerDay > limits.MaxDosesPerDay {
		c.Addf("doses_per_day", "must be at most %d", limits.MaxDosesPerDay)
	}
	if limits.MaxTreatmentDays > 0 && m.TreatmentDays > limits.MaxTreatmentDays {
		c.Addf("treatment_days", "must be at most %d", limits.MaxTreatmentDays)
	}

	seen := make(map[timeofday.TimeOfDay]bool, len(m.CustomTimes))
	for i, t := range m.CustomTimes {
		if seen[t] {
			c.Addf(validation.Index("custom_times", i), "duplicated time %s", t)
		}
		seen[t] = true
	}

	if len(m.CustomTimes) != m.DosesPerDay {
		c.Add("custom_times", "the number of custom times must match doses per day")
	}

	return validation.Check(m, &c)
}

// CheckMedications valida una colección leída del storage. Un solo elemento
// inválido invalida la colección entera.
func CheckMedications(ms []Medication) validation.Result[[]Medication] {
	var c validation.Collector
	for i, m := range ms {
		checkShape(&c, validation.Index("", i), m)
		c.Required(path(validation.Index("", i), "id"), m.ID, "id is required")
	}
	return validation.Check(ms, &c)
}

// CheckSchedule valida la colección de tomas leída del storage.
func CheckSchedule(items []ScheduledMedication) validation.Result[[]ScheduledMedication] {
	var c validation.Collector
	for i, s := range items {
		p := validation.Index("", i)
		c.Required(path(p, "id"), s.ID, "id is required")
		c.Required(path(p, "medication_id"), s.MedicationID, "medication_id is required")
		c.Required(path(p, "name"), s.Name, "name is required")
		if s.DueAt.IsZero() {
			c.Add(path(p, "due_at"), "due_at must be a datetime")
		}
		if !s.Status.Valid() {
			c.Addf(path(p, "status"), "unknown status %q", s.Status)
		}
	}
	return validation.Check(items, &c)
}

func checkShape(c *validation.Collector, prefix string, m Medication) {
	c.Required(path(prefix, "name"), m.Name, "name is required")
	if m.DosesPerDay < 1 {
		c.Add(path(prefix, "doses_per_day"), "must be at least 1")
	}
	if m.TreatmentDays < 1 {
		c.Add(path(prefix, "treatment_days"), "must be at least 1")
	}
	for i, t := range m.CustomTimes {
		if !t.Valid() {
			c.Add(path(prefix, validation.Index("custom_times", i)), "hours must be 0-23 and minutes 0-59")
		}
	}
	if !m.Status.Valid() {
		c.Addf(path(prefix, "status"), "unknown status %q", m.Status)
	}
}

func path(prefix, field string) string {
	if prefix == "" {
		return field
	}
	return prefix + "." + field
}
