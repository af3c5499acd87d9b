package medications

import (
	"time"

	"github.com/google/uuid"
)

// GenerateSchedule expande un tratamiento en todas sus tomas a partir de now.
//
// Primero el día cero: solo los horarios de hoy estrictamente posteriores a now.
// Después se rellenan los días 1, 2, ... con el juego completo de horarios, en el
// orden guardado, hasta completar DosesPerDay*TreatmentDays; el último día puede
// quedar cortado.
//
// El orden de salida es el de emisión. Solo es cronológico si CustomTimes está
// ordenado; aquí no se ordena.
//
// Precondición: m ya pasó CheckNew (len(CustomTimes) == DosesPerDay).
func GenerateSchedule(m Medication, now time.Time) []ScheduledMedication {
	return generate(m, now, uuid.NewString)
}

func generate(m Medication, now time.Time, newID func() string) []ScheduledMedication {
	remaining := m.TotalDoses()
	if remaining <= 0 || len(m.CustomTimes) == 0 {
		return nil
	}

	out := make([]ScheduledMedication, 0, remaining)
	emit := func(at time.Time) {
		out = append(out, ScheduledMedication{
			ID:           newID(),
			MedicationID: m.ID,
			Name:         m.Name,
			DueAt:        at,
			Status:       DoseScheduled,
		})
		remaining--
	}

	// Día cero: los horarios ya pasados hoy no se programan para hoy.
	for _, t := range m.CustomTimes {
		if remaining == 0 {
			return out
		}
		if at := t.On(now); at.After(now) {
			emit(at)
		}
	}

	// Anclamos al mediodía para que AddDate no cruce de fecha con cambios de horario.
	y, mo, d := now.Date()
	noon := time.Date(y, mo, d, 12, 0, 0, 0, now.Location())

	for offset := 1; remaining > 0; offset++ {
		day := noon.AddDate(0, 0, offset)
		for _, t := range m.CustomTimes {
			if remaining == 0 {
				break
			}
			emit(t.On(day))
		}
	}

	return out
}
