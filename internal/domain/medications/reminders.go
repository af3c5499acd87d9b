package medications

import (
	"sort"
	"time"

	"medassist/internal/domain/timeofday"
)

// SelectToday devuelve las tomas pendientes de hoy, posteriores a now, de
// tratamientos activos, ordenadas por timestamp completo ascendente.
// La comparación de hora es a resolución de minuto.
func SelectToday(meds []Medication, schedule []ScheduledMedication, now time.Time) []Reminder {
	active := make(map[string]struct{}, len(meds))
	for _, m := range meds {
		if m.Status == StatusActive {
			active[m.ID] = struct{}{}
		}
	}

	loc := now.Location()
	y, mo, d := now.Date()
	nowTOD := timeofday.Of(now)

	out := make([]Reminder, 0)
	for _, s := range schedule {
		if s.Status != DoseScheduled {
			continue
		}

		due := s.DueAt.In(loc)
		dy, dmo, dd := due.Date()
		if dy != y || dmo != mo || dd != d {
			continue
		}
		if !timeofday.Of(due).After(nowTOD) {
			continue
		}

		if _, ok := active[s.MedicationID]; !ok {
			continue
		}

		out = append(out, Reminder{
			ScheduledID:  s.ID,
			MedicationID: s.MedicationID,
			Name:         s.Name,
			DueAt:        due,
		})
	}

	// Siempre por timestamp completo, nunca solo por día del mes.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueAt.Before(out[j].DueAt)
	})

	return out
}
