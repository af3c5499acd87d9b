package medications

import (
	"time"

	"medassist/internal/domain/timeofday"
)

// Medication es un tratamiento prescrito.
// Invariante (validada antes de generar): len(CustomTimes) == DosesPerDay.
type Medication struct {
	ID   string
	Name string

	DosesPerDay   int
	TreatmentDays int
	CustomTimes   []timeofday.TimeOfDay

	Status    Status
	StartDate time.Time
}

// TotalDoses es la cantidad exacta de tomas que genera el tratamiento.
func (m Medication) TotalDoses() int {
	return m.DosesPerDay * m.TreatmentDays
}

// ScheduledMedication es una toma concreta derivada de una Medication.
type ScheduledMedication struct {
	ID           string
	MedicationID string
	Name         string // copia del nombre para mostrar sin join
	DueAt        time.Time
	Status       DoseStatus
}

// Reminder es una toma relevante para mostrar ahora (hoy, próxima, tratamiento activo).
type Reminder struct {
	ScheduledID  string
	MedicationID string
	Name         string
	DueAt        time.Time
}

// Snapshot es una copia consistente del estado que comparten las vistas.
// Version crece con cada mutación; un listener nunca recibe una versión vieja.
type Snapshot struct {
	Version     uint64
	Medications []Medication
	Schedule    []ScheduledMedication
}

// Inventory cuenta tratamientos activos y tomas pendientes.
func (s Snapshot) Inventory() (active, pending int) {
	for _, m := range s.Medications {
		if m.Status == StatusActive {
			active++
		}
	}
	for _, d := range s.Schedule {
		if d.Status == DoseScheduled {
			pending++
		}
	}
	return active, pending
}
