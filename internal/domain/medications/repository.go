package medications

import "context"

// Repository es el gateway de persistencia. Las lecturas nunca fallan: ante
// datos ausentes, corruptos o inválidos devuelven colección vacía. Las escrituras
// reemplazan la colección completa.
type Repository interface {
	LoadMedications(ctx context.Context) []Medication
	SaveMedications(ctx context.Context, ms []Medication) error

	LoadSchedule(ctx context.Context) []ScheduledMedication
	SaveSchedule(ctx context.Context, items []ScheduledMedication) error

	// Reset borra ambas colecciones.
	Reset(ctx context.Context) error
}
