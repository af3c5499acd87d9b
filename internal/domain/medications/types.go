package medications

// Status es el estado de un tratamiento.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusPending   Status = "pending"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusCancelled, StatusPending:
		return true
	}
	return false
}

// DoseStatus es el estado de una toma programada.
type DoseStatus string

const (
	DoseScheduled DoseStatus = "SCHEDULED" // programada, aún no es la hora
	DoseTaken     DoseStatus = "TAKEN"     // el usuario la tomó
	DoseMissed    DoseStatus = "MISSED"    // pasó la hora y no se tomó
)

func (s DoseStatus) Valid() bool {
	switch s {
	case DoseScheduled, DoseTaken, DoseMissed:
		return true
	}
	return false
}
