package medications

// Transiciones permitidas. completed y cancelled son terminales.
var medicationTransitions = map[Status][]Status{
	StatusPending: {StatusActive, StatusCancelled},
	StatusActive:  {StatusCompleted, StatusCancelled},
}

func canTransition(from, to Status) bool {
	for _, s := range medicationTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Una toma solo sale de SCHEDULED.
func canMarkDose(from, to DoseStatus) bool {
	return from == DoseScheduled && (to == DoseTaken || to == DoseMissed)
}
