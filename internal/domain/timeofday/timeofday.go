package timeofday

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrOutOfRange = errors.New("time of day out of range")
	ErrBadFormat  = errors.New("time of day must be HH:MM")
)

// TimeOfDay es una hora de reloj (sin fecha) en la que se repite una dosis.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// New valida rangos: hora 0-23, minuto 0-59.
func New(hour, minute int) (TimeOfDay, error) {
	t := TimeOfDay{Hour: hour, Minute: minute}
	if !t.Valid() {
		return TimeOfDay{}, ErrOutOfRange
	}
	return t, nil
}

// MustNew es para literales en tests y defaults.
func MustNew(hour, minute int) TimeOfDay {
	t, err := New(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse acepta "HH:MM" en formato 24h ("9:05" también es válido).
func Parse(s string) (TimeOfDay, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return TimeOfDay{}, ErrBadFormat
	}
	hour, err := strconv.Atoi(h)
	if err != nil || len(m) != 2 {
		return TimeOfDay{}, ErrBadFormat
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return TimeOfDay{}, ErrBadFormat
	}
	return New(hour, minute)
}

// Of extrae la hora de reloj de un timestamp (en su propia location).
func Of(ts time.Time) TimeOfDay {
	return TimeOfDay{Hour: ts.Hour(), Minute: ts.Minute()}
}

func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// Minutes devuelve minutos desde medianoche.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) After(o TimeOfDay) bool { return t.Minutes() > o.Minutes() }

// On ancla la hora en la fecha calendario de day, usando la location de day.
// Segundos y nanosegundos quedan en cero.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, mo, d := day.Date()
	return time.Date(y, mo, d, t.Hour, t.Minute, 0, 0, day.Location())
}

// String devuelve "HH:MM" en 24h.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Format12h devuelve "h:mm AM|PM".
func (t TimeOfDay) Format12h() string {
	return Format12h(t.Hour, t.Minute)
}

type wireTimeOfDay struct {
	Hours   int    `json:"hours"`
	Minutes int    `json:"minutes"`
	Value   string `json:"value,omitempty"`
}

// MarshalJSON emite el mismo shape que guardaba la app: {hours, minutes, value}.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireTimeOfDay{
		Hours:   t.Hour,
		Minutes: t.Minute,
		Value:   t.Format12h(),
	})
}

// UnmarshalJSON acepta "HH:MM" o {"hours":h,"minutes":m}.
// No valida rangos en la forma objeto: eso lo hace la capa de validación.
func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		parsed, err := Parse(s)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	}

	var w wireTimeOfDay
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*t = TimeOfDay{Hour: w.Hours, Minute: w.Minutes}
	return nil
}
