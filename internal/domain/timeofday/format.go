package timeofday

import (
	"fmt"
	"time"
)

// Format12h convierte hora 0-23 y minuto 0-59 a "h:mm AM|PM".
// 0 se muestra como 12. Los rangos vienen validados desde arriba.
func Format12h(hour, minute int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, period)
}

var monthsES = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// LongDate devuelve la fecha larga en español: "15 de octubre de 2026".
func LongDate(t time.Time) string {
	if t.IsZero() {
		return "Fecha inválida"
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthsES[t.Month()-1], t.Year())
}
