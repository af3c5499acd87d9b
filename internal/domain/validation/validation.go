package validation

import (
	"fmt"
	"strings"
)

// Issue es un problema puntual de un campo. Path usa notación tipo "custom_times[1]".
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error agrupa los issues de una validación. Nunca se construye vacío.
type Error struct {
	Issues []Issue `json:"issues"`
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		if is.Path == "" {
			parts = append(parts, is.Message)
			continue
		}
		parts = append(parts, is.Path+": "+is.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Result es el resultado etiquetado: o Value es válido, o Err trae los issues.
type Result[T any] struct {
	Value T
	Err   *Error
}

func (r Result[T]) Valid() bool { return r.Err == nil }

// Collector acumula issues mientras se recorre una estructura.
type Collector struct {
	issues []Issue
}

func (c *Collector) Add(path, msg string) {
	c.issues = append(c.issues, Issue{Path: path, Message: msg})
}

func (c *Collector) Addf(path, format string, args ...any) {
	c.Add(path, fmt.Sprintf(format, args...))
}

// Required agrega un issue si s está vacío (tras trim).
func (c *Collector) Required(path, s, msg string) {
	if strings.TrimSpace(s) == "" {
		c.Add(path, msg)
	}
}

// Err devuelve nil si no hubo issues.
func (c *Collector) Err() *Error {
	if len(c.issues) == 0 {
		return nil
	}
	out := make([]Issue, len(c.issues))
	copy(out, c.issues)
	return &Error{Issues: out}
}

// Check arma un Result a partir de un valor y su collector.
func Check[T any](v T, c *Collector) Result[T] {
	return Result[T]{Value: v, Err: c.Err()}
}

// Index formatea "field[i]".
func Index(field string, i int) string {
	return fmt.Sprintf("%s[%d]", field, i)
}
