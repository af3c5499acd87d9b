package kvgateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"medassist/internal/domain/medications"
	"medassist/internal/domain/profile"
	"medassist/internal/platform/logger"
	"medassist/internal/platform/metrics"
	"medassist/internal/ports/kv"
)

const (
	KeyMedications = "medassist:medications"
	KeySchedule    = "medassist:scheduled_medications"
	KeyProfile     = "medassist:profile"
)

// Gateway guarda cada colección como un documento JSON bajo una key fija.
// Las lecturas nunca fallan: ante cualquier problema devuelven vacío, loguean y
// cuentan la falla.
type Gateway struct {
	store   kv.Store
	log     logger.Logger
	metrics *metrics.Metrics
}

func New(store kv.Store, log logger.Logger, m *metrics.Metrics) *Gateway {
	if log == nil {
		log = logger.NewNop()
	}
	return &Gateway{
		store:   store,
		log:     log.With(map[string]any{"component": "kvgateway"}),
		metrics: m,
	}
}

var _ medications.Repository = (*Gateway)(nil)

func (g *Gateway) LoadMedications(ctx context.Context) []medications.Medication {
	var dtos []medicationDTO
	if !g.read(ctx, KeyMedications, &dtos) {
		return []medications.Medication{}
	}

	out := make([]medications.Medication, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	if res := medications.CheckMedications(out); !res.Valid() {
		g.fail("validate", KeyMedications, res.Err)
		return []medications.Medication{}
	}
	return out
}

func (g *Gateway) SaveMedications(ctx context.Context, ms []medications.Medication) error {
	dtos := make([]medicationDTO, 0, len(ms))
	for _, m := range ms {
		dtos = append(dtos, fromMedication(m))
	}
	return g.write(ctx, KeyMedications, dtos)
}

func (g *Gateway) LoadSchedule(ctx context.Context) []medications.ScheduledMedication {
	var dtos []scheduledDTO
	if !g.read(ctx, KeySchedule, &dtos) {
		return []medications.ScheduledMedication{}
	}

	out := make([]medications.ScheduledMedication, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	if res := medications.CheckSchedule(out); !res.Valid() {
		g.fail("validate", KeySchedule, res.Err)
		return []medications.ScheduledMedication{}
	}
	return out
}

func (g *Gateway) SaveSchedule(ctx context.Context, items []medications.ScheduledMedication) error {
	dtos := make([]scheduledDTO, 0, len(items))
	for _, s := range items {
		dtos = append(dtos, fromScheduled(s))
	}
	return g.write(ctx, KeySchedule, dtos)
}

// Reset borra medicaciones y tomas. El perfil no se toca.
func (g *Gateway) Reset(ctx context.Context) error {
	for _, key := range []string{KeySchedule, KeyMedications} {
		if err := g.store.Delete(ctx, key); err != nil {
			g.metrics.PersistenceFailure("delete", key)
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}

// Profiles expone el perfil con la interfaz que espera el dominio profile.
func (g *Gateway) Profiles() profile.Repository {
	return profileRepo{g: g}
}

type profileRepo struct {
	g *Gateway
}

func (r profileRepo) Load(ctx context.Context) (profile.Profile, bool) {
	var dto profileDTO
	if !r.g.read(ctx, KeyProfile, &dto) {
		return profile.Profile{}, false
	}
	p := dto.toDomain()
	if res := profile.Check(p); !res.Valid() {
		r.g.fail("validate", KeyProfile, res.Err)
		return profile.Profile{}, false
	}
	return p, true
}

func (r profileRepo) Save(ctx context.Context, p profile.Profile) error {
	return r.g.write(ctx, KeyProfile, fromProfile(p))
}

// read devuelve false si no hay nada utilizable en key. Una key ausente es el
// estado normal del primer arranque y no cuenta como falla.
func (g *Gateway) read(ctx context.Context, key string, dst any) bool {
	raw, err := g.store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		g.log.Debug("key not found", map[string]any{"key": key})
		return false
	}
	if err != nil {
		g.fail("read", key, err)
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		g.fail("decode", key, err)
		return false
	}
	return true
}

func (g *Gateway) write(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		g.metrics.PersistenceFailure("encode", key)
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := g.store.Put(ctx, key, raw); err != nil {
		g.metrics.PersistenceFailure("write", key)
		g.log.Error("persist failed", map[string]any{"key": key, "error": err})
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (g *Gateway) fail(op, key string, err error) {
	g.metrics.PersistenceFailure(op, key)
	g.log.Warn("discarding stored data", map[string]any{
		"op":    op,
		"key":   key,
		"error": err,
	})
}
