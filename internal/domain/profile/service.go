package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"medassist/internal/platform/logger"
)

var (
	ErrNotFound      = errors.New("profile not found")
	ErrProfileExists = errors.New("profile already exists")
)

type Service struct {
	repo Repository
	log  logger.Logger
	now  func() time.Time

	mu      sync.Mutex
	loaded  bool
	current *Profile
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		repo: repo,
		log:  log.With(map[string]any{"component": "profile"}),
		now:  time.Now,
	}
}

type CreateInput struct {
	Name                  string
	RH                    RH
	NationalID            string
	Birthday              string
	Gender                Gender
	PhoneNumber           string
	Address               string
	DepartmentOfResidence string
	HealthProvider        string
	Diseases              string
}

// UpdateInput usa punteros para PATCH real: nil = no tocar.
type UpdateInput struct {
	Name                  *string
	RH                    *RH
	NationalID            *string
	Birthday              *string
	Gender                *Gender
	PhoneNumber           *string
	Address               *string
	DepartmentOfResidence *string
	HealthProvider        *string
	Diseases              *string
}

func (s *Service) Get(ctx context.Context) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)

	if s.current == nil {
		return Profile{}, ErrNotFound
	}
	return *s.current, nil
}

// Exists indica si ya se creó el perfil.
func (s *Service) Exists(ctx context.Context) bool {
	_, err := s.Get(ctx)
	return err == nil
}

// Create registra el perfil una sola vez.
func (s *Service) Create(ctx context.Context, in CreateInput) (Profile, error) {
	now := s.now()
	p := Profile{
		Name:                  strings.TrimSpace(in.Name),
		RH:                    RH(strings.ToUpper(strings.TrimSpace(string(in.RH)))),
		NationalID:            strings.TrimSpace(in.NationalID),
		Birthday:              strings.TrimSpace(in.Birthday),
		Gender:                Gender(strings.ToLower(strings.TrimSpace(string(in.Gender)))),
		PhoneNumber:           strings.TrimSpace(in.PhoneNumber),
		Address:               strings.TrimSpace(in.Address),
		DepartmentOfResidence: strings.TrimSpace(in.DepartmentOfResidence),
		HealthProvider:        strings.TrimSpace(in.HealthProvider),
		Diseases:              strings.TrimSpace(in.Diseases),
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if res := Check(p); !res.Valid() {
		return Profile{}, res.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)

	if s.current != nil {
		return Profile{}, ErrProfileExists
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return Profile{}, fmt.Errorf("save profile: %w", err)
	}
	s.current = &p

	s.log.Info("profile created", nil)
	return p, nil
}

// Update mezcla los campos enviados sobre el perfil actual y vuelve a validar.
func (s *Service) Update(ctx context.Context, in UpdateInput) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)

	if s.current == nil {
		return Profile{}, ErrNotFound
	}

	p := *s.current
	setString(&p.Name, in.Name)
	if in.RH != nil {
		p.RH = RH(strings.ToUpper(strings.TrimSpace(string(*in.RH))))
	}
	setString(&p.NationalID, in.NationalID)
	setString(&p.Birthday, in.Birthday)
	if in.Gender != nil {
		p.Gender = Gender(strings.ToLower(strings.TrimSpace(string(*in.Gender))))
	}
	setString(&p.PhoneNumber, in.PhoneNumber)
	setString(&p.Address, in.Address)
	setString(&p.DepartmentOfResidence, in.DepartmentOfResidence)
	setString(&p.HealthProvider, in.HealthProvider)
	setString(&p.Diseases, in.Diseases)
	p.UpdatedAt = s.now()

	if res := Check(p); !res.Valid() {
		return Profile{}, res.Err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return Profile{}, fmt.Errorf("save profile: %w", err)
	}
	s.current = &p
	return p, nil
}

func (s *Service) loadLocked(ctx context.Context) {
	if s.loaded {
		return
	}
	if p, ok := s.repo.Load(ctx); ok {
		s.current = &p
	}
	s.loaded = true
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
