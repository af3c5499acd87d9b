package profile

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"medassist/internal/domain/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/profile", func(pr chi.Router) {
		pr.Get("/", getProfileHandler(svc))
		pr.Post("/", createProfileHandler(svc))
		pr.Patch("/", updateProfileHandler(svc))
	})
}

// profileRequest es el cuerpo para crear el perfil.
type profileRequest struct {
	Name                  string `json:"name"`
	RH                    RH     `json:"rh" enums:"O+,O-,A+,A-,B+,B-,AB+,AB-"`
	NationalID            string `json:"national_id"`
	BirthdayDate          string `json:"birthday_date" example:"1990-04-21"` // YYYY-MM-DD
	Gender                Gender `json:"gender" enums:"male,female,other"`
	PhoneNumber           string `json:"phone_number"`
	Address               string `json:"address"`
	DepartmentOfResidence string `json:"department_of_residence"`
	HealthProvider        string `json:"health_provider"`
	Diseases              string `json:"diseases"` // opcional
}

// updateProfileRequest: campos ausentes no se tocan.
type updateProfileRequest struct {
	Name                  *string `json:"name"`
	RH                    *RH     `json:"rh"`
	NationalID            *string `json:"national_id"`
	BirthdayDate          *string `json:"birthday_date"`
	Gender                *Gender `json:"gender"`
	PhoneNumber           *string `json:"phone_number"`
	Address               *string `json:"address"`
	DepartmentOfResidence *string `json:"department_of_residence"`
	HealthProvider        *string `json:"health_provider"`
	Diseases              *string `json:"diseases"`
}

// profileResponse representa el perfil del usuario.
type profileResponse struct {
	Name                  string    `json:"name"`
	RH                    RH        `json:"rh"`
	NationalID            string    `json:"national_id"`
	BirthdayDate          string    `json:"birthday_date"`
	Gender                Gender    `json:"gender"`
	PhoneNumber           string    `json:"phone_number"`
	Address               string    `json:"address"`
	DepartmentOfResidence string    `json:"department_of_residence"`
	HealthProvider        string    `json:"health_provider"`
	Diseases              string    `json:"diseases,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// getProfileHandler godoc
// @Summary Obtener perfil
// @Tags profile
// @Produce json
// @Success 200 {object} profileResponse
// @Failure 404 {string} string "profile not found"
// @Router /profile [get]
func getProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

// createProfileHandler godoc
// @Summary Crear perfil
// @Description Registra el perfil del usuario. Solo puede crearse una vez; hasta entonces las rutas de medicaciones responden 428.
// @Tags profile
// @Accept json
// @Produce json
// @Param payload body profileRequest true "Datos del perfil"
// @Success 201 {object} profileResponse
// @Failure 400 {object} validation.Error "invalid json / campos inválidos"
// @Failure 409 {string} string "profile already exists"
// @Router /profile [post]
func createProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req profileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			Name:                  req.Name,
			RH:                    req.RH,
			NationalID:            req.NationalID,
			Birthday:              req.BirthdayDate,
			Gender:                req.Gender,
			PhoneNumber:           req.PhoneNumber,
			Address:               req.Address,
			DepartmentOfResidence: req.DepartmentOfResidence,
			HealthProvider:        req.HealthProvider,
			Diseases:              req.Diseases,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toProfileResponse(p))
	}
}

// updateProfileHandler godoc
// @Summary Actualizar perfil
// @Description Actualización parcial; el resultado se valida completo.
// @Tags profile
// @Accept json
// @Produce json
// @Param payload body updateProfileRequest true "Campos a modificar"
// @Success 200 {object} profileResponse
// @Failure 400 {object} validation.Error "invalid json / campos inválidos"
// @Failure 404 {string} string "profile not found"
// @Router /profile [patch]
func updateProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Update(r.Context(), UpdateInput{
			Name:                  req.Name,
			RH:                    req.RH,
			NationalID:            req.NationalID,
			Birthday:              req.BirthdayDate,
			Gender:                req.Gender,
			PhoneNumber:           req.PhoneNumber,
			Address:               req.Address,
			DepartmentOfResidence: req.DepartmentOfResidence,
			HealthProvider:        req.HealthProvider,
			Diseases:              req.Diseases,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func writeError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, verr)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "profile not found", http.StatusNotFound)
	case errors.Is(err, ErrProfileExists):
		http.Error(w, "profile already exists", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toProfileResponse(p Profile) profileResponse {
	return profileResponse{
		Name:                  p.Name,
		RH:                    p.RH,
		NationalID:            p.NationalID,
		BirthdayDate:          p.Birthday,
		Gender:                p.Gender,
		PhoneNumber:           p.PhoneNumber,
		Address:               p.Address,
		DepartmentOfResidence: p.DepartmentOfResidence,
		HealthProvider:        p.HealthProvider,
		Diseases:              p.Diseases,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
