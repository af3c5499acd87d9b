package profile

import "context"

// Repository persiste el perfil único. Load devuelve ok=false si no hay perfil
// guardado o si lo guardado no es válido.
type Repository interface {
	Load(ctx context.Context) (Profile, bool)
	Save(ctx context.Context, p Profile) error
}
