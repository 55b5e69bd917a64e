package services

import (
	"context"
	"strings"

	"go-pacha/models"
	"go-pacha/storage"
	"go-pacha/utils/errors"
)

// ProfileService stores profile text that only exists on the device.
type ProfileService struct {
	store    storage.Store
	profiles localCollection[*models.ProfileDetail]
}

func NewProfileService(store storage.Store) *ProfileService {
	return &ProfileService{
		store:    store,
		profiles: newLocalCollection[*models.ProfileDetail](store, profilesCollection),
	}
}

// Profile merges the stored override for user onto the backend record.
func (s *ProfileService) Profile(ctx context.Context, user models.Usuario) (models.Profile, error) {
	detail, err := s.profiles.load(ctx, user.ID)
	if err != nil {
		return models.Profile{}, err
	}
	p := models.Profile{Usuario: user, Bio: models.DefaultBio, Ubicacion: models.DefaultUbicacion}
	if detail == nil {
		return p, nil
	}
	if detail.Nombre != "" {
		p.Nombre = detail.Nombre
	}
	p.Bio = detail.Bio
	p.Ubicacion = detail.Ubicacion
	return p, nil
}

// SaveProfile stores the override for the session user and renames the
// persisted session to match.
func (s *ProfileService) SaveProfile(ctx context.Context, session *models.Usuario, detail models.ProfileDetail) (*models.Usuario, error) {
	if session == nil || session.ID == 0 {
		return nil, errors.ErrNoSession
	}
	detail.Nombre = strings.TrimSpace(detail.Nombre)
	if detail.Nombre == "" {
		detail.Nombre = session.Nombre
	}

	s.profiles.mu.Lock()
	defer s.profiles.mu.Unlock()
	if err := s.profiles.save(ctx, session.ID, &detail); err != nil {
		return nil, err
	}
	updated := *session
	updated.Nombre = detail.Nombre
	if err := patchSession(ctx, s.store, &updated, map[string]any{"nombre": updated.Nombre}); err != nil {
		return nil, err
	}
	return &updated, nil
}
