package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go-pacha/models"
	"go-pacha/storage"
	"go-pacha/utils/errors"
)

// NotesService keeps a user's personal links and notes per place.
type NotesService struct {
	notes localCollection[map[int][]models.PlaceNote]
}

func NewNotesService(store storage.Store) *NotesService {
	return &NotesService{notes: newLocalCollection[map[int][]models.PlaceNote](store, notesCollection)}
}

func (s *NotesService) Notes(ctx context.Context, userID, placeID int) ([]models.PlaceNote, error) {
	all, err := s.notes.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if notes := all[placeID]; notes != nil {
		return notes, nil
	}
	return []models.PlaceNote{}, nil
}

// AddNote pins a link and/or note to placeID; at least one must be non-blank.
func (s *NotesService) AddNote(ctx context.Context, userID, placeID int, url, note string) (models.PlaceNote, error) {
	url, note = strings.TrimSpace(url), strings.TrimSpace(note)
	if url == "" && note == "" {
		return models.PlaceNote{}, errors.ErrInvalidInput
	}
	s.notes.mu.Lock()
	defer s.notes.mu.Unlock()

	all, err := s.notes.load(ctx, userID)
	if err != nil {
		return models.PlaceNote{}, err
	}
	if all == nil {
		all = map[int][]models.PlaceNote{}
	}
	n := models.PlaceNote{ID: uuid.New().String(), URL: url, Note: note}
	all[placeID] = append(all[placeID], n)
	if err := s.notes.save(ctx, userID, all); err != nil {
		return models.PlaceNote{}, err
	}
	return n, nil
}

func (s *NotesService) RemoveNote(ctx context.Context, userID, placeID int, noteID string) error {
	s.notes.mu.Lock()
	defer s.notes.mu.Unlock()

	all, err := s.notes.load(ctx, userID)
	if err != nil {
		return err
	}
	notes := all[placeID]
	for i, n := range notes {
		if n.ID != noteID {
			continue
		}
		all[placeID] = append(notes[:i], notes[i+1:]...)
		if len(all[placeID]) == 0 {
			delete(all, placeID)
		}
		return s.notes.save(ctx, userID, all)
	}
	return errors.ErrNotFound
}
