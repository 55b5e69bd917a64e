package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"go-pacha/models"
	"go-pacha/storage"
	"go-pacha/utils/errors"
)

// SocialService keeps friend requests on the device; the backend has no
// endpoint for them.
type SocialService struct {
	relations localCollection[[]models.Relacion]
	now       func() time.Time
}

func NewSocialService(store storage.Store) *SocialService {
	return &SocialService{
		relations: newLocalCollection[[]models.Relacion](store, relationsCollection),
		now:       time.Now,
	}
}

func between(r models.Relacion, a, b int) bool {
	return (r.From == a && r.To == b) || (r.From == b && r.To == a)
}

func findRelation(rels []models.Relacion, a, b int) int {
	for i, r := range rels {
		if between(r, a, b) {
			return i
		}
	}
	return -1
}

// Relations lists every relationship userID takes part in.
func (s *SocialService) Relations(ctx context.Context, userID int) ([]models.Relacion, error) {
	rels, err := s.relations.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rels == nil {
		rels = []models.Relacion{}
	}
	return rels, nil
}

// SendRequest records a pending request from -> to in both users' collections.
func (s *SocialService) SendRequest(ctx context.Context, from, to int) (models.Relacion, error) {
	if from == 0 || to == 0 || from == to {
		return models.Relacion{}, errors.ErrInvalidInput
	}
	s.relations.mu.Lock()
	defer s.relations.mu.Unlock()

	senderRels, err := s.relations.load(ctx, from)
	if err != nil {
		return models.Relacion{}, err
	}
	if i := findRelation(senderRels, from, to); i >= 0 {
		if senderRels[i].Status == models.RelationAccepted {
			return models.Relacion{}, errors.NewAPIError(errors.ErrConflict.Code, "Ya son amigos", errors.ErrConflict.Status)
		}
		return models.Relacion{}, errors.NewAPIError(errors.ErrConflict.Code, "Solicitud pendiente", errors.ErrConflict.Status)
	}
	recipientRels, err := s.relations.load(ctx, to)
	if err != nil {
		return models.Relacion{}, err
	}

	rel := models.Relacion{
		ID:        uuid.New().String(),
		From:      from,
		To:        to,
		Status:    models.RelationPending,
		Timestamp: s.now().UTC(),
	}
	// Drop any stale copy left on the recipient's side.
	if i := findRelation(recipientRels, from, to); i >= 0 {
		recipientRels = append(recipientRels[:i], recipientRels[i+1:]...)
	}
	if err := s.relations.save(ctx, from, append(senderRels, rel)); err != nil {
		return models.Relacion{}, err
	}
	if err := s.relations.save(ctx, to, append(recipientRels, rel)); err != nil {
		// Undo the sender's copy so a retry is not blocked by a half-written request.
		if undoErr := s.relations.save(ctx, from, senderRels); undoErr != nil {
			log.Printf("Failed to roll back friend request %d -> %d: %v", from, to, undoErr)
		}
		return models.Relacion{}, err
	}
	log.Printf("Friend request sent from %d to %d", from, to)
	return rel, nil
}

// AcceptRequest turns the pending request sender -> me into a friendship.
func (s *SocialService) AcceptRequest(ctx context.Context, me, sender int) (models.Relacion, error) {
	if me == sender {
		return models.Relacion{}, errors.ErrInvalidInput
	}
	s.relations.mu.Lock()
	defer s.relations.mu.Unlock()

	mine, err := s.relations.load(ctx, me)
	if err != nil {
		return models.Relacion{}, err
	}
	i := findRelation(mine, me, sender)
	if i < 0 || mine[i].Status != models.RelationPending || mine[i].From != sender {
		return models.Relacion{}, errors.NewAPIError(errors.ErrNotFound.Code, "No hay solicitud pendiente", errors.ErrNotFound.Status)
	}
	mine[i].Status = models.RelationAccepted
	accepted := mine[i]

	theirs, err := s.relations.load(ctx, sender)
	if err != nil {
		return models.Relacion{}, err
	}
	if j := findRelation(theirs, me, sender); j >= 0 {
		theirs[j] = accepted
	} else {
		theirs = append(theirs, accepted)
	}
	if err := s.relations.save(ctx, me, mine); err != nil {
		return models.Relacion{}, err
	}
	if err := s.relations.save(ctx, sender, theirs); err != nil {
		return models.Relacion{}, err
	}
	log.Printf("Friend request accepted from %d to %d", sender, me)
	return accepted, nil
}

// RejectRequest declines the pending request sender -> me.
func (s *SocialService) RejectRequest(ctx context.Context, me, sender int) error {
	s.relations.mu.Lock()
	defer s.relations.mu.Unlock()

	mine, err := s.relations.load(ctx, me)
	if err != nil {
		return err
	}
	if stateOf(mine, me, sender) != models.FriendshipPendingReceived {
		return errors.NewAPIError(errors.ErrNotFound.Code, "No hay solicitud pendiente", errors.ErrNotFound.Status)
	}
	return s.removeLocked(ctx, me, sender)
}

// RemoveRelation deletes whatever relationship links me and other: it
// declines, cancels or unfriends.
func (s *SocialService) RemoveRelation(ctx context.Context, me, other int) error {
	s.relations.mu.Lock()
	defer s.relations.mu.Unlock()
	return s.removeLocked(ctx, me, other)
}

// removeLocked expects s.relations.mu to be held.
func (s *SocialService) removeLocked(ctx context.Context, me, other int) error {
	removed := false
	for _, owner := range []int{me, other} {
		rels, err := s.relations.load(ctx, owner)
		if err != nil {
			return err
		}
		i := findRelation(rels, me, other)
		if i < 0 {
			continue
		}
		removed = true
		if err := s.relations.save(ctx, owner, append(rels[:i], rels[i+1:]...)); err != nil {
			return err
		}
	}
	if !removed {
		return errors.ErrNotFound
	}
	return nil
}

// Status describes the relationship with target as seen by me.
func (s *SocialService) Status(ctx context.Context, me, target int) (models.FriendshipState, error) {
	if me == target {
		return models.FriendshipNone, nil
	}
	rels, err := s.relations.load(ctx, me)
	if err != nil {
		return models.FriendshipNone, err
	}
	return stateOf(rels, me, target), nil
}

func stateOf(rels []models.Relacion, me, target int) models.FriendshipState {
	i := findRelation(rels, me, target)
	switch {
	case i < 0:
		return models.FriendshipNone
	case rels[i].Status == models.RelationAccepted:
		return models.FriendshipFriend
	case rels[i].From == me:
		return models.FriendshipPendingSent
	default:
		return models.FriendshipPendingReceived
	}
}

// Friends resolves userID's accepted relationships against the user list.
// Ids missing from allUsers are skipped.
func (s *SocialService) Friends(ctx context.Context, userID int, allUsers []models.Usuario) ([]models.Usuario, error) {
	rels, err := s.relations.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]models.Usuario, len(allUsers))
	for _, u := range allUsers {
		byID[u.ID] = u
	}
	friends := []models.Usuario{}
	for _, r := range rels {
		if r.Status != models.RelationAccepted {
			continue
		}
		friendID := r.From
		if friendID == userID {
			friendID = r.To
		}
		if u, ok := byID[friendID]; ok {
			friends = append(friends, u)
		}
	}
	return friends, nil
}

// SuggestUsers filters the people-search list: not me, not already a friend,
// and name or email containing query.
func SuggestUsers(all []models.Usuario, me int, friends []models.Usuario, query string) []models.Usuario {
	isFriend := make(map[int]bool, len(friends))
	for _, f := range friends {
		isFriend[f.ID] = true
	}
	query = strings.ToLower(query)
	out := []models.Usuario{}
	for _, u := range all {
		if u.ID == me || isFriend[u.ID] {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(u.Nombre), query) &&
			!strings.Contains(strings.ToLower(u.Email), query) {
			continue
		}
		out = append(out, u)
	}
	return out
}
