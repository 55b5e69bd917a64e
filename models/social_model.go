package models

import "time"

type RelationStatus string

const (
	RelationPending  RelationStatus = "pending"
	RelationAccepted RelationStatus = "accepted"
)

// Relacion is a device-local friend request between two user ids.
type Relacion struct {
	ID        string         `json:"id"`
	From      int            `json:"from"`
	To        int            `json:"to"`
	Status    RelationStatus `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
}

// FriendshipState is how a relationship looks from one side.
type FriendshipState string

const (
	FriendshipNone            FriendshipState = "none"
	FriendshipFriend          FriendshipState = "friend"
	FriendshipPendingSent     FriendshipState = "pending_sent"
	FriendshipPendingReceived FriendshipState = "pending_received"
)

type Comentario struct {
	ID        string    `json:"id"`
	Autor     string    `json:"autor"`
	Texto     string    `json:"texto"`
	Timestamp time.Time `json:"timestamp"`
}

// FeedPost is a post of the static seed feed.
type FeedPost struct {
	ID          string       `json:"id"`
	Autor       string       `json:"autor"`
	Texto       string       `json:"texto"`
	Imagen      string       `json:"imagen,omitempty"`
	Likes       int          `json:"likes"`
	Liked       bool         `json:"liked"`
	Comentarios []Comentario `json:"comentarios"`
}

// FeedInteraction is the local overlay for one post.
type FeedInteraction struct {
	Liked       bool         `json:"liked"`
	Likes       int          `json:"likes"`
	Comentarios []Comentario `json:"comentarios"`
}
