package service

import (
	"context"
	"errors"
	"strings"

	"github.com/kmadan/splitledger/internal/models"
	"github.com/kmadan/splitledger/internal/storage"
)

// ErrEmptyFriendName is returned when a friend is added without a name.
var ErrEmptyFriendName = errors.New("friend name must not be empty")

// FriendService manages a user's contact list. The expense lifecycle
// consults it to check that split participants are legitimate contacts.
type FriendService struct {
	store storage.Store
}

// NewFriendService creates a FriendService backed by the given store.
func NewFriendService(store storage.Store) *FriendService {
	return &FriendService{store: store}
}

// AddFriend creates a contact for the user.
func (s *FriendService) AddFriend(ctx context.Context, userID, name, email string) (*models.Friend, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyFriendName
	}
	friend := &models.Friend{
		UserID: userID,
		Name:   name,
		Email:  strings.TrimSpace(email),
	}
	if err := s.store.CreateFriend(ctx, friend); err != nil {
		return nil, err
	}
	return friend, nil
}

// ListFriends returns the user's contacts.
func (s *FriendService) ListFriends(ctx context.Context, userID string) ([]models.Friend, error) {
	return s.store.ListFriends(ctx, userID)
}

// RemoveFriend deletes a contact.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID string) error {
	return s.store.DeleteFriend(ctx, userID, friendID)
}
