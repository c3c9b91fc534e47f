package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/redis/go-redis/v9"

	"github.com/moviepulse/awards-voting-api/internal/models"
)

// CreateUser registers a user. The username is reserved with SETNX so two
// concurrent registrations cannot claim the same name.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash, role string) (*models.User, error) {
	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}
	ok, err := s.rdb.SetNX(ctx, usernameKey(username), user.ID, 0).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserExists
	}
	err = s.rdb.HSet(ctx, userKey(user.ID), map[string]interface{}{
		"id":            user.ID,
		"username":      user.Username,
		"password_hash": user.PasswordHash,
		"role":          user.Role,
	}).Err()
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	data, err := s.rdb.HGetAll(ctx, userKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrUserNotFound
	}
	var user models.User
	mapstructure.Decode(data, &user)
	return &user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	id, err := s.rdb.Get(ctx, usernameKey(username)).Result()
	if err == redis.Nil {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}
