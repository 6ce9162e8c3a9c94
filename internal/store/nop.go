package store

import (
	"context"

	"github.com/amishk599/jobboard/internal/model"
)

// NopStore accepts every write and remembers nothing. Used by serve --dry-run.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) UpsertUser(ctx context.Context, u model.User) error { return nil }
func (s *NopStore) DeleteUser(ctx context.Context, id string) error    { return nil }
func (s *NopStore) Close() error                                     { return nil }

func (s *NopStore) GetUser(ctx context.Context, id string) (model.User, error) {
	return model.User{}, model.ErrUserNotFound
}
