package shop

import (
	"context"

	"github.com/google/uuid"
	"github.com/raywall/storefront/dyndb"
	"github.com/raywall/storefront/easyrepo"
	"github.com/raywall/storefront/keys"
	"github.com/raywall/storefront/models"
	"github.com/raywall/storefront/validation"
)

// UserService manages USER#<id>/PROFILE records.
type UserService struct {
	store *easyrepo.EasyService[models.User]
}

// NewUserService builds a user service over table.
func NewUserService(table dyndb.Table, opts ...easyrepo.Option) *UserService {
	store := easyrepo.NewService[models.User](table, keys.User, opts...)
	store.RegisterCreateHook(func(_ context.Context, u *models.User) error {
		if u.UserID == "" {
			u.UserID = uuid.NewString()
		}
		return nil
	})
	return &UserService{store: store}
}

// List returns every valid user in the table.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.store.List(ctx)
}

// Get returns one user or an apperr.ErrNotFound error.
func (s *UserService) Get(ctx context.Context, userID string) (*models.User, error) {
	return s.store.Get(ctx, keys.UserKey(userID))
}

// Create stores a new user. A missing id is generated; a taken one is a Conflict.
func (s *UserService) Create(ctx context.Context, in models.UserInput) (*models.User, error) {
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	u := in.User()
	if err := s.store.Create(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Update applies a partial update to a user profile.
func (s *UserService) Update(ctx context.Context, userID string, fields map[string]any) (*models.User, error) {
	return s.store.Update(ctx, keys.UserKey(userID), fields)
}

// Delete removes a user profile.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	return s.store.Delete(ctx, keys.UserKey(userID))
}
