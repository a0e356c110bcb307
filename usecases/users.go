package usecases

import (
	"portfolio-server/entities"
	"portfolio-server/repositories"
	"portfolio-server/schema"

	"github.com/rs/zerolog/log"
)

type UsersUseCase struct {
	store repositories.Storage
}

func NewUsersUseCase(store repositories.Storage) *UsersUseCase {
	return &UsersUseCase{store: store}
}

// Register validates and creates a user. Duplicate usernames fail with
// repositories.ErrUsernameTaken.
func (uc *UsersUseCase) Register(raw map[string]any) (*entities.User, error) {
	in, err := schema.ParseInsertUser(raw)
	if err != nil {
		return nil, err
	}
	user, err := uc.store.CreateUser(in)
	if err != nil {
		return nil, err
	}
	log.Info().Int("id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Get returns user id, or nil when absent.
func (uc *UsersUseCase) Get(id int) (*entities.User, error) {
	return uc.store.GetUser(id)
}

// GetByUsername returns the user with username, or nil when absent.
func (uc *UsersUseCase) GetByUsername(username string) (*entities.User, error) {
	if username == "" {
		return nil, schema.RequiredField(schema.EntityUser, "username")
	}
	return uc.store.GetUserByUsername(username)
}
