package resources

import (
	"context"
	"fmt"

	"github.com/nkiryanov/warehub/gateway"
	"github.com/nkiryanov/warehub/models"
)

// UserInput creates a platform user. The password is sent twice because the
// server validates the confirmation.
type UserInput struct {
	Username  string      `json:"username"`
	Password  string      `json:"password"`
	Password2 string      `json:"password2"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Role      models.Role `json:"role,omitempty"`
}

// UserUpdate changes profile fields; passwords are not updatable here.
type UserUpdate struct {
	Username  string      `json:"username,omitempty"`
	Email     string      `json:"email,omitempty"`
	FirstName string      `json:"first_name,omitempty"`
	LastName  string      `json:"last_name,omitempty"`
	Role      models.Role `json:"role,omitempty"`
}

type UserService struct {
	client *gateway.Client
}

func NewUsers(client *gateway.Client) *UserService {
	return &UserService{client: client}
}

func (s *UserService) List(ctx context.Context, params ListParams) (Page[models.User], error) {
	var page Page[models.User]
	err := s.client.Get(ctx, "/users/"+params.query(), &page)
	return page, err
}

func (s *UserService) Get(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	err := s.client.Get(ctx, fmt.Sprintf("/users/%d/", id), &user)
	return user, err
}

func (s *UserService) Create(ctx context.Context, input UserInput) (models.User, error) {
	var user models.User
	err := s.client.Post(ctx, "/users/", input, &user)
	return user, err
}

func (s *UserService) Update(ctx context.Context, id int64, input UserUpdate) (models.User, error) {
	var user models.User
	err := s.client.Put(ctx, fmt.Sprintf("/users/%d/", id), input, &user)
	return user, err
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/users/%d/", id))
}
