package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service interface {
	GetCurrentUser(ctx context.Context) (User, error)
	CreateUser(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	IsEmailAvailable(ctx context.Context, email string) (bool, error)
}

type UserServiceImpl struct {
	repo Repo
}

func NewUserService(repo Repo) *UserServiceImpl {
	return &UserServiceImpl{repo: repo}
}

func (u *UserServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.GetUser(ctx, userId)
}

// CreateUser registers a driver and assigns it a new uid.
func (u *UserServiceImpl) CreateUser(ctx context.Context, user User) (User, error) {
	user = normalize(user)
	if err := validate(user); err != nil {
		return User{}, err
	}
	user.Uid = uuid.NewString()
	return u.repo.CreateUser(ctx, user)
}

func (u *UserServiceImpl) GetUser(ctx context.Context, id int) (User, error) {
	return u.repo.GetUser(ctx, id)
}

func (u *UserServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	if _, err := uuid.Parse(uid); err != nil {
		return User{}, fmt.Errorf("%w: invalid uid %q", ErrUserDataInvalid, uid)
	}
	return u.repo.GetUserByUid(ctx, uid)
}

func (u *UserServiceImpl) UpdateUser(ctx context.Context, user User) (User, error) {
	current, err := u.GetCurrentUser(ctx)
	if err != nil {
		return User{}, err
	}
	user.Email = current.Email
	user = normalize(user)
	if err := validate(user); err != nil {
		return User{}, err
	}
	return u.repo.UpdateUser(ctx, current.Id, user)
}

func (u *UserServiceImpl) IsEmailAvailable(ctx context.Context, email string) (bool, error) {
	return u.repo.IsEmailAvailable(ctx, strings.ToLower(strings.TrimSpace(email)))
}
