package user

import (
	"context"
	"fmt"
	"time"
)

type StubUserRepository struct {
	nextId int
	data   map[int]User
}

func NewStubUserRepository() *StubUserRepository {
	return &StubUserRepository{nextId: 0, data: map[int]User{}}
}

func (s *StubUserRepository) CreateUser(ctx context.Context, user User) (User, error) {
	for _, existing := range s.data {
		if existing.Email == user.Email {
			return User{}, fmt.Errorf("%w: email %s is already registered", ErrUserDataInvalid, user.Email)
		}
	}
	s.nextId++
	user.Id = s.nextId
	user.CreatedAt = time.Now()
	s.data[user.Id] = user
	return user, nil
}

func (s *StubUserRepository) GetUser(ctx context.Context, id int) (User, error) {
	user, ok := s.data[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *StubUserRepository) GetUserByUid(ctx context.Context, uid string) (User, error) {
	for _, user := range s.data {
		if user.Uid == uid {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *StubUserRepository) UpdateUser(ctx context.Context, userId int, user User) (User, error) {
	existing, ok := s.data[userId]
	if !ok {
		return User{}, ErrUserNotFound
	}
	existing.Name = user.Name
	existing.BirthDate = user.BirthDate
	existing.LicensePlate = user.LicensePlate
	existing.CarModel = user.CarModel
	s.data[userId] = existing
	return existing, nil
}

func (s *StubUserRepository) IsEmailAvailable(ctx context.Context, email string) (bool, error) {
	for _, user := range s.data {
		if user.Email == email {
			return false, nil
		}
	}
	return true, nil
}
