package user

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/driverledger/driverledger/internal/utils"
)

const (
	maxNameLength         = 255
	maxEmailLength        = 255
	maxLicensePlateLength = 16
	maxCarModelLength     = 128
)

// User is a driver account. Uid is the public identifier clients send in X-User-Id.
type User struct {
	Id           int
	Uid          string
	Email        string
	Name         string
	BirthDate    *time.Time
	LicensePlate string
	CarModel     string
	CreatedAt    time.Time
}

func normalize(user User) User {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Name = strings.TrimSpace(user.Name)
	user.LicensePlate = strings.ToUpper(strings.TrimSpace(user.LicensePlate))
	user.CarModel = strings.TrimSpace(user.CarModel)
	return user
}

func validate(user User) error {
	if user.Name == "" {
		return fmt.Errorf("%w: name is required", ErrUserDataInvalid)
	}
	if !utils.FitsVarchar(user.Name, maxNameLength) {
		return fmt.Errorf("%w: name must not exceed %d characters", ErrUserDataInvalid, maxNameLength)
	}
	if user.Email == "" {
		return fmt.Errorf("%w: email is required", ErrUserDataInvalid)
	}
	if !utils.FitsVarchar(user.Email, maxEmailLength) {
		return fmt.Errorf("%w: email must not exceed %d characters", ErrUserDataInvalid, maxEmailLength)
	}
	if _, err := mail.ParseAddress(user.Email); err != nil {
		return fmt.Errorf("%w: invalid email %q", ErrUserDataInvalid, user.Email)
	}
	if user.BirthDate != nil && user.BirthDate.After(time.Now()) {
		return fmt.Errorf("%w: birth date is in the future", ErrUserDataInvalid)
	}
	if !utils.FitsVarchar(user.LicensePlate, maxLicensePlateLength) {
		return fmt.Errorf("%w: license plate must not exceed %d characters", ErrUserDataInvalid, maxLicensePlateLength)
	}
	if !utils.FitsVarchar(user.CarModel, maxCarModelLength) {
		return fmt.Errorf("%w: car model must not exceed %d characters", ErrUserDataInvalid, maxCarModelLength)
	}
	return nil
}
