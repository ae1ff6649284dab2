package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/driverledger/driverledger/internal/rest"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type UserDTO struct {
	Uid          string `json:"uid,omitempty"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	BirthDate    string `json:"birthDate,omitempty"`
	LicensePlate string `json:"licensePlate,omitempty"`
	CarModel     string `json:"carModel,omitempty"`
}

type Handler struct {
	userService Service
}

func NewHandler(userService Service) *Handler {
	return &Handler{
		userService: userService,
	}
}

// CreateUser godoc
// @Summary Register a driver
// @Tags User
// @Accept json
// @Produce json
// @Param user body UserDTO true "User"
// @Success 201 {object} UserDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/user [post]
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating user")

	var userDTO UserDTO
	if err := json.NewDecoder(r.Body).Decode(&userDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	user, err := dtoToUser(userDTO)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid birth date", err.Error())
		return
	}

	createdUser, err := h.userService.CreateUser(r.Context(), user)
	if err != nil {
		if errors.Is(err, ErrUserDataInvalid) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid user data", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Tracef("Created user: %+v", createdUser)

	rest.WriteJSON(w, http.StatusCreated, userToDTO(createdUser))
}

// CurrentUser godoc
// @Summary Get current user
// @Tags User
// @Produce json
// @Success 200 {object} UserDTO
// @Failure 403 {string} string "User not found"
// @Router /api/user/current [get]
// @Security XUserId
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	log.Trace("Getting current user")

	currentUser, err := h.userService.GetCurrentUser(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, userToDTO(currentUser))
}

// UpdateUser godoc
// @Summary Update current user profile
// @Description Update name, birth date, license plate and car model of the current user
// @Tags User
// @Accept json
// @Produce json
// @Param user body UserDTO true "User"
// @Success 200 {object} UserDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 403 {string} string "User not found"
// @Router /api/user/current [put]
// @Security XUserId
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	log.Trace("Updating user")

	var userDTO UserDTO
	if err := json.NewDecoder(r.Body).Decode(&userDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	user, err := dtoToUser(userDTO)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid birth date", err.Error())
		return
	}

	updatedUser, err := h.userService.UpdateUser(r.Context(), user)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	log.Debug("Updated user: ", updatedUser.Uid)
	rest.WriteJSON(w, http.StatusOK, userToDTO(updatedUser))
}

// IsEmailAvailable godoc
// @Summary Check email availability
// @Tags User
// @Produce json
// @Param email query string true "Email to check"
// @Success 200 {object} object{available=bool}
// @Failure 400 {object} rest.ErrorResponse "Email is required"
// @Router /api/user/email-availability [get]
func (h *Handler) IsEmailAvailable(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		rest.WriteError(w, http.StatusBadRequest, "Email is required", "")
		return
	}
	available, err := h.userService.IsEmailAvailable(r.Context(), email)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]bool{"available": available})
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUserDataInvalid):
		rest.WriteError(w, http.StatusBadRequest, "Invalid user data", err.Error())
	case errors.Is(err, ErrNoUser), errors.Is(err, ErrUserNotFound):
		http.Error(w, "user not found", http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func userToDTO(user User) UserDTO {
	dto := UserDTO{
		Uid:          user.Uid,
		Email:        user.Email,
		Name:         user.Name,
		LicensePlate: user.LicensePlate,
		CarModel:     user.CarModel,
	}
	if user.BirthDate != nil {
		dto.BirthDate = user.BirthDate.Format(dateLayout)
	}
	return dto
}

func dtoToUser(dto UserDTO) (User, error) {
	user := User{
		Uid:          dto.Uid,
		Email:        dto.Email,
		Name:         dto.Name,
		LicensePlate: dto.LicensePlate,
		CarModel:     dto.CarModel,
	}
	if dto.BirthDate != "" {
		birthDate, err := time.Parse(dateLayout, dto.BirthDate)
		if err != nil {
			return User{}, err
		}
		user.BirthDate = &birthDate
	}
	return user, nil
}
