package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_CreateAndReadCurrentUser(t *testing.T) {
	service, _ := setupService()
	handler := NewHandler(service)

	body, err := json.Marshal(UserDTO{Email: "maria@example.com", Name: "Maria", BirthDate: "1990-04-12", CarModel: "Fiorino"})
	require.NoError(t, err)
	w := httptest.NewRecorder()
	handler.CreateUser(w, httptest.NewRequest(http.MethodPost, "/api/user", bytes.NewReader(body)))

	require.Equal(t, http.StatusCreated, w.Code)
	var created UserDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.NotEmpty(t, created.Uid)
	assert.Equal(t, "1990-04-12", created.BirthDate)

	stored, err := service.GetUserByUid(t.Context(), created.Uid)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/user/current", nil)
	req = req.WithContext(WithUser(req.Context(), stored))
	w = httptest.NewRecorder()
	handler.CurrentUser(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var current UserDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&current))
	assert.Equal(t, "maria@example.com", current.Email)
	assert.Equal(t, "Fiorino", current.CarModel)
}

func TestHandler_CreateUser_Invalid(t *testing.T) {
	service, _ := setupService()
	handler := NewHandler(service)

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"missing name", `{"email":"a@b.com"}`},
		{"bad birth date", `{"email":"a@b.com","name":"Maria","birthDate":"12/04/1990"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.CreateUser(w, httptest.NewRequest(http.MethodPost, "/api/user", bytes.NewBufferString(tt.body)))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandler_CurrentUser_NoUser(t *testing.T) {
	service, _ := setupService()
	handler := NewHandler(service)

	w := httptest.NewRecorder()
	handler.CurrentUser(w, httptest.NewRequest(http.MethodGet, "/api/user/current", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_IsEmailAvailable(t *testing.T) {
	service, _ := setupService()
	handler := NewHandler(service)
	_, err := service.CreateUser(t.Context(), User{Email: "taken@example.com", Name: "Maria"})
	require.NoError(t, err)

	tests := []struct {
		email string
		want  bool
	}{
		{"taken@example.com", false},
		{"free@example.com", true},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		handler.IsEmailAvailable(w, httptest.NewRequest(http.MethodGet, "/api/user/email-availability?email="+tt.email, nil))
		require.Equal(t, http.StatusOK, w.Code)
		var response map[string]bool
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, tt.want, response["available"], tt.email)
	}
}
