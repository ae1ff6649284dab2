package assistant_package

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/driverledger/driverledger/pkg/user"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withUser(userId int, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := user.WithUser(r.Context(), user.User{Id: userId})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func setupRouter(t *testing.T) *mux.Router {
	handler := NewHandler(NewService(NewRepositoryStub()))
	router := mux.NewRouter()
	router.Handle("/api/assistant-package", withUser(1, http.HandlerFunc(handler.ListPackages))).Methods("GET")
	router.Handle("/api/assistant-package", withUser(1, http.HandlerFunc(handler.CreatePackage))).Methods("POST")
	router.Handle("/api/assistant-package/{packageId}", withUser(1, http.HandlerFunc(handler.GetPackage))).Methods("GET")
	router.Handle("/api/assistant-package/{packageId}", withUser(1, http.HandlerFunc(handler.DeletePackage))).Methods("DELETE")
	return router
}

func doRequest(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_PackageLifecycle(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/assistant-package", PackageDTO{
		AssistantName:     "Joana",
		DeliveryDate:      "2024-06-04",
		TotalStops:        30,
		PackagesDelivered: 28,
		ValuePerStop:      "1.75",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created PackageDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.Equal(t, "52.50", created.TotalValue)

	w = doRequest(t, router, http.MethodGet, "/api/assistant-package/"+created.Id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodDelete, "/api/assistant-package/"+created.Id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, router, http.MethodDelete, "/api/assistant-package/"+created.Id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_CreatePackage_Invalid(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name string
		dto  PackageDTO
	}{
		{"delivered exceeds stops", PackageDTO{AssistantName: "Joana", DeliveryDate: "2024-06-04", TotalStops: 3, PackagesDelivered: 4, ValuePerStop: "2"}},
		{"bad value", PackageDTO{AssistantName: "Joana", DeliveryDate: "2024-06-04", TotalStops: 3, ValuePerStop: "two"}},
		{"bad date", PackageDTO{AssistantName: "Joana", DeliveryDate: "04/06/2024", TotalStops: 3, ValuePerStop: "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/api/assistant-package", tt.dto)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
