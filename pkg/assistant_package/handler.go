package assistant_package

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/driverledger/driverledger/internal/rest"
	"github.com/driverledger/driverledger/pkg/fortnight"
	"github.com/driverledger/driverledger/pkg/user"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type PackageDTO struct {
	Id                string     `json:"id,omitempty"`
	AssistantName     string     `json:"assistantName"`
	DeliveryDate      string     `json:"deliveryDate"`
	TotalStops        int        `json:"totalStops"`
	PackagesDelivered int        `json:"packagesDelivered"`
	ValuePerStop      string     `json:"valuePerStop"`
	TotalValue        string     `json:"totalValue,omitempty"`
	Observations      string     `json:"observations,omitempty"`
	CreatedAt         *time.Time `json:"createdAt,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListPackages godoc
// @Summary List assistant packages
// @Description List the current user's assistant deliveries, optionally limited to an inclusive date range
// @Tags AssistantPackage
// @Produce json
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD)"
// @Success 200 {array} PackageDTO
// @Router /api/assistant-package [get]
// @Security XUserId
func (h *Handler) ListPackages(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing assistant packages")
	fromParam := r.URL.Query().Get("from")
	toParam := r.URL.Query().Get("to")

	var packages []AssistantPackage
	var err error
	if fromParam == "" && toParam == "" {
		packages, err = h.service.ListPackages(r.Context())
	} else {
		from, parseErr := fortnight.ParseDate(fromParam)
		if parseErr != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid 'from' date", parseErr.Error())
			return
		}
		to, parseErr := fortnight.ParseDate(toParam)
		if parseErr != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid 'to' date", parseErr.Error())
			return
		}
		packages, err = h.service.ListPackagesBetween(r.Context(), from, to)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	packagesDTO := make([]PackageDTO, 0, len(packages))
	for _, p := range packages {
		packagesDTO = append(packagesDTO, packageToDTO(p))
	}
	rest.WriteJSON(w, http.StatusOK, packagesDTO)
}

// CreatePackage godoc
// @Summary Register an assistant delivery
// @Tags AssistantPackage
// @Accept json
// @Produce json
// @Param package body PackageDTO true "Assistant package"
// @Success 201 {object} PackageDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid package"
// @Router /api/assistant-package [post]
// @Security XUserId
func (h *Handler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating assistant package")
	var packageDTO PackageDTO
	if err := json.NewDecoder(r.Body).Decode(&packageDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	p, err := dtoToPackage(packageDTO)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	created, err := h.service.CreatePackage(r.Context(), p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, packageToDTO(created))
}

// GetPackage godoc
// @Summary Get an assistant delivery
// @Tags AssistantPackage
// @Produce json
// @Param packageId path string true "Package ID"
// @Success 200 {object} PackageDTO
// @Failure 404 {object} rest.ErrorResponse "Package not found"
// @Router /api/assistant-package/{packageId} [get]
// @Security XUserId
func (h *Handler) GetPackage(w http.ResponseWriter, r *http.Request) {
	packageId, err := uuid.Parse(mux.Vars(r)["packageId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid package id", err.Error())
		return
	}
	p, err := h.service.GetPackage(r.Context(), packageId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, packageToDTO(p))
}

// DeletePackage godoc
// @Summary Delete an assistant delivery
// @Tags AssistantPackage
// @Param packageId path string true "Package ID"
// @Success 204 "No Content"
// @Failure 404 {object} rest.ErrorResponse "Package not found"
// @Router /api/assistant-package/{packageId} [delete]
// @Security XUserId
func (h *Handler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting assistant package")
	packageId, err := uuid.Parse(mux.Vars(r)["packageId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid package id", err.Error())
		return
	}
	deleted, err := h.service.DeletePackage(r.Context(), packageId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !deleted {
		rest.WriteError(w, http.StatusNotFound, ErrPackageNotFound.Error(), "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidPackage):
		rest.WriteError(w, http.StatusBadRequest, "Invalid assistant package", err.Error())
	case errors.Is(err, ErrPackageNotFound):
		rest.WriteError(w, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func packageToDTO(p AssistantPackage) PackageDTO {
	createdAt := p.CreatedAt
	return PackageDTO{
		Id:                p.Id.String(),
		AssistantName:     p.AssistantName,
		DeliveryDate:      fortnight.FormatDate(p.DeliveryDate),
		TotalStops:        p.TotalStops,
		PackagesDelivered: p.PackagesDelivered,
		ValuePerStop:      p.ValuePerStop.StringFixed(2),
		TotalValue:        p.TotalValue.StringFixed(2),
		Observations:      p.Observations,
		CreatedAt:         &createdAt,
	}
}

func dtoToPackage(dto PackageDTO) (AssistantPackage, error) {
	deliveryDate, err := fortnight.ParseDate(dto.DeliveryDate)
	if err != nil {
		return AssistantPackage{}, errors.Join(ErrInvalidPackage, err)
	}
	valuePerStop := decimal.Zero
	if dto.ValuePerStop != "" {
		valuePerStop, err = decimal.NewFromString(dto.ValuePerStop)
		if err != nil {
			return AssistantPackage{}, errors.Join(ErrInvalidPackage, err)
		}
	}
	return AssistantPackage{
		AssistantName:     dto.AssistantName,
		DeliveryDate:      deliveryDate,
		TotalStops:        dto.TotalStops,
		PackagesDelivered: dto.PackagesDelivered,
		ValuePerStop:      valuePerStop,
		Observations:      dto.Observations,
	}, nil
}
