package route

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
	log "github.com/sirupsen/logrus"
)

type RouteDTO struct {
	Id                string     `json:"id,omitempty"`
	Date              string     `json:"date"`
	Name              string     `json:"name"`
	DestinationCity   string     `json:"destinationCity"`
	VehicleType       string     `json:"vehicleType"`
	TotalPackages     int        `json:"totalPackages"`
	LoosePackages     int        `json:"loosePackages"`
	HasHelper         bool       `json:"hasHelper"`
	IsSundayOrHoliday bool       `json:"isSundayOrHoliday"`
	TotalValue        string     `json:"totalValue,omitempty"`
	CreatedAt         *time.Time `json:"createdAt,omitempty"`
	UpdatedAt         *time.Time `json:"updatedAt,omitempty"`
}

type QuoteRequestDTO struct {
	VehicleType       string `json:"vehicleType"`
	TotalPackages     int    `json:"totalPackages"`
	LoosePackages     int    `json:"loosePackages"`
	HasHelper         bool   `json:"hasHelper"`
	IsSundayOrHoliday bool   `json:"isSundayOrHoliday"`
}

type QuoteDTO struct {
	TotalValue string `json:"totalValue"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListRoutes godoc
// @Summary List routes
// @Description List the current user's routes, optionally limited to an inclusive date range
// @Tags Route
// @Produce json
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD)"
// @Success 200 {array} RouteDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date"
// @Failure 403 {string} string "User not found"
// @Router /api/route [get]
// @Security XUserId
func (h *Handler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing routes")
	fromParam := r.URL.Query().Get("from")
	toParam := r.URL.Query().Get("to")

	var routes []Route
	var err error
	if fromParam == "" && toParam == "" {
		routes, err = h.service.ListRoutes(r.Context())
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
		routes, err = h.service.ListRoutesBetween(r.Context(), from, to)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	routesDTO := make([]RouteDTO, 0, len(routes))
	for _, route := range routes {
		routesDTO = append(routesDTO, routeToDTO(route))
	}
	rest.WriteJSON(w, http.StatusOK, routesDTO)
}

// CreateRoute godoc
// @Summary Register a route
// @Description Store a new route. Its value is computed from its attributes.
// @Tags Route
// @Accept json
// @Produce json
// @Param route body RouteDTO true "Route"
// @Success 201 {object} RouteDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid route"
// @Failure 403 {string} string "User not found"
// @Router /api/route [post]
// @Security XUserId
func (h *Handler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating route")
	var routeDTO RouteDTO
	if err := json.NewDecoder(r.Body).Decode(&routeDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	route, err := dtoToRoute(routeDTO)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid route", err.Error())
		return
	}

	created, err := h.service.CreateRoute(r.Context(), route)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, routeToDTO(created))
}

// GetRoute godoc
// @Summary Get a route
// @Tags Route
// @Produce json
// @Param routeId path string true "Route ID"
// @Success 200 {object} RouteDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid route id"
// @Failure 404 {object} rest.ErrorResponse "Route not found"
// @Router /api/route/{routeId} [get]
// @Security XUserId
func (h *Handler) GetRoute(w http.ResponseWriter, r *http.Request) {
	routeId, err := uuid.Parse(mux.Vars(r)["routeId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid route id", err.Error())
		return
	}
	route, err := h.service.GetRoute(r.Context(), routeId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, routeToDTO(route))
}

// UpdateRoute godoc
// @Summary Update a route
// @Description Replace a route and recompute its value
// @Tags Route
// @Accept json
// @Produce json
// @Param routeId path string true "Route ID"
// @Param route body RouteDTO true "Route"
// @Success 200 {object} RouteDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid route"
// @Failure 404 {object} rest.ErrorResponse "Route not found"
// @Router /api/route/{routeId} [put]
// @Security XUserId
func (h *Handler) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating route")
	routeId, err := uuid.Parse(mux.Vars(r)["routeId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid route id", err.Error())
		return
	}
	var routeDTO RouteDTO
	if err := json.NewDecoder(r.Body).Decode(&routeDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	if routeDTO.Id != "" && routeDTO.Id != routeId.String() {
		rest.WriteError(w, http.StatusBadRequest, "Invalid route id in request body", "")
		return
	}
	routeDTO.Id = ""
	route, err := dtoToRoute(routeDTO)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid route", err.Error())
		return
	}
	route.Id = routeId

	updated, err := h.service.UpdateRoute(r.Context(), route)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, routeToDTO(updated))
}

// DeleteRoute godoc
// @Summary Delete a route
// @Tags Route
// @Param routeId path string true "Route ID"
// @Success 204 "No Content"
// @Failure 400 {object} rest.ErrorResponse "Invalid route id"
// @Failure 404 {object} rest.ErrorResponse "Route not found"
// @Router /api/route/{routeId} [delete]
// @Security XUserId
func (h *Handler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting route")
	routeId, err := uuid.Parse(mux.Vars(r)["routeId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid route id", err.Error())
		return
	}
	deleted, err := h.service.DeleteRoute(r.Context(), routeId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !deleted {
		rest.WriteError(w, http.StatusNotFound, ErrRouteNotFound.Error(), "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// QuoteRoute godoc
// @Summary Price a route
// @Description Compute the value of a route from its attributes without storing it
// @Tags Route
// @Accept json
// @Produce json
// @Param attributes body QuoteRequestDTO true "Route attributes"
// @Success 200 {object} QuoteDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid attributes"
// @Router /api/route/quote [post]
// @Security XUserId
func (h *Handler) QuoteRoute(w http.ResponseWriter, r *http.Request) {
	var request QuoteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	value, err := h.service.Quote(r.Context(), Attributes{
		VehicleType:       VehicleType(request.VehicleType),
		TotalPackages:     request.TotalPackages,
		LoosePackages:     request.LoosePackages,
		HasHelper:         request.HasHelper,
		IsSundayOrHoliday: request.IsSundayOrHoliday,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, QuoteDTO{TotalValue: value.StringFixed(2)})
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidRoute):
		rest.WriteError(w, http.StatusBadRequest, "Invalid route", err.Error())
	case errors.Is(err, ErrRouteNotFound):
		rest.WriteError(w, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func routeToDTO(route Route) RouteDTO {
	createdAt := route.CreatedAt
	return RouteDTO{
		Id:                route.Id.String(),
		Date:              fortnight.FormatDate(route.Date),
		Name:              route.Name,
		DestinationCity:   route.DestinationCity,
		VehicleType:       string(route.VehicleType),
		TotalPackages:     route.TotalPackages,
		LoosePackages:     route.LoosePackages,
		HasHelper:         route.HasHelper,
		IsSundayOrHoliday: route.IsSundayOrHoliday,
		TotalValue:        route.TotalValue.StringFixed(2),
		CreatedAt:         &createdAt,
		UpdatedAt:         route.UpdatedAt,
	}
}

func dtoToRoute(dto RouteDTO) (Route, error) {
	date, err := fortnight.ParseDate(dto.Date)
	if err != nil {
		return Route{}, err
	}
	var id uuid.UUID
	if dto.Id != "" {
		id, err = uuid.Parse(dto.Id)
		if err != nil {
			return Route{}, err
		}
	}
	return Route{
		Id:              id,
		Date:            date,
		Name:            dto.Name,
		DestinationCity: dto.DestinationCity,
		Attributes: Attributes{
			VehicleType:       VehicleType(dto.VehicleType),
			TotalPackages:     dto.TotalPackages,
			LoosePackages:     dto.LoosePackages,
			HasHelper:         dto.HasHelper,
			IsSundayOrHoliday: dto.IsSundayOrHoliday,
		},
	}, nil
}
