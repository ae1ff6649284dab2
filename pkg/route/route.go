package route

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VehicleType string

const (
	// Passeio is a passenger car.
	Passeio VehicleType = "passeio"
	// Outro is any other vehicle (van, utility...).
	Outro VehicleType = "outro"
)

// Attributes are the route properties that determine its value.
type Attributes struct {
	VehicleType       VehicleType
	TotalPackages     int
	LoosePackages     int
	HasHelper         bool
	IsSundayOrHoliday bool
}

type Route struct {
	Id              uuid.UUID
	Date            time.Time
	Name            string
	DestinationCity string
	Attributes
	TotalValue decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// Packages is the number of route and loose packages handled on the route.
func (r Route) Packages() int {
	return r.TotalPackages + r.LoosePackages
}
