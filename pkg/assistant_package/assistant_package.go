package assistant_package

import (
	"fmt"
	"strings"
	"time"

	"github.com/driverledger/driverledger/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssistantPackage records the stops a helper delivered on the driver's behalf on one day and what
// the driver owes for them.
type AssistantPackage struct {
	Id                uuid.UUID
	AssistantName     string
	DeliveryDate      time.Time
	TotalStops        int
	PackagesDelivered int
	ValuePerStop      decimal.Decimal
	TotalValue        decimal.Decimal
	Observations      string
	CreatedAt         time.Time
}

// TotalValue is what the helper is paid: every stop at the agreed value.
func TotalValue(totalStops int, valuePerStop decimal.Decimal) decimal.Decimal {
	return valuePerStop.Mul(decimal.NewFromInt(int64(totalStops))).Round(utils.MoneyDecimals)
}

const maxAssistantNameLength = 255

func validate(p AssistantPackage) error {
	if p.AssistantName == "" {
		return fmt.Errorf("%w: assistant name is required", ErrInvalidPackage)
	}
	if !utils.FitsVarchar(p.AssistantName, maxAssistantNameLength) {
		return fmt.Errorf("%w: assistant name must not exceed %d characters", ErrInvalidPackage, maxAssistantNameLength)
	}
	if p.DeliveryDate.IsZero() {
		return fmt.Errorf("%w: delivery date is required", ErrInvalidPackage)
	}
	if p.TotalStops < 0 || p.TotalStops > utils.MaxInteger {
		return fmt.Errorf("%w: total stops must be between 0 and %d", ErrInvalidPackage, utils.MaxInteger)
	}
	if p.PackagesDelivered < 0 {
		return fmt.Errorf("%w: packages delivered must not be negative", ErrInvalidPackage)
	}
	if p.PackagesDelivered > p.TotalStops {
		return fmt.Errorf("%w: packages delivered (%d) exceed total stops (%d)", ErrInvalidPackage,
			p.PackagesDelivered, p.TotalStops)
	}
	if p.ValuePerStop.IsNegative() {
		return fmt.Errorf("%w: value per stop must not be negative", ErrInvalidPackage)
	}
	if !p.ValuePerStop.Equal(p.ValuePerStop.Round(utils.MoneyDecimals)) {
		return fmt.Errorf("%w: value per stop must have at most two decimal places", ErrInvalidPackage)
	}
	if !utils.FitsMoney(p.ValuePerStop) {
		return fmt.Errorf("%w: value per stop must not exceed %s", ErrInvalidPackage, utils.MaxMoney.StringFixed(2))
	}
	if !utils.FitsMoney(TotalValue(p.TotalStops, p.ValuePerStop)) {
		return fmt.Errorf("%w: total value must not exceed %s", ErrInvalidPackage, utils.MaxMoney.StringFixed(2))
	}
	return nil
}

func normalize(p AssistantPackage) AssistantPackage {
	p.AssistantName = strings.TrimSpace(p.AssistantName)
	p.Observations = strings.TrimSpace(p.Observations)
	return p
}
