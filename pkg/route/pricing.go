package route

import (
	"fmt"

	"github.com/driverledger/driverledger/internal/utils"
	"github.com/shopspring/decimal"
)

const maxVehicleTypeLength = 32

var (
	passeioBaseValue = decimal.NewFromInt(330)
	defaultBaseValue = decimal.NewFromInt(350)
	loosePackageFee  = decimal.NewFromInt(2)
	helperFee        = decimal.NewFromInt(40)
	holidayFee       = decimal.NewFromInt(40)
)

// Price returns the value paid for a route. Any vehicle other than a passenger car gets the
// higher base value.
func Price(attrs Attributes) decimal.Decimal {
	total := defaultBaseValue
	if attrs.VehicleType == Passeio {
		total = passeioBaseValue
	}
	total = total.Add(loosePackageFee.Mul(decimal.NewFromInt(int64(attrs.LoosePackages))))
	if attrs.HasHelper {
		total = total.Add(helperFee)
	}
	if attrs.IsSundayOrHoliday {
		total = total.Add(holidayFee)
	}
	return total
}

// ValidateAttributes checks the preconditions of Price.
func ValidateAttributes(attrs Attributes) error {
	if attrs.VehicleType == "" {
		return fmt.Errorf("%w: vehicle type is required", ErrInvalidRoute)
	}
	if !utils.FitsVarchar(attrs.VehicleType, maxVehicleTypeLength) {
		return fmt.Errorf("%w: vehicle type must not exceed %d characters", ErrInvalidRoute, maxVehicleTypeLength)
	}
	if attrs.TotalPackages < 0 || attrs.TotalPackages > utils.MaxInteger {
		return fmt.Errorf("%w: total packages must be between 0 and %d", ErrInvalidRoute, utils.MaxInteger)
	}
	if attrs.LoosePackages < 0 || attrs.LoosePackages > utils.MaxInteger {
		return fmt.Errorf("%w: loose packages must be between 0 and %d", ErrInvalidRoute, utils.MaxInteger)
	}
	return nil
}
