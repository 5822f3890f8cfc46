package pricing

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the base class for bad cart lines; the concrete
// variants below all wrap it.
var ErrInvalidInput = errors.New("invalid input")

var (
	ErrMissingCupType   = fmt.Errorf("%w: cup type required", ErrInvalidInput)
	ErrMissingColdDrink = fmt.Errorf("%w: cold drink name required", ErrInvalidInput)
	ErrMissingSweets    = fmt.Errorf("%w: sweets option required", ErrInvalidInput)
	ErrInvalidQuantity  = fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	ErrUnknownDrinkType = fmt.Errorf("%w: unknown drink type", ErrInvalidInput)
	ErrInvalidCostValue = fmt.Errorf("%w: cost must not be negative", ErrInvalidInput)
)
