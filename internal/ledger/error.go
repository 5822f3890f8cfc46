package ledger

import "errors"

var (
	ErrUnknownThermos = errors.New("unknown thermos")
	ErrUnknownTimer   = errors.New("unknown timer")
)
