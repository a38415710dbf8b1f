package domain

import (
	"fmt"
	"strconv"
	"time"
)

const (
	MinYear = 1900
	MaxYear = 2999
)

// Year is one calendar year of a contract. Projects hang off a Year.
type Year struct {
	ID         string
	ContractID string
	Value      int
	CreatedAt  time.Time
}

func (y *Year) Validate() error {
	if y.ContractID == "" {
		return fmt.Errorf("%w: year must belong to a contract", ErrInvalid)
	}
	if y.Value < MinYear || y.Value > MaxYear {
		return fmt.Errorf("%w: year %d out of range %d-%d", ErrInvalid, y.Value, MinYear, MaxYear)
	}
	return nil
}

func (y *Year) String() string {
	return strconv.Itoa(y.Value)
}
