package domain

import (
	"fmt"
	"strings"
	"time"
)

// Contract groups the yearly schedules of one works contract.
type Contract struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Contract) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: contract name is required", ErrInvalid)
	}
	return nil
}
