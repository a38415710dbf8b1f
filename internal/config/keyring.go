package config

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "ganttplan"
	keyringUser    = "store-key"
)

var (
	// ErrKeyNotFound is returned when no store key is stored in the keyring.
	ErrKeyNotFound = errors.New("store key not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetStoreKey reads the store key from the OS keyring.
func GetStoreKey() (string, error) {
	key, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return key, nil
}

// SetStoreKey stores the store key in the OS keyring.
func SetStoreKey(key string) error {
	if key == "" {
		return errors.New("store key cannot be empty")
	}
	if err := keyring.Set(keyringService, keyringUser, key); err != nil {
		return fmt.Errorf("storing key in keyring: %w", err)
	}
	return nil
}

// DeleteStoreKey removes the store key from the OS keyring.
func DeleteStoreKey() error {
	err := keyring.Delete(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrKeyNotFound
	}
	if err != nil {
		return fmt.Errorf("deleting key from keyring: %w", err)
	}
	return nil
}
