package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// StoreKeySetting is the settings row holding the bcrypt fingerprint of the
// store key of a SQLite store.
const StoreKeySetting = "store_key_hash"

// VerifyStoreKey authorizes key against the store. A store without a
// fingerprint is claimed by the first key that opens it.
func VerifyStoreKey(ctx context.Context, database *sql.DB, key string) error {
	var hash string
	err := database.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, StoreKeySetting).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return claimStore(ctx, database, key)
	}
	if err != nil {
		return fmt.Errorf("reading store key fingerprint: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
		return ErrUnauthorized
	}
	return nil
}

func claimStore(ctx context.Context, database *sql.DB, key string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing store key: %w", err)
	}
	if _, err := database.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)`, StoreKeySetting, string(hash)); err != nil {
		return fmt.Errorf("recording store key fingerprint: %w", err)
	}
	return nil
}
