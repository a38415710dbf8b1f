package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// PasswordSetting is the settings key of the login password hash.
const PasswordSetting = "password_hash"

const minPasswordLength = 4

type authService struct {
	settings repository.SettingsRepo
	cost     int
	observer UseCaseObserver
}

func NewAuthService(settings repository.SettingsRepo, observers ...UseCaseObserver) AuthService {
	return &authService{
		settings: settings,
		cost:     bcrypt.DefaultCost,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *authService) HasPassword(ctx context.Context) (bool, error) {
	_, ok, err := s.settings.Get(ctx, PasswordSetting)
	return ok, err
}

func (s *authService) SetPassword(ctx context.Context, current, next string) (err error) {
	defer observe(ctx, s.observer, "set-password", nil)(&err)

	if len(next) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalid, minPasswordLength)
	}
	hash, ok, err := s.settings.Get(ctx, PasswordSetting)
	if err != nil {
		return err
	}
	if ok {
		if err := compare(hash, current); err != nil {
			return err
		}
	}
	newHash, err := bcrypt.GenerateFromPassword([]byte(next), s.cost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return s.settings.Set(ctx, PasswordSetting, string(newHash))
}

func (s *authService) Login(ctx context.Context, password string) (err error) {
	defer observe(ctx, s.observer, "login", nil)(&err)

	hash, ok, err := s.settings.Get(ctx, PasswordSetting)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoPassword
	}
	return compare(hash, password)
}

func compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrWrongPassword
	}
	if err != nil {
		return fmt.Errorf("checking password: %w", err)
	}
	return nil
}
