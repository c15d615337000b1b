package usecase

import (
	"context"
	"errors"
	"fmt"

	"santiice/internal/domain"

	"go.uber.org/zap"
)

// TokenKey is the storage key of the bearer token.
const TokenKey = "token"

var (
	ErrNotLoggedIn = errors.New("not logged in")
	ErrForbidden   = errors.New("permission denied")
)

// AuthUseCase keeps the operator's session across invocations.
type AuthUseCase struct {
	gateway AuthGateway
	store   Store
}

// NewAuthUseCase creates the auth flows.
func NewAuthUseCase(gateway AuthGateway, store Store) *AuthUseCase {
	return &AuthUseCase{gateway: gateway, store: store}
}

// Restore installs the persisted token. It reports whether one was found.
func (uc *AuthUseCase) Restore(ctx context.Context) (bool, error) {
	var token string
	err := uc.store.Load(ctx, TokenKey, &token)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("could not restore token: %w", err)
	}
	if token == "" {
		return false, nil
	}
	uc.gateway.SetToken(token)
	return true, nil
}

// Login authenticates and persists the token.
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (*domain.AuthToken, error) {
	tok, err := uc.gateway.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("could not log in: %w", err)
	}
	if err := uc.store.Save(ctx, TokenKey, tok.AccessToken); err != nil {
		return nil, fmt.Errorf("could not save token: %w", err)
	}
	zap.L().Info("usecase: logged in", zap.String("user", tok.User.Username), zap.String("role", tok.User.Role))
	return tok, nil
}

// Logout ends the backend session. The local token is dropped even when the
// backend call fails.
func (uc *AuthUseCase) Logout(ctx context.Context) error {
	if err := uc.gateway.Logout(ctx); err != nil {
		zap.L().Warn("usecase: backend logout failed", zap.Error(err))
	}
	if err := uc.store.Delete(ctx, TokenKey); err != nil {
		return fmt.Errorf("could not delete token: %w", err)
	}
	return nil
}

// WhoAmI returns the current user.
func (uc *AuthUseCase) WhoAmI(ctx context.Context) (*domain.User, error) {
	u, err := uc.gateway.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not fetch current user: %w", err)
	}
	return u, nil
}

// Require fails unless the current user holds permission.
func (uc *AuthUseCase) Require(ctx context.Context, permission string) (*domain.User, error) {
	u, err := uc.WhoAmI(ctx)
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, fmt.Errorf("%w: user %s is inactive", ErrForbidden, u.Username)
	}
	if !u.Can(permission) {
		return nil, fmt.Errorf("%w: %s lacks %q", ErrForbidden, u.Username, permission)
	}
	return u, nil
}
