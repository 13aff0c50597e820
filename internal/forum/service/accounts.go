package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/forum/internal/forum/domain"
	"github.com/aussiebroadwan/forum/internal/forum/store"
	"github.com/aussiebroadwan/forum/pkg/cryptox"
	"github.com/aussiebroadwan/forum/pkg/forumsdk"
	"github.com/aussiebroadwan/forum/pkg/jwtx"
	"github.com/aussiebroadwan/forum/pkg/metrics"
	"github.com/aussiebroadwan/forum/pkg/slogx"
	"github.com/google/uuid"
)

// AccountService owns registration, login and profile management.
type AccountService struct {
	Store  store.Store
	Hasher *cryptox.Hasher
	Tokens *jwtx.Authority

	// Now defaults to time.Now.
	Now func() time.Time
}

// LoginResult is a freshly issued token and the account it was issued to.
type LoginResult struct {
	Token string
	User  domain.User
}

func (s *AccountService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Login burns a derivation against this hash when the username is unknown,
// so unknown and known usernames take the same time to reject.
var (
	decoyOnce sync.Once
	decoyHash string
)

func decoy() string {
	decoyOnce.Do(func() {
		decoyHash, _ = cryptox.HashPassword(uuid.NewString())
	})
	return decoyHash
}

func (s *AccountService) hash(ctx context.Context, password string) (string, error) {
	defer metrics.ObserveHash("hash", time.Now())
	return s.Hasher.Hash(ctx, password)
}

func (s *AccountService) verify(ctx context.Context, password, encoded string) (bool, error) {
	defer metrics.ObserveHash("verify", time.Now())
	return s.Hasher.Verify(ctx, password, encoded)
}

// Register creates an ordinary account. The username and email must both be
// unused.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	return s.createUser(ctx, username, email, password, false)
}

func (s *AccountService) createUser(
	ctx context.Context,
	username, email, password string,
	admin bool,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	req := forumsdk.RegisterRequest{Username: username, Email: email, Password: password}
	if err := validate(req.Validate()); err != nil {
		return domain.User{}, err
	}

	if _, err := s.Store.Users().GetUserByUsername(ctx, username); err == nil {
		return domain.User{}, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	hash, err := s.hash(ctx, password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	now := s.now()
	u := domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      admin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
		LastLogin:    &now,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, s.clashFor(ctx, username, email)
		}
		return domain.User{}, err
	}

	log.Info("account registered",
		slog.String("user_id", u.ID.String()),
		slog.String("username", u.Username),
		slog.Bool("is_admin", u.IsAdmin),
	)
	return u, nil
}

// clashFor reports which unique field a failed insert collided on. The
// username wins when both are taken.
func (s *AccountService) clashFor(ctx context.Context, username, email string) error {
	if _, err := s.Store.Users().GetUserByUsername(ctx, username); err == nil {
		return ErrUsernameTaken
	}
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}

// Login checks a username and password and issues a token. Every failure
// that could reveal whether the username exists returns ErrInvalidLogin.
func (s *AccountService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByUsername(ctx, strings.TrimSpace(username))
	switch {
	case errors.Is(err, store.ErrNotFound):
		_, _ = s.verify(ctx, password, decoy())
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return LoginResult{}, ErrInvalidLogin
	case err != nil:
		return LoginResult{}, err
	}

	ok, err := s.verify(ctx, password, u.PasswordHash)
	if err != nil {
		log.Error("failed to verify password", slog.String("user_id", u.ID.String()), slog.Any("error", err))
		return LoginResult{}, err
	}
	if !ok || !u.IsActive {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		log.Warn("login rejected", slog.String("user_id", u.ID.String()), slog.Bool("active", u.IsActive))
		return LoginResult{}, ErrInvalidLogin
	}

	token, err := s.Tokens.Issue(jwtx.Identity{
		SubjectID:   u.ID,
		DisplayName: u.Username,
		IsAdmin:     u.IsAdmin,
	})
	if err != nil {
		log.Error("failed to issue token", slog.Any("error", err))
		return LoginResult{}, err
	}
	metrics.TokensIssued.Inc()

	now := s.now()
	if err := s.Store.Users().TouchLastLogin(ctx, u.ID, now); err != nil {
		return LoginResult{}, err
	}
	u.LastLogin = &now

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	log.Info("login succeeded", slog.String("user_id", u.ID.String()))
	return LoginResult{Token: token, User: u}, nil
}

// GetUserByID fetches an account.
func (s *AccountService) GetUserByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// UpdateProfile applies the set fields of upd to the account.
func (s *AccountService) UpdateProfile(ctx context.Context, id uuid.UUID, upd domain.ProfileUpdate) (domain.User, error) {
	req := forumsdk.UpdateUserRequest{
		DisplayName:     upd.DisplayName,
		Bio:             upd.Bio,
		AvatarURL:       upd.AvatarURL,
		ThemePreference: upd.ThemePreference,
	}
	if err := validate(req.Validate()); err != nil {
		return domain.User{}, err
	}

	var out domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		} else if err != nil {
			return err
		}

		upd.Apply(&u)
		u.UpdatedAt = s.now()
		if err := tx.Users().UpdateProfile(ctx, u); err != nil {
			return err
		}
		out = u
		return nil
	})
	return out, err
}

// ChangePassword replaces the password after checking the current one.
// Tokens issued before the change stay valid until they expire.
func (s *AccountService) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	req := forumsdk.ChangePasswordRequest{CurrentPassword: current, NewPassword: next}
	if err := validate(req.Validate()); err != nil {
		return err
	}

	u, err := s.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.verify(ctx, current, u.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		slogx.FromContext(ctx).Warn("password change rejected", slog.String("user_id", id.String()))
		return ErrCurrentPasswordIncorrect
	}

	hash, err := s.hash(ctx, next)
	if err != nil {
		return err
	}

	if err := s.Store.Users().UpdatePasswordHash(ctx, id, hash, s.now()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// EnsureAdmin makes sure an admin account named username exists. A missing
// account is created with the given email and password. An existing one is
// promoted if needed and its password is left alone. Reports whether the
// account was created.
func (s *AccountService) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, strings.TrimSpace(username))
	switch {
	case errors.Is(err, store.ErrNotFound):
		if _, err := s.createUser(ctx, username, email, password, true); err != nil {
			return false, err
		}
		return true, nil
	case err != nil:
		return false, err
	}

	if u.IsAdmin {
		return false, nil
	}
	if err := s.Store.Users().SetAdmin(ctx, u.ID, true, s.now()); err != nil {
		return false, err
	}
	slogx.FromContext(ctx).Info("account promoted to admin", slog.String("user_id", u.ID.String()))
	return false, nil
}
