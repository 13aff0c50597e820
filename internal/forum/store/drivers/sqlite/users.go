package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/forum/internal/forum/domain"
	"github.com/google/uuid"
)

type usersRepo struct {
	q querier
}

const userColumns = `id, username, email, password_hash, display_name, bio, avatar_url,
	theme_preference, is_admin, is_active, created_at, updated_at, last_login`

func scanUser(row scanner) (domain.User, error) {
	var (
		u                               domain.User
		displayName, bio, avatar, theme sql.NullString
		lastLogin                       sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&displayName, &bio, &avatar, &theme,
		&u.IsAdmin, &u.IsActive, &u.CreatedAt, &u.UpdatedAt, &lastLogin,
	)
	if err != nil {
		return domain.User{}, err
	}

	u.DisplayName = mapNullStringPtr(displayName)
	u.Bio = mapNullStringPtr(bio)
	u.AvatarURL = mapNullStringPtr(avatar)
	u.ThemePreference = mapNullStringPtr(theme)
	u.LastLogin = mapNullTimePtr(lastLogin)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

func (r *usersRepo) getUserWhere(ctx context.Context, where string, arg any) (domain.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return r.getUserWhere(ctx, `id = ?`, id)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getUserWhere(ctx, `username = ?`, username)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getUserWhere(ctx, `email = ?`, email)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash,
		mapOptionalString(u.DisplayName),
		mapOptionalString(u.Bio),
		mapOptionalString(u.AvatarURL),
		mapOptionalString(u.ThemePreference),
		u.IsAdmin, u.IsActive,
		u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
		mapOptionalTime(u.LastLogin),
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, u domain.User) error {
	return requireAffected(r.q.ExecContext(ctx, `
		UPDATE users
		SET display_name = ?, bio = ?, avatar_url = ?, theme_preference = ?, updated_at = ?
		WHERE id = ?`,
		mapOptionalString(u.DisplayName),
		mapOptionalString(u.Bio),
		mapOptionalString(u.AvatarURL),
		mapOptionalString(u.ThemePreference),
		u.UpdatedAt.UTC(),
		u.ID,
	))
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string, at time.Time) error {
	return requireAffected(r.q.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		hash, at.UTC(), id,
	))
}

func (r *usersRepo) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return requireAffected(r.q.ExecContext(ctx,
		`UPDATE users SET last_login = ? WHERE id = ?`,
		at.UTC(), id,
	))
}

func (r *usersRepo) SetAdmin(ctx context.Context, id uuid.UUID, admin bool, at time.Time) error {
	return requireAffected(r.q.ExecContext(ctx,
		`UPDATE users SET is_admin = ?, updated_at = ? WHERE id = ?`,
		admin, at.UTC(), id,
	))
}
