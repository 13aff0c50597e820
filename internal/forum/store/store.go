package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/forum/internal/forum/domain"
	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this and expose sub-repositories so a Tx can hand out the same
// repositories bound to the transaction.
type Store interface {
	Users() Users
	Categories() Categories

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// GetUserByUsername matches exactly. Used by login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts u. A username or email clash yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile writes the profile fields of u and bumps updated_at.
	UpdateProfile(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string, at time.Time) error

	// TouchLastLogin records a successful login.
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error

	// SetAdmin flips is_admin. Used when bootstrapping an operator account.
	SetAdmin(ctx context.Context, id uuid.UUID, admin bool, at time.Time) error
}

type Categories interface {
	// ListCategories returns every category ordered by display_order, then name.
	ListCategories(ctx context.Context) ([]domain.Category, error)

	GetCategoryByID(ctx context.Context, id uuid.UUID) (domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (domain.Category, error)

	// CategorySlugTaken reports whether another category (not exclude) owns slug.
	CategorySlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error)

	CreateCategory(ctx context.Context, c domain.Category) error
	UpdateCategory(ctx context.Context, c domain.Category) error

	// DeleteCategory cascades to subcategories (per schema).
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	// ListSubcategories returns the subcategories of one category ordered by
	// display_order, then name.
	ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]domain.Subcategory, error)

	// ListAllSubcategories returns every subcategory in the same order, so
	// listing pages avoid a query per category.
	ListAllSubcategories(ctx context.Context) ([]domain.Subcategory, error)

	// GetSubcategory only matches a subcategory belonging to categoryID.
	GetSubcategory(ctx context.Context, categoryID, id uuid.UUID) (domain.Subcategory, error)

	// SubcategorySlugTaken reports whether another subcategory of categoryID
	// (not exclude) owns slug.
	SubcategorySlugTaken(ctx context.Context, categoryID uuid.UUID, slug string, exclude uuid.UUID) (bool, error)

	CreateSubcategory(ctx context.Context, s domain.Subcategory) error
	UpdateSubcategory(ctx context.Context, s domain.Subcategory) error
	DeleteSubcategory(ctx context.Context, categoryID, id uuid.UUID) error
}
