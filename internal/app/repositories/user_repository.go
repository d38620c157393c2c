package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/middleway/middleway/internal/app/models"
	"github.com/middleway/middleway/internal/pkg/apperrors"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByEmails(ctx context.Context, emails []string) ([]*models.User, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	GetAllExcept(ctx context.Context, userID int64) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateRole(ctx context.Context, userID int64, role models.Role) error
}

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password, role, location, preferred_distance, preferences, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.Role,
		&user.Location, &user.PreferredDistance, &user.Preferences,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts a new user and returns its ID
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	exists, err := r.EmailExists(ctx, user.Email)
	if err != nil {
		return 0, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return 0, apperrors.ErrEmailAlreadyExists
	}

	preferences := user.Preferences
	if preferences == nil {
		preferences = []string{}
	}

	var id int64
	err = r.db.QueryRow(ctx, `
		INSERT INTO users (name, email, password, role, location, preferred_distance, preferences)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		user.Name, user.Email, user.Password, user.Role, user.Location,
		user.PreferredDistance, preferences).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1`, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email (case-sensitive exact match)
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1`, email))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	return user, nil
}

// GetByEmails retrieves all users whose email is in the given set
func (r *UserRepository) GetByEmails(ctx context.Context, emails []string) ([]*models.User, error) {
	if len(emails) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = ANY($1)`, emails)
	if err != nil {
		return nil, fmt.Errorf("error fetching users by emails: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// GetByIDs retrieves all users whose ID is in the given set
func (r *UserRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("error fetching users by ids: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

// GetAll retrieves every user
func (r *UserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error fetching users: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// GetAllExcept retrieves every user except the given one
func (r *UserRepository) GetAllExcept(ctx context.Context, userID int64) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id <> $1
		ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching users: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// Update persists a user's mutable fields
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	preferences := user.Preferences
	if preferences == nil {
		preferences = []string{}
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, password = $3, location = $4,
		    preferred_distance = $5, preferences = $6, updated_at = NOW()
		WHERE id = $7`,
		user.Name, user.Email, user.Password, user.Location,
		user.PreferredDistance, preferences, user.ID)

	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateRole sets a user's role. The write is idempotent: setting the role a
// user already has succeeds without change.
func (r *UserRepository) UpdateRole(ctx context.Context, userID int64, role models.Role) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET role = $1, updated_at = NOW()
		WHERE id = $2`, role, userID)

	if err != nil {
		return fmt.Errorf("error updating role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

func collectUsers(rows pgx.Rows) ([]*models.User, error) {
	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}
