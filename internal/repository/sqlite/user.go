package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mozafut/revista/internal/apperror"
	"github.com/mozafut/revista/internal/model"
	"github.com/mozafut/revista/internal/repository"
)

// compile-time check that *UserStore implements repository.UserRepository
var _ repository.UserRepository = (*UserStore)(nil)

// UserStore persists accounts.
type UserStore struct {
	db *DB
}

const userColumns = `id, email, password, name, phone, role, created_at`

func scanUser(scan func(dest ...any) error) (model.User, error) {
	var (
		u                  model.User
		email, name, phone sql.NullString
	)
	if err := scan(&u.ID, &email, &u.Password, &name, &phone, &u.Role, &u.CreatedAt); err != nil {
		return model.User{}, err
	}
	u.Email = email.String
	u.Name = name.String
	u.Phone = stringPtr(phone)
	return u, nil
}

func (s *UserStore) getOne(ctx context.Context, where string, arg any) (*model.User, error) {
	var u model.User
	err := s.db.scope(ctx, func(q querier) error {
		var err error
		u, err = scanUser(q.QueryRowContext(ctx,
			`SELECT `+userColumns+` FROM users WHERE `+where+` = ?`, arg,
		).Scan)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID retrieves a user by id.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.getOne(ctx, "id", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %d: %w", id, err)
	}
	return u, nil
}

// GetByEmail retrieves a user by exact email match.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := s.getOne(ctx, "email", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", email)
		}
		return nil, fmt.Errorf("sqlite: getting user by email: %w", err)
	}
	return u, nil
}

// Create inserts a new account. The service checks for a duplicate email
// first, but two concurrent registrations can both pass that check; the
// UNIQUE constraint catches the loser and it is reported as a conflict.
func (s *UserStore) Create(ctx context.Context, user *model.User) error {
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	user.CreatedAt = s.db.clock.Now().UTC()

	res, err := s.db.exec(ctx,
		`INSERT INTO users (email, password, name, phone, role, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.Email,
		user.Password,
		user.Name,
		nullString(user.Phone),
		user.Role,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user", "email", user.Email)
		}
		return fmt.Errorf("sqlite: inserting user: %w", err)
	}

	user.ID = res.lastID
	return nil
}

// UpdateProfile overwrites name, email and phone. Nil fields are written
// as NULL. Password and role are never touched here.
func (s *UserStore) UpdateProfile(ctx context.Context, id int64, patch model.ProfilePatch) (bool, error) {
	res, err := s.db.exec(ctx,
		`UPDATE users SET name = ?, email = ?, phone = ? WHERE id = ?`,
		nullString(patch.Name),
		nullString(patch.Email),
		nullString(patch.Phone),
		id,
	)
	if err != nil {
		if isUniqueViolation(err) && patch.Email != nil {
			return false, apperror.Conflict("user", "email", *patch.Email)
		}
		return false, fmt.Errorf("sqlite: updating profile %d: %w", id, err)
	}
	return res.affected > 0, nil
}
