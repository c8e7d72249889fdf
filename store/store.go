// Package store is the data-access layer for users and completion logs.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	"techlinter/models"
)

var (
	// ErrNotFound is returned when no user matches the lookup key.
	ErrNotFound = errors.New("user not found")

	// ErrDuplicateName is returned when a signup name is already taken.
	ErrDuplicateName = errors.New("name already exists")

	// ErrNoTokensLeft is returned when a debit is attempted at a zero balance.
	ErrNoTokensLeft = errors.New("no token left")
)

// UserStore runs all user and gpt_log queries against a bun connection.
type UserStore struct {
	db *bun.DB
}

// New creates a UserStore backed by the given database.
func New(db *bun.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user with a zero token balance and no admin rights.
// The password must already be hashed by the caller.
func (s *UserStore) Create(ctx context.Context, name, passwordHash string) (*models.User, error) {
	user := &models.User{
		Name:     name,
		Password: passwordHash,
	}

	_, err := s.db.NewInsert().Model(user).Returning("*").Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

// FindByName returns the user with the given display name.
func (s *UserStore) FindByName(ctx context.Context, name string) (*models.User, error) {
	user := &models.User{}
	err := s.db.NewSelect().Model(user).
		Where("name = ?", name).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select user by name: %w", err)
	}
	return user, nil
}

// FindByID returns the user with the given id.
func (s *UserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := s.db.NewSelect().Model(user).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select user by id: %w", err)
	}
	return user, nil
}

// ListAll returns every user, oldest first.
func (s *UserStore) ListAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.NewSelect().Model(&users).
		OrderExpr("u.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	return users, nil
}

// DecrementToken debits one token from the user inside a single transaction.
// The row is locked for the read-modify-write so concurrent debits for the
// same user serialize and the balance can never go negative.
func (s *UserStore) DecrementToken(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().Model(user).
			Where("id = ?", id).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("lock user: %w", err)
		}

		if user.Token <= 0 {
			return ErrNoTokensLeft
		}

		_, err = tx.NewUpdate().Model(user).
			Set("token = ?", user.Token-1).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("update token: %w", err)
		}

		user.Token--
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoTokensLeft) {
			return nil, err
		}
		return nil, fmt.Errorf("decrement token: %w", err)
	}

	return user, nil
}

// AppendLog records one proxied completion call for the user.
func (s *UserStore) AppendLog(ctx context.Context, userID int64, code, output string) (*models.GptLog, error) {
	entry := &models.GptLog{
		UserID: userID,
		Code:   code,
		Output: output,
	}

	_, err := s.db.NewInsert().Model(entry).Returning("*").Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("insert gpt log: %w", err)
	}

	return entry, nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.IntegrityViolation()
}
