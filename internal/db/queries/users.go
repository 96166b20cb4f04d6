package queries

import (
	"context"
	sqlPackage "database/sql"
	"fmt"

	"eventhub/internal/db"
	"eventhub/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// UserQueriesInterface определяет интерфейс запросов к учетным записям
type UserQueriesInterface interface {
	CreateUser(ctx context.Context, user *models.User) (string, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetUserWithCredentials(ctx context.Context, email, role string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// UserQueries содержит методы запросов для учетных записей
type UserQueries struct {
	db *db.Database
	sq squirrel.StatementBuilderType
}

// NewUserQueries создает новый экземпляр UserQueries
func NewUserQueries(db *db.Database) *UserQueries {
	return &UserQueries{
		db: db,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).RunWith(db),
	}
}

// CreateUser создает нового пользователя. Пароль приходит уже в виде хеша.
func (q *UserQueries) CreateUser(ctx context.Context, user *models.User) (string, error) {
	id := uuid.New().String()

	query := q.sq.
		Insert("users").
		Columns("id", "email", "role", "first_name", "last_name", "password_hash").
		Values(id, user.Email, user.Role, user.FirstName, user.LastName, user.PasswordHash).
		Suffix("RETURNING id")

	sql, args, err := query.ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build query: %w", err)
	}

	var createdID string
	err = q.db.QueryRowContext(ctx, sql, args...).Scan(&createdID)
	if err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return createdID, nil
}

// EmailExists проверяет, существует ли пользователь с таким email
func (q *UserQueries) EmailExists(ctx context.Context, email string) (bool, error) {
	query := q.sq.
		Select("1").
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	var exists int
	err = q.db.QueryRowContext(ctx, sql, args...).Scan(&exists)
	if err != nil {
		if err == sqlPackage.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return true, nil
}

// GetUserWithCredentials получает пользователя с хешем пароля по email и роли
func (q *UserQueries) GetUserWithCredentials(ctx context.Context, email, role string) (*models.User, error) {
	query := q.sq.
		Select("id", "email", "role", "first_name", "last_name", "password_hash").
		From("users").
		Where(squirrel.Eq{"email": email, "role": role})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var user models.User
	err = q.db.QueryRowxContext(ctx, sql, args...).StructScan(&user)
	if err != nil {
		if err == sqlPackage.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetUserByID получает пользователя по идентификатору
func (q *UserQueries) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := q.sq.
		Select("id", "email", "role", "first_name", "last_name", "password_hash").
		From("users").
		Where(squirrel.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var user models.User
	err = q.db.QueryRowxContext(ctx, sql, args...).StructScan(&user)
	if err != nil {
		if err == sqlPackage.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
