package queries

import (
	"context"
	sqlPackage "database/sql"
	"fmt"

	"eventhub/internal/db"
	"eventhub/internal/models"

	"github.com/Masterminds/squirrel"
)

// ProfileQueriesInterface определяет интерфейс запросов к профилям
type ProfileQueriesInterface interface {
	GetStaffProfile(ctx context.Context, userID string) (*models.StaffProfile, error)
	UpsertStaffProfile(ctx context.Context, userID string, profile *models.StaffProfile) error
	GetAttendeeProfile(ctx context.Context, userID string) (*models.AttendeeProfile, error)
	UpsertAttendeeProfile(ctx context.Context, userID string, profile *models.AttendeeProfile) error
}

// ProfileQueries содержит методы запросов для профилей
type ProfileQueries struct {
	db *db.Database
	sq squirrel.StatementBuilderType
}

// NewProfileQueries создает новый экземпляр ProfileQueries
func NewProfileQueries(db *db.Database) *ProfileQueries {
	return &ProfileQueries{
		db: db,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).RunWith(db),
	}
}

// GetStaffProfile получает профиль сотрудника.
// Отсутствующий профиль не ошибка: возвращается nil.
func (q *ProfileQueries) GetStaffProfile(ctx context.Context, userID string) (*models.StaffProfile, error) {
	query := q.sq.
		Select("position", "gender", "phone_number", "address").
		From("staff_profiles").
		Where(squirrel.Eq{"user_id": userID})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var profile models.StaffProfile
	err = q.db.QueryRowxContext(ctx, sql, args...).StructScan(&profile)
	if err != nil {
		if err == sqlPackage.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get staff profile: %w", err)
	}

	return &profile, nil
}

// UpsertStaffProfile создает или обновляет профиль сотрудника.
// Запись перезаписывается целиком: версионирования нет,
// побеждает последняя запись.
func (q *ProfileQueries) UpsertStaffProfile(ctx context.Context, userID string, profile *models.StaffProfile) error {
	query := q.sq.
		Insert("staff_profiles").
		Columns("user_id", "position", "gender", "phone_number", "address").
		Values(userID, profile.Position, profile.Gender, profile.PhoneNumber, profile.Address).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET position = EXCLUDED.position, gender = EXCLUDED.gender, phone_number = EXCLUDED.phone_number, address = EXCLUDED.address")

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = q.db.ExecContext(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to upsert staff profile: %w", err)
	}

	return nil
}

// GetAttendeeProfile получает профиль участника.
// Отсутствующий профиль не ошибка: возвращается nil.
func (q *ProfileQueries) GetAttendeeProfile(ctx context.Context, userID string) (*models.AttendeeProfile, error) {
	query := q.sq.
		Select("phone_number", "date_of_birth", "gender", "country", "city").
		From("attendee_profiles").
		Where(squirrel.Eq{"user_id": userID})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var profile models.AttendeeProfile
	err = q.db.QueryRowxContext(ctx, sql, args...).StructScan(&profile)
	if err != nil {
		if err == sqlPackage.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendee profile: %w", err)
	}

	return &profile, nil
}

// UpsertAttendeeProfile создает или обновляет профиль участника
func (q *ProfileQueries) UpsertAttendeeProfile(ctx context.Context, userID string, profile *models.AttendeeProfile) error {
	query := q.sq.
		Insert("attendee_profiles").
		Columns("user_id", "phone_number", "date_of_birth", "gender", "country", "city").
		Values(userID, profile.PhoneNumber, profile.DateOfBirth, profile.Gender, profile.Country, profile.City).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET phone_number = EXCLUDED.phone_number, date_of_birth = EXCLUDED.date_of_birth, gender = EXCLUDED.gender, country = EXCLUDED.country, city = EXCLUDED.city")

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = q.db.ExecContext(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to upsert attendee profile: %w", err)
	}

	return nil
}
