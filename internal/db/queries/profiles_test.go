package queries

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"eventhub/internal/db"
	"eventhub/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

// setupProfileQueriesTest создает ProfileQueries поверх sqlmock
func setupProfileQueriesTest(t *testing.T) (*ProfileQueries, sqlmock.Sqlmock) {
	mockDB, mock, _ := sqlmock.New()
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")

	dbInstance := &db.Database{DB: sqlxDB}

	q := &ProfileQueries{
		db: dbInstance,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}

	return q, mock
}

func TestGetStaffProfile(t *testing.T) {
	testCases := []struct {
		name        string
		userID      string
		mockSetup   func(mock sqlmock.Sqlmock)
		expected    *models.StaffProfile
		expectedErr bool
	}{
		{
			name:   "Профиль найден",
			userID: "42",
			mockSetup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"position", "gender", "phone_number", "address"}).
					AddRow(models.PositionChecker, "female", "+8801712345678", "12 Main Street")
				mock.ExpectQuery(`SELECT position, gender, phone_number, address FROM staff_profiles WHERE user_id = \$1`).
					WithArgs("42").
					WillReturnRows(rows)
			},
			expected: &models.StaffProfile{
				Position:    models.PositionChecker,
				Gender:      "female",
				PhoneNumber: "+8801712345678",
				Address:     "12 Main Street",
			},
		},
		{
			name:   "Профиль отсутствует",
			userID: "99",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT position, gender, phone_number, address FROM staff_profiles WHERE user_id = \$1`).
					WithArgs("99").
					WillReturnError(sql.ErrNoRows)
			},
			expected: nil,
		},
		{
			name:   "Ошибка базы данных",
			userID: "42",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT position, gender, phone_number, address FROM staff_profiles`).
					WillReturnError(errors.New("db error"))
			},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q, mock := setupProfileQueriesTest(t)
			tc.mockSetup(mock)

			profile, err := q.GetStaffProfile(context.Background(), tc.userID)

			if tc.expectedErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, profile)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUpsertStaffProfile(t *testing.T) {
	q, mock := setupProfileQueriesTest(t)

	profile := &models.StaffProfile{
		Position:    models.PositionSupport,
		Gender:      "female",
		PhoneNumber: "+8801712345678",
		Address:     "12 Main Street",
	}

	expectedSQL := `INSERT INTO staff_profiles \(user_id,position,gender,phone_number,address\) VALUES \(\$1,\$2,\$3,\$4,\$5\) ON CONFLICT \(user_id\) DO UPDATE SET position = EXCLUDED\.position, gender = EXCLUDED\.gender, phone_number = EXCLUDED\.phone_number, address = EXCLUDED\.address`
	mock.ExpectExec(expectedSQL).
		WithArgs("42", models.PositionSupport, "female", "+8801712345678", "12 Main Street").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := q.UpsertStaffProfile(context.Background(), "42", profile)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestUpsertStaffProfileOverwrite проверяет, что повторная запись
// проходит тем же запросом: побеждает последняя запись
func TestUpsertStaffProfileOverwrite(t *testing.T) {
	q, mock := setupProfileQueriesTest(t)

	first := &models.StaffProfile{Position: models.PositionChecker, Gender: "female"}
	second := &models.StaffProfile{Position: models.PositionSupervisor, Gender: "female"}

	mock.ExpectExec(`INSERT INTO staff_profiles`).
		WithArgs("42", models.PositionChecker, "female", "", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO staff_profiles`).
		WithArgs("42", models.PositionSupervisor, "female", "", "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, q.UpsertStaffProfile(context.Background(), "42", first))
	assert.NoError(t, q.UpsertStaffProfile(context.Background(), "42", second))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAttendeeProfile(t *testing.T) {
	q, mock := setupProfileQueriesTest(t)

	rows := sqlmock.NewRows([]string{"phone_number", "date_of_birth", "gender", "country", "city"}).
		AddRow("+8801712345678", "1995-04-12", "male", "Bangladesh", "Dhaka")

	mock.ExpectQuery(`SELECT phone_number, date_of_birth, gender, country, city FROM attendee_profiles WHERE user_id = \$1`).
		WithArgs("7").
		WillReturnRows(rows)

	profile, err := q.GetAttendeeProfile(context.Background(), "7")

	assert.NoError(t, err)
	assert.Equal(t, "Dhaka", profile.City)
	assert.Equal(t, "1995-04-12", profile.DateOfBirth)
}

// TestGetAttendeeProfileAbsent проверяет, что отсутствие профиля
// не считается ошибкой
func TestGetAttendeeProfileAbsent(t *testing.T) {
	q, mock := setupProfileQueriesTest(t)

	mock.ExpectQuery(`SELECT phone_number, date_of_birth, gender, country, city FROM attendee_profiles`).
		WillReturnError(sql.ErrNoRows)

	profile, err := q.GetAttendeeProfile(context.Background(), "7")

	assert.NoError(t, err)
	assert.Nil(t, profile)
}

func TestUpsertAttendeeProfile(t *testing.T) {
	q, mock := setupProfileQueriesTest(t)

	profile := &models.AttendeeProfile{
		PhoneNumber: "+8801712345678",
		DateOfBirth: "1995-04-12",
		Gender:      "male",
		Country:     "Bangladesh",
		City:        "Dhaka",
	}

	expectedSQL := `INSERT INTO attendee_profiles \(user_id,phone_number,date_of_birth,gender,country,city\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6\) ON CONFLICT \(user_id\) DO UPDATE SET`
	mock.ExpectExec(expectedSQL).
		WithArgs("7", "+8801712345678", "1995-04-12", "male", "Bangladesh", "Dhaka").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := q.UpsertAttendeeProfile(context.Background(), "7", profile)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertAttendeeProfileDBError(t *testing.T) {
	q, mock := setupProfileQueriesTest(t)

	mock.ExpectExec(`INSERT INTO attendee_profiles`).
		WillReturnError(errors.New("db error"))

	err := q.UpsertAttendeeProfile(context.Background(), "7", &models.AttendeeProfile{})

	assert.Error(t, err)
}
