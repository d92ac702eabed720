package gorm

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server/store"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 mockDB,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	require.NoError(t, err)

	return gormDB, mock
}

func q(sql string) string {
	return regexp.QuoteMeta(sql)
}

var userColumns = []string{"id", "email", "hashed_password", "created_at", "email_notifications_enabled", "push_notifications_enabled", "timezone"}

var subscriptionColumns = []string{"id", "user_id", "name", "cost", "currency", "billing_cycle", "next_billing_date", "status", "reminder_days_before", "deleted_at"}

func subscriptionRow(rows *sqlmock.Rows, id, userID uint, name string, cost float64, next time.Time) *sqlmock.Rows {
	return rows.AddRow(id, userID, name, cost, "USD", "monthly", next, "active", 3, nil)
}

func TestHealthStore_CheckConnectivity(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewHealthStore(db)

	mock.ExpectExec(q("SELECT 1")).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.NoError(t, s.CheckConnectivity(context.Background()))

	mock.ExpectExec(q("SELECT 1")).WillReturnError(errors.New("connection refused"))
	assert.Error(t, s.CheckConnectivity(context.Background()))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersStore_CreateUser(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewUsersStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(q(`INSERT INTO "users"`)).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectCommit()

	user := model.NewUser("alice@example.com", "hash")
	require.NoError(t, s.CreateUser(context.Background(), user))
	assert.Equal(t, uint(5), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersStore_CreateUser_Duplicate(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewUsersStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(q(`INSERT INTO "users"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	mock.ExpectRollback()

	err := s.CreateUser(context.Background(), model.NewUser("alice@example.com", "hash"))
	assert.ErrorIs(t, err, store.ErrEmailTaken)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("duplicate key value violates unique constraint (SQLSTATE 23505)")))
	assert.False(t, isUniqueViolation(nil))
}

func TestUsersStore_GetUser(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewUsersStore(db)
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(q(`SELECT * FROM "users" WHERE id = $1`)).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(5, "alice@example.com", "hash", created, true, false, "Europe/Paris"))

	user, err := s.GetUser(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.False(t, user.PushNotificationsEnabled)
	assert.Equal(t, "Europe/Paris", user.Timezone)
}

func TestUsersStore_GetUser_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewUsersStore(db)

	mock.ExpectQuery(q(`SELECT * FROM "users"`)).WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := s.GetUser(context.Background(), 9)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUsersStore_GetUserByEmail(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewUsersStore(db)

	mock.ExpectQuery(q(`WHERE lower(email) = lower($1)`)).
		WithArgs("Alice@Example.com").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(5, "alice@example.com", "hash", time.Now(), true, true, "UTC"))

	user, err := s.GetUserByEmail(context.Background(), "Alice@Example.com")
	require.NoError(t, err)
	assert.Equal(t, uint(5), user.ID)
}

func TestUsersStore_UpdateUser(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewUsersStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(q(`UPDATE "users" SET`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	user := &model.User{ID: 5, EmailNotificationsEnabled: false, Timezone: "UTC"}
	assert.NoError(t, s.UpdateUser(context.Background(), user))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoriesStore_EnsureSystemCategories(t *testing.T) {
	t.Run("already seeded", func(t *testing.T) {
		db, mock := setupTestDB(t)
		s := NewCategoriesStore(db)

		mock.ExpectQuery(q(`SELECT count(*) FROM "categories" WHERE is_system = $1`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		assert.NoError(t, s.EnsureSystemCategories(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("seeds when empty", func(t *testing.T) {
		db, mock := setupTestDB(t)
		s := NewCategoriesStore(db)

		mock.ExpectQuery(q(`SELECT count(*) FROM "categories"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		ids := sqlmock.NewRows([]string{"id"})
		for i := range model.SystemCategories {
			ids.AddRow(i + 1)
		}
		mock.ExpectBegin()
		mock.ExpectQuery(q(`INSERT INTO "categories"`)).WillReturnRows(ids)
		mock.ExpectCommit()

		assert.NoError(t, s.EnsureSystemCategories(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCategoriesStore_NameTaken(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewCategoriesStore(db)

	mock.ExpectQuery(q(`SELECT count(*) FROM "categories"`)+`.*`+q(`lower(name) = lower(`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	taken, err := s.NameTaken(context.Background(), 5, "Music", 12)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestCategoriesStore_GetCategory_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewCategoriesStore(db)

	mock.ExpectQuery(q(`SELECT * FROM "categories"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := s.GetCategory(context.Background(), 5, 99)
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
}

func TestCategoriesStore_SubscriptionCounts(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewCategoriesStore(db)

	mock.ExpectQuery(q(`SELECT category_id, count(*) AS count FROM "subscriptions"`)).
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "count"}).AddRow(1, 3).AddRow(8, 1))

	counts, err := s.SubscriptionCounts(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, map[uint]int64{1: 3, 8: 1}, counts)
}

func TestCategoriesStore_DeleteCategory(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewCategoriesStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(q(`SELECT * FROM "categories" WHERE is_system = $1 AND name = $2`)).
		WithArgs(true, "Other").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_system"}).AddRow(7, "Other", true))
	mock.ExpectExec(q(`UPDATE "subscriptions" SET "category_id"=$1`)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(q(`UPDATE "categories" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	userID := uint(5)
	category := &model.Category{ID: 12, UserID: &userID, Name: "Music"}
	require.NoError(t, s.DeleteCategory(context.Background(), userID, category))
	assert.NotNil(t, category.DeletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoriesStore_DeleteCategory_RollsBack(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewCategoriesStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(q(`SELECT * FROM "categories"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_system"}).AddRow(7, "Other", true))
	mock.ExpectExec(q(`UPDATE "subscriptions"`)).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	userID := uint(5)
	category := &model.Category{ID: 12, UserID: &userID}
	assert.Error(t, s.DeleteCategory(context.Background(), userID, category))
	assert.Nil(t, category.DeletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionsStore_CreateSubscription(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewSubscriptionsStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(q(`INSERT INTO "subscriptions"`)).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery(q(`INSERT INTO "subscription_price_history"`)).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	sub := &model.Subscription{
		UserID:          5,
		Name:            "Netflix",
		Cost:            15.99,
		BillingCycle:    model.BillingCycleMonthly,
		NextBillingDate: model.NewDate(time.Now().AddDate(0, 0, 10)),
	}
	require.NoError(t, s.CreateSubscription(context.Background(), sub))
	assert.Equal(t, uint(11), sub.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionsStore_GetSubscription(t *testing.T) {
	t.Run("hides deleted rows", func(t *testing.T) {
		db, mock := setupTestDB(t)
		s := NewSubscriptionsStore(db)

		mock.ExpectQuery(q(`user_id = $2`)+`.*`+q(`AND deleted_at IS NULL`)).
			WithArgs(11, 5).
			WillReturnRows(sqlmock.NewRows(subscriptionColumns))

		_, err := s.GetSubscription(context.Background(), 5, 11, false)
		assert.ErrorIs(t, err, store.ErrSubscriptionNotFound)
	})

	t.Run("includes deleted rows on request", func(t *testing.T) {
		db, mock := setupTestDB(t)
		s := NewSubscriptionsStore(db)
		next := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(q(`SELECT * FROM "subscriptions" WHERE id = $1 AND user_id = $2 ORDER BY`)).
			WillReturnRows(subscriptionRow(sqlmock.NewRows(subscriptionColumns), 11, 5, "Netflix", 15.99, next))

		sub, err := s.GetSubscription(context.Background(), 5, 11, true)
		require.NoError(t, err)
		assert.Equal(t, "Netflix", sub.Name)
		assert.Equal(t, model.BillingCycleMonthly, sub.BillingCycle)
		assert.Equal(t, "2026-04-01", sub.NextBillingDate.String())
	})
}

func TestSubscriptionsStore_ListSubscriptions(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewSubscriptionsStore(db)
	next := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	all := sqlmock.NewRows(subscriptionColumns)
	subscriptionRow(all, 1, 5, "Netflix", 15.99, next)
	subscriptionRow(all, 2, 5, "Spotify", 9.99, next)
	mock.ExpectQuery(q(`name ILIKE $3`)+`.*`+q(`ORDER BY cost DESC, id DESC`)).
		WithArgs(5, "active", "%fl\\%x%").
		WillReturnRows(all)

	page := sqlmock.NewRows(subscriptionColumns)
	subscriptionRow(page, 2, 5, "Spotify", 9.99, next)
	mock.ExpectQuery(q(`ORDER BY cost DESC, id DESC LIMIT 1 OFFSET 1`)).
		WillReturnRows(page)

	result, err := s.ListSubscriptions(context.Background(), 5, store.SubscriptionFilter{
		Status:     store.StatusFilterActive,
		Search:     "fl%x",
		SortBy:     store.SortByCost,
		Descending: true,
		Limit:      1,
		Offset:     1,
	})
	require.NoError(t, err)
	assert.Len(t, result.Matching, 2)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Spotify", result.Items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionsStore_ListByScope(t *testing.T) {
	tests := []struct {
		name  string
		scope store.Scope
		where string
	}{
		{"active", store.ScopeActive, `deleted_at IS NULL AND status = $2`},
		{"cancelled paid", store.ScopeCancelledPaid, `was_free_trial = $4`},
		{"live", store.ScopeLive, `WHERE user_id = $1 AND deleted_at IS NULL ORDER BY id`},
		{"all", store.ScopeAll, `WHERE user_id = $1 ORDER BY id`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupTestDB(t)
			s := NewSubscriptionsStore(db)

			mock.ExpectQuery(q(tt.where)).WillReturnRows(sqlmock.NewRows(subscriptionColumns))

			_, err := s.ListByScope(context.Background(), 5, tt.scope)
			assert.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("unknown scope", func(t *testing.T) {
		db, _ := setupTestDB(t)
		_, err := NewSubscriptionsStore(db).ListByScope(context.Background(), 5, store.Scope(42))
		assert.Error(t, err)
	})
}

func TestSubscriptionsStore_UpdateSubscription(t *testing.T) {
	sub := &model.Subscription{
		ID:              11,
		UserID:          5,
		Name:            "Netflix",
		Cost:            17.99,
		BillingCycle:    model.BillingCycleMonthly,
		NextBillingDate: model.NewDate(time.Now()),
	}

	t.Run("price unchanged", func(t *testing.T) {
		db, mock := setupTestDB(t)
		s := NewSubscriptionsStore(db)

		mock.ExpectBegin()
		mock.ExpectExec(q(`UPDATE "subscriptions" SET`)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, s.UpdateSubscription(context.Background(), sub, false, time.Now()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("price changed rolls history", func(t *testing.T) {
		db, mock := setupTestDB(t)
		s := NewSubscriptionsStore(db)

		mock.ExpectBegin()
		mock.ExpectExec(q(`UPDATE "subscriptions" SET`)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(q(`UPDATE "subscription_price_history" SET "effective_to"=$1 WHERE subscription_id = $2 AND effective_to IS NULL`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(q(`INSERT INTO "subscription_price_history"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
		mock.ExpectCommit()

		require.NoError(t, s.UpdateSubscription(context.Background(), sub, true, time.Now()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSubscriptionsStore_PriceHistory(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewSubscriptionsStore(db)
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(q(`SELECT * FROM "subscription_price_history" WHERE subscription_id = $1 ORDER BY effective_from DESC, id DESC`)).
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"id", "subscription_id", "cost", "currency", "billing_cycle", "effective_from", "effective_to"}).
			AddRow(2, 11, 17.99, "USD", "monthly", from.AddDate(0, 1, 0), nil).
			AddRow(1, 11, 15.99, "USD", "monthly", from, from.AddDate(0, 1, 0)))

	rows, err := s.PriceHistory(context.Background(), 11)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Nil(t, rows[0].EffectiveTo)
	assert.NotNil(t, rows[1].EffectiveTo)
}

func TestRemindersStore_RemindedSubscriptions(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewRemindersStore(db)
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	subs := []model.Subscription{
		{ID: 1, NextBillingDate: model.NewDate(due)},
		{ID: 2, NextBillingDate: model.NewDate(due)},
	}

	mock.ExpectQuery(q(`SELECT * FROM "reminder_logs" WHERE subscription_id IN ($1,$2) AND status = $3`)).
		WithArgs(1, 2, "sent").
		WillReturnRows(sqlmock.NewRows([]string{"id", "subscription_id", "scheduled_for", "status"}).
			AddRow(1, 1, due, "sent").
			AddRow(2, 2, due.AddDate(0, -1, 0), "sent"))

	reminded, err := s.RemindedSubscriptions(context.Background(), subs)
	require.NoError(t, err)
	assert.True(t, reminded[1])
	assert.False(t, reminded[2])
}

func TestRemindersStore_RemindedSubscriptions_Empty(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewRemindersStore(db)

	reminded, err := s.RemindedSubscriptions(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, reminded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemindersStore_ReminderCandidates(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewRemindersStore(db)
	next := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	subs := sqlmock.NewRows(subscriptionColumns)
	subscriptionRow(subs, 1, 5, "Netflix", 15.99, next)
	subscriptionRow(subs, 2, 6, "Spotify", 9.99, next)
	subscriptionRow(subs, 3, 5, "Hulu", 7.99, next)
	mock.ExpectQuery(q(`SELECT * FROM "subscriptions" WHERE deleted_at IS NULL AND status = $1`)).
		WithArgs("active").
		WillReturnRows(subs)
	mock.ExpectQuery(q(`SELECT * FROM "users" WHERE id IN ($1,$2)`)).
		WithArgs(5, 6).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(5, "a@example.com", "h", next, true, true, "UTC"))

	candidates, err := s.ReminderCandidates(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "Netflix", candidates[0].Subscription.Name)
	assert.Equal(t, "Hulu", candidates[1].Subscription.Name)
	assert.Equal(t, "a@example.com", candidates[1].User.Email)
}

func TestRemindersStore_HasReminder(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewRemindersStore(db)
	when := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(q(`SELECT count(*) FROM "reminder_logs" WHERE subscription_id = $1 AND scheduled_for = $2`)).
		WithArgs(11, when).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := s.HasReminder(context.Background(), 11, when)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRemindersStore_ListReminderLogs(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewRemindersStore(db)
	sent := time.Date(2026, 3, 29, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(q(`SELECT count(*) FROM "reminder_logs" WHERE user_id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(q(`ORDER BY sent_at DESC, id DESC LIMIT 2 OFFSET 1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "subscription_id", "reminder_type", "scheduled_for", "sent_at", "status"}).
			AddRow(2, 5, 11, "email", sent, sent, "sent").
			AddRow(1, 5, 11, "in_app", sent, sent, "sent"))

	logs, total, err := s.ListReminderLogs(context.Background(), 5, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, logs, 2)
	assert.Equal(t, model.ReminderTypeEmail, logs[0].ReminderType)
	assert.Equal(t, model.ReminderTypeInApp, logs[1].ReminderType)
}

func TestRemindersStore_CreateReminderLogs(t *testing.T) {
	when := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	logs := func() []*model.ReminderLog {
		return []*model.ReminderLog{
			{UserID: 5, SubscriptionID: 11, ReminderType: model.ReminderTypeInApp, ScheduledFor: when, SentAt: when},
			{UserID: 5, SubscriptionID: 11, ReminderType: model.ReminderTypeEmail, ScheduledFor: when, SentAt: when},
		}
	}

	t.Run("commits both logs", func(t *testing.T) {
		db, mock := setupTestDB(t)
		s := NewRemindersStore(db)

		mock.ExpectBegin()
		mock.ExpectQuery(q(`INSERT INTO "reminder_logs"`)).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery(q(`INSERT INTO "reminder_logs"`)).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
		mock.ExpectCommit()

		written := logs()
		require.NoError(t, s.CreateReminderLogs(context.Background(), written...))
		assert.Equal(t, uint(2), written[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back the in-app log when the email log fails", func(t *testing.T) {
		db, mock := setupTestDB(t)
		s := NewRemindersStore(db)

		mock.ExpectBegin()
		mock.ExpectQuery(q(`INSERT INTO "reminder_logs"`)).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery(q(`INSERT INTO "reminder_logs"`)).WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err := s.CreateReminderLogs(context.Background(), logs()...)
		assert.ErrorContains(t, err, "email reminder log")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
