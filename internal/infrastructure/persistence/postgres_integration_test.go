//go:build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/paymentflow/backend/internal/domain/finance"
	"github.com/paymentflow/backend/internal/domain/identity"
	"github.com/paymentflow/backend/internal/domain/notification"
	"github.com/paymentflow/backend/internal/domain/partner"
	"github.com/paymentflow/backend/internal/domain/shared"
	"github.com/paymentflow/backend/internal/infrastructure/migration"
	"github.com/paymentflow/backend/internal/infrastructure/persistence/models"
	"github.com/paymentflow/backend/internal/infrastructure/secret"
)

// newPostgresDB starts PostgreSQL in a container and applies the embedded migrations
func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("paymentflow_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := Open(gormpostgres.Open(dsn))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	m, err := migration.New(sqlDB, migration.Source(""), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())

	return db.DB
}

func saveClient(t *testing.T, repo *GormClientRepository, tenantID uuid.UUID, name string) *partner.Client {
	t.Helper()
	c, err := partner.NewClient(tenantID, name)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), c))
	return c
}

func TestPostgres_ClientReceivableLifecycle(t *testing.T) {
	db := newPostgresDB(t)
	ctx := context.Background()
	clients := NewGormClientRepository(db)
	receivables := NewGormReceivableRepository(db)
	tenantID := uuid.New()

	acme := saveClient(t, clients, tenantID, "Acme")
	globex := saveClient(t, clients, tenantID, "Globex")

	due := time.Now().Add(-48 * time.Hour)
	inv, err := finance.NewReceivable(tenantID, acme.ID, "INV-1", decimal.NewFromInt(120), &due)
	require.NoError(t, err)
	require.NoError(t, receivables.Save(ctx, inv))

	t.Run("invoice numbers are unique per tenant", func(t *testing.T) {
		dup, err := finance.NewReceivable(tenantID, globex.ID, "INV-1", decimal.NewFromInt(1), nil)
		require.NoError(t, err)
		assert.Error(t, receivables.Save(ctx, dup))
	})

	t.Run("other tenants may reuse an invoice number", func(t *testing.T) {
		otherTenant := uuid.New()
		initech := saveClient(t, clients, otherTenant, "Initech")
		same, err := finance.NewReceivable(otherTenant, initech.ID, "INV-1", decimal.NewFromInt(7), nil)
		require.NoError(t, err)
		require.NoError(t, receivables.Save(ctx, same))

		n, err := receivables.DeleteByClientIDs(ctx, otherTenant, []uuid.UUID{initech.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
		_, err = clients.DeleteByIDs(ctx, otherTenant, []uuid.UUID{initech.ID})
		require.NoError(t, err)
	})

	t.Run("client with receivables cannot be deleted first", func(t *testing.T) {
		err := clients.DeleteForTenant(ctx, tenantID, acme.ID)
		assert.Error(t, err)
	})

	t.Run("deleting receivables then clients succeeds", func(t *testing.T) {
		n, err := receivables.DeleteByClientIDs(ctx, tenantID, []uuid.UUID{acme.ID, globex.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		n, err = clients.DeleteByIDs(ctx, tenantID, []uuid.UUID{acme.ID, globex.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)

		count, err := clients.CountForTenant(ctx, tenantID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestPostgres_TenantIsolation(t *testing.T) {
	db := newPostgresDB(t)
	ctx := context.Background()
	clients := NewGormClientRepository(db)
	tenantA, tenantB := uuid.New(), uuid.New()

	a := saveClient(t, clients, tenantA, "Alpha")
	saveClient(t, clients, tenantB, "Beta")

	_, err := clients.FindByIDForTenant(ctx, tenantB, a.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	n, err := clients.DeleteByIDs(ctx, tenantB, []uuid.UUID{a.ID})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPostgres_ProfileDeletionUnlinksClients(t *testing.T) {
	db := newPostgresDB(t)
	ctx := context.Background()
	clients := NewGormClientRepository(db)
	tenantID := uuid.New()

	profile := partner.DefaultReminderProfile(tenantID)
	profile.ID = uuid.New()
	require.NoError(t, db.Create(models.ReminderProfileModelFromDomain(profile)).Error)

	c, err := partner.NewClient(tenantID, "Initech")
	require.NoError(t, err)
	c.SetReminderProfile(&profile.ID)
	require.NoError(t, clients.Save(ctx, c))

	require.NoError(t, db.Exec("DELETE FROM reminder_profiles WHERE id = ?", profile.ID).Error)

	got, err := clients.FindByIDForTenant(ctx, tenantID, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ReminderProfileID)
}

func TestPostgres_SubscriptionsAndSettings(t *testing.T) {
	db := newPostgresDB(t)
	ctx := context.Background()
	now := time.Now()

	subs := NewGormSubscriptionRepository(db)
	active, expired, forever := uuid.New(), uuid.New(), uuid.New()
	future, past := now.Add(24*time.Hour), now.Add(-time.Hour)
	for tenantID, exp := range map[uuid.UUID]*time.Time{active: &future, expired: &past, forever: nil} {
		sub, err := identity.NewSubscription(tenantID, identity.PlanBasic, exp)
		require.NoError(t, err)
		require.NoError(t, subs.Save(ctx, sub))
	}
	ids, err := subs.FindActiveTenantIDs(ctx, now)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{active, forever}, ids)

	box, err := secret.NewBox("integration-passphrase")
	require.NoError(t, err)
	settings := NewGormEmailSettingsRepository(db, box)
	tenantID := uuid.New()
	require.NoError(t, settings.Save(ctx, &notification.EmailSettings{
		TenantID: tenantID,
		SMTP: notification.SMTPSettings{
			Host: "smtp.example.com", Port: 587, Username: "u", Password: "hunter2", FromEmail: "a@example.com",
		},
	}))

	var stored string
	require.NoError(t, db.Raw("SELECT smtp_password FROM email_settings WHERE tenant_id = ?", tenantID).Scan(&stored).Error)
	assert.NotEqual(t, "hunter2", stored)

	got, err := settings.FindByTenant(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got.SMTP.Password)
}
