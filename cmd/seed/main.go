// Command seed fills a development database with fake clients and prints a
// bearer token for the seeded tenant.
//
// Usage:
//
//	seed [-clients 50] [-share 0.4] [-plan trial] [-valid-days 14] [-profiles file.yaml]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/paymentflow/backend/internal/domain/identity"
	"github.com/paymentflow/backend/internal/infrastructure/auth"
	"github.com/paymentflow/backend/internal/infrastructure/config"
	"github.com/paymentflow/backend/internal/infrastructure/logger"
	"github.com/paymentflow/backend/internal/infrastructure/persistence"
	"github.com/paymentflow/backend/internal/infrastructure/seed"
)

func main() {
	tenant := flag.String("tenant", "", "tenant id to seed (default: new random tenant)")
	clients := flag.Int("clients", 50, "number of fake clients")
	share := flag.Float64("share", 0.4, "fraction of clients with reminders enabled")
	plan := flag.String("plan", string(identity.PlanTrial), "subscription plan: trial, basic, pro or lifetime")
	validDays := flag.Int("valid-days", 14, "subscription validity in days; 0 never expires, negative is already expired")
	fakeSeed := flag.Uint64("seed", 0, "fake data seed; 0 is random")
	profilesFile := flag.String("profiles", "", "reminder profile YAML fixture (default: built-in)")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "lifetime of the printed dev token")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(logger.ForEnvironment(cfg.App.Env, cfg.Log.Level))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	opts := seed.Options{
		Clients:       *clients,
		ReminderShare: *share,
		Plan:          identity.Plan(*plan),
		ValidFor:      time.Duration(*validDays) * 24 * time.Hour,
		Seed:          *fakeSeed,
	}
	if *tenant != "" {
		if opts.TenantID, err = uuid.Parse(*tenant); err != nil {
			log.Fatal("Invalid tenant id", zap.String("tenant", *tenant), zap.Error(err))
		}
	}
	if *profilesFile != "" {
		data, err := os.ReadFile(*profilesFile)
		if err != nil {
			log.Fatal("Failed to read profile fixture", zap.String("file", *profilesFile), zap.Error(err))
		}
		if opts.Profiles, err = seed.ParseProfiles(data); err != nil {
			log.Fatal("Invalid profile fixture", zap.Error(err))
		}
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	summary, err := seed.New(db.DB, log).Run(context.Background(), opts)
	if err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}

	token, err := auth.NewJWTService(cfg.JWT).Issue(auth.IssueInput{
		TenantID: summary.TenantID,
		UserID:   uuid.New(),
		Email:    "dev@paymentflow.local",
		TTL:      *tokenTTL,
	})
	if err != nil {
		log.Fatal("Failed to issue dev token", zap.Error(err))
	}

	fmt.Printf("tenant:      %s\n", summary.TenantID)
	fmt.Printf("profiles:    %d\n", summary.Profiles)
	fmt.Printf("clients:     %d\n", summary.Clients)
	fmt.Printf("receivables: %d\n", summary.Receivables)
	fmt.Printf("token:       %s\n", token)
}
