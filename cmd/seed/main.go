// Package main provides a CLI tool for seeding the configured storage with
// sample acquisitions and minting development tokens.
package main

import (
	"context"
	"fmt"
	"os"

	"procurement/internal/config"
	"procurement/internal/domain/acquisition"
	"procurement/internal/domain/auth"
	"procurement/internal/infrastructure/storage"
	"procurement/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load configuration", "error", err)
	}

	ctx := logger.WithLogger(context.Background(), log)

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalw("failed to open storage", "driver", cfg.StorageDriver, "error", err)
	}
	defer func() { _ = store.Close() }()

	service := acquisition.NewService(ctx, store, acquisition.WithLogger(log))

	if service.Count(ctx) > 0 && os.Getenv("SEED_FORCE") != "true" {
		log.Infow("storage already holds acquisitions, skipping seed", "count", service.Count(ctx))
	} else if err := seedAcquisitions(ctx, service, log); err != nil {
		log.Fatalw("failed to seed acquisitions", "error", err)
	}

	if cfg.AuthEnabled() {
		if err := printToken(cfg); err != nil {
			log.Fatalw("failed to mint token", "error", err)
		}
	}

	if err := service.Close(ctx); err != nil {
		log.Fatalw("failed to write state", "error", err)
	}
	log.Info("seeding completed successfully")
}

func seedAcquisitions(ctx context.Context, service *acquisition.Service, log *logger.Logger) error {
	catalogs := service.Catalogs(ctx)
	unit := func(i int) string { return catalogs.AdministrativeUnits[i%len(catalogs.AdministrativeUnits)] }
	kind := func(i int) string { return catalogs.GoodsServiceTypes[i%len(catalogs.GoodsServiceTypes)] }

	samples := []acquisition.Payload{
		{Budget: "5000000", Quantity: "10", UnitValue: "350000", AcquisitionDate: "2024-01-15", Provider: "Suministros Andinos S.A.S.", Documentation: "OC-2024-001"},
		{Budget: "1200000", Quantity: "40", UnitValue: "25000", AcquisitionDate: "2024-02-03", Provider: "Papelería Central", Documentation: "OC-2024-014"},
		{Budget: "9800000", Quantity: "1", UnitValue: "9500000", AcquisitionDate: "2024-03-20", Provider: "Consultores Asociados", Documentation: "CT-2024-007"},
		{Budget: "750000", Quantity: "3", UnitValue: "210000", AcquisitionDate: "2024-04-08", Provider: "Mantenimiento Integral Ltda."},
	}

	var lastID int64
	for i, p := range samples {
		p.Unit = unit(i)
		p.Type = kind(i)
		in, err := acquisition.Validate(p)
		if err != nil {
			return fmt.Errorf("sample %d: %w", i+1, err)
		}
		a, err := service.Create(ctx, in)
		if err != nil {
			return err
		}
		lastID = a.ID
		log.Infow("seeded acquisition", "id", a.ID, "provider", a.Provider, "total", a.TotalValue)
	}

	// One inactive record so both states show up in listings.
	if _, err := service.SetStatus(ctx, lastID, acquisition.StatusPayload{Active: false}); err != nil {
		return err
	}
	return nil
}

func printToken(cfg config.Config) error {
	email := os.Getenv("SEED_TOKEN_EMAIL")
	if email == "" {
		email = "buyer@procurement.local"
	}

	jwtConfig := auth.DefaultJWTConfig(cfg.JWTSecret)
	jwtConfig.Issuer = cfg.JWTIssuer
	token, expiresAt, err := auth.NewJWTService(jwtConfig).GenerateAccessToken("seed", email, []string{"buyer"})
	if err != nil {
		return err
	}
	fmt.Printf("access token (expires %s):\n%s\n", expiresAt.Format("2006-01-02 15:04:05 MST"), token)
	return nil
}
