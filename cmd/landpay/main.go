package main

import (
	"context"

	"github.com/gabapcia/landpay/internal/config"
	"github.com/gabapcia/landpay/internal/handlers/cli"
	"github.com/gabapcia/landpay/internal/handlers/httpapi"
	"github.com/gabapcia/landpay/internal/infra/blockchain/ethereum"
	"github.com/gabapcia/landpay/internal/infra/storage/postgres"
	"github.com/gabapcia/landpay/internal/infra/storage/redis"
	"github.com/gabapcia/landpay/internal/ledger"
	"github.com/gabapcia/landpay/internal/pkg/logger"
	"github.com/gabapcia/landpay/internal/pkg/telemetry"
	"github.com/gabapcia/landpay/internal/pkg/transport/jsonrpc"
	"github.com/gabapcia/landpay/internal/pkg/validation"
	"github.com/gabapcia/landpay/internal/reconciler"
	"github.com/gabapcia/landpay/internal/verification"
)

const serviceName = "landpay"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(logger.WithLevel(cfg.LogLevel)); err != nil {
		panic(err)
	}
	defer logger.Sync()

	validation.Init()

	telemetryShutdown, err := telemetry.Init(ctx, serviceName)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize telemetry", "error", err)
	}
	defer telemetryShutdown(ctx)

	pg, err := postgres.NewClient(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal(ctx, "failed to connect to postgres", "error", err)
	}
	defer pg.Close()

	rd, err := redis.NewClient(ctx, cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal(ctx, "failed to connect to redis", "error", err)
	}
	defer rd.Close()

	chain := ethereum.NewClient(
		jsonrpc.NewClient(cfg.ProviderEndpoint),
		cfg.ChainAccount,
		cfg.ContractAddress,
		ethereum.WithGasLimit(cfg.GasLimit),
		ethereum.WithReceiptPollInterval(cfg.ReceiptPollInterval),
		ethereum.WithReceiptTimeout(cfg.ReceiptTimeout),
	)

	ledgerService := ledger.New(pg)
	reconcilerService := reconciler.New(chain, pg,
		reconciler.WithTxLocker(rd),
		reconciler.WithLockTTL(cfg.TxLockTTL),
	)
	verificationService := verification.New(verification.NewTextEvidenceComparer(), chain, pg)

	server := httpapi.NewServer(ledgerService, reconcilerService, verificationService)

	if err := cli.Run(ctx, cfg.HTTPAddress, server, reconcilerService); err != nil {
		logger.Fatal(ctx, "application terminated with error", "error", err)
	}
}
