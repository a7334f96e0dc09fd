package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docurequest/internal/gateway"
	"docurequest/internal/server"
	"docurequest/internal/storage"
	"docurequest/internal/store"
	"docurequest/internal/wizard"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig(cCtx.String("env-prefix"))
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		logger.WithError(err).Warn("invalid LOG_LEVEL, falling back to info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	pool, err := connectPostgres(ctx, config)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}

	drafts, err := newDraftStore(ctx, config, pool, logger)
	if err != nil {
		return err
	}

	var uploads storage.Uploads = storage.NewMemoryUploads()
	if config.S3BucketName != "" {
		awsConfig, err := loadAWSConfig(ctx)
		if err != nil {
			return err
		}
		uploads = storage.NewS3Uploads(s3.NewFromConfig(awsConfig), config.S3BucketName)
	} else {
		logger.Warn("S3_BUCKET_NAME not set, keeping uploads in memory")
	}

	var (
		submitter wizard.Submitter
		statuses  wizard.StatusFetcher
	)
	if pool != nil {
		repo := gateway.NewRepository(logger, store.NewRequestRepository(pool), uploads)
		submitter, statuses = repo, repo
	} else {
		stub := gateway.NewStub(logger, time.Duration(config.GatewayDelayMS)*time.Millisecond)
		submitter, statuses = stub, stub
		logger.Info("DATABASE_URL not set, submitting to the in-process stub gateway")
	}

	srv, err := server.New(
		config,
		logger,
		drafts,
		uploads,
		submitter,
		statuses,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
