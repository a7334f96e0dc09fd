package main

import (
	"context"
	"fmt"

	"docurequest/internal/gateway"
	"docurequest/internal/storage"
	"docurequest/internal/store"
	"docurequest/internal/wizard"
	"docurequest/pkg/types"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var statusCommand = &cli.Command{
	Name:      "status",
	Usage:     "Look up or update the status of a submitted request",
	ArgsUsage: "<request-id>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "set",
			Usage: "Move the request to a new status (Pending, Under Review, Completed)",
		},
		&cli.StringFlag{
			Name:  "notes",
			Usage: "Notes shown with the new status, defaults to the standard text",
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("expected exactly one request id")
		}

		cfg, err := loadConfig(c.String("env-prefix"))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cfg.DatabaseURL == "" {
			return fmt.Errorf("set DATABASE_URL, the stub gateway only lives inside a running server")
		}

		ctx := context.Background()

		pool, err := connectPostgres(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		requests := store.NewRequestRepository(pool)
		requestID := wizard.NormalizeRequestID(c.Args().First())

		if next := c.String("set"); next != "" {
			status, err := parseStatus(next)
			if err != nil {
				return err
			}

			err = requests.UpdateStatus(ctx, requestID, status, c.String("notes"))
			if err != nil {
				return fmt.Errorf("failed to update request %s: %w", requestID, err)
			}

			logrus.WithFields(logrus.Fields{
				"request_id": requestID,
				"status":     status,
			}).Info("request status updated")
		}

		// status reads never touch uploads
		repo := gateway.NewRepository(logrus.StandardLogger(), requests, storage.NewMemoryUploads())

		status, err := wizard.LookupStatus(ctx, repo, requestID)
		if err != nil {
			return err
		}

		pp.Println(status)

		return nil
	},
}

func parseStatus(value string) (types.RequestStatusKind, error) {
	for _, status := range []types.RequestStatusKind{types.StatusPending, types.StatusUnderReview, types.StatusCompleted} {
		if string(status) == value {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown status %q, expected Pending, Under Review or Completed", value)
}
