package main

import (
	"context"
	"errors"
	"fmt"

	"docurequest/internal/wizard"
	"docurequest/pkg/types"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var draftCommand = &cli.Command{
	Name:      "draft",
	Usage:     "Inspect or discard the draft of a session",
	ArgsUsage: "<session-id>",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "delete",
			Usage: "Discard the draft after printing it",
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("expected exactly one session id")
		}

		cfg, err := loadConfig(c.String("env-prefix"))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cfg.DraftStore == "memory" {
			return fmt.Errorf("in-memory drafts only live inside a running server, set DRAFT_STORE")
		}

		ctx := context.Background()

		pool, err := connectPostgres(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if pool != nil {
			defer pool.Close()
		}

		drafts, err := newDraftStore(ctx, cfg, pool, logrus.StandardLogger())
		if err != nil {
			return err
		}

		key := wizard.Key(c.Args().First())

		draft, err := drafts.Load(ctx, key)
		if errors.Is(err, types.ErrDraftNotFound) {
			return fmt.Errorf("no draft stored under %s", key)
		}
		if err != nil {
			return err
		}

		pp.Println(draft)

		if c.Bool("delete") {
			if err := drafts.Delete(ctx, key); err != nil {
				return fmt.Errorf("failed to delete draft %s: %w", key, err)
			}
			logrus.WithField("draft_key", key).Info("draft deleted")
		}

		return nil
	},
}
