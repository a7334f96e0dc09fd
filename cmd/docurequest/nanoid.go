package main

import (
	"fmt"

	"docurequest/internal/utils"

	"github.com/urfave/cli/v2"
)

var nanoidCommand = &cli.Command{
	Name:  "nanoid",
	Usage: "Generate NanoIDs",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"c"},
			Usage:   "Number of IDs to generate",
			Value:   1,
		},
		&cli.BoolFlag{
			Name:  "request",
			Usage: "Generate request IDs instead of session IDs",
		},
	},
	Action: func(c *cli.Context) error {
		generate := utils.NanoID
		if c.Bool("request") {
			generate = utils.RequestID
		}

		count := c.Int("count")
		for range count {
			fmt.Println(generate())
		}
		return nil
	},
}
