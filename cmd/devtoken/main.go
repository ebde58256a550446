// Command devtoken mints a signed identity token for local development, in
// place of the external identity provider.
package main

import (
	"fmt"
	"os"
	"time"

	"taskboard/internal/auth"

	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = "devtoken"
	app.Usage = "Mint a development token accepted by the API server"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:     "user",
			Usage:    "User id placed in the user_id claim",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "email",
			Usage: "Email claim",
		},
		&cli.StringFlag{
			Name:  "name",
			Usage: "Display name claim",
		},
		&cli.StringFlag{
			Name:    "secret",
			Usage:   "HMAC secret, must match the server's JWT_SECRET",
			Value:   "supersecretkey",
			EnvVars: []string{"JWT_SECRET"},
		},
		&cli.DurationFlag{
			Name:  "ttl",
			Usage: "Token lifetime",
			Value: 24 * time.Hour,
		},
	}
	app.Action = func(c *cli.Context) error {
		ttl := c.Duration("ttl")
		if ttl <= 0 {
			return fmt.Errorf("ttl must be positive, got %s", ttl)
		}
		token, err := auth.GenerateToken(c.String("secret"), auth.Identity{
			UserID: c.String("user"),
			Email:  c.String("email"),
			Name:   c.String("name"),
		}, ttl)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
