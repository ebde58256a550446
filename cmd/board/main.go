package main

import (
	"fmt"
	"os"

	"taskboard/internal/client"
	"taskboard/internal/config"
	"taskboard/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = "board"
	app.Usage = "Terminal client for the task board API"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Value: config.DefaultClientConfigPath(),
			Usage: "Path to the client config file",
		},
		&cli.StringFlag{
			Name:  "server",
			Usage: "API base URL, overrides server_url",
		},
		&cli.StringFlag{
			Name:  "save-token",
			Usage: "Store this token in the config file and exit",
		},
	}
	app.Action = runBoard

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runBoard(c *cli.Context) error {
	path := c.String("config")

	if token := c.String("save-token"); token != "" {
		cfg := &config.ClientConfig{ServerURL: c.String("server"), Token: token}
		if cfg.ServerURL == "" {
			cfg.ServerURL = "http://localhost:8080"
		}
		if err := cfg.Save(path); err != nil {
			return err
		}
		fmt.Printf("Saved token to %s\n", path)
		return nil
	}

	cfg, err := config.LoadClient(path)
	if err != nil {
		return err
	}
	if server := c.String("server"); server != "" {
		cfg.ServerURL = server
	}

	p := tea.NewProgram(
		tui.NewApp(client.New(cfg.ServerURL, cfg.Token)),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
