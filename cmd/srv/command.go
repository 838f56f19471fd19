package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "QuestMaster"
	s.app.Usage = "Game session board for the Club JDR Discord guild"
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start the api server",
			Category:    "Api",
			Description: `Serves the whole REST API of the board.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate the database schema and seed the default trophies",
			Category:    "Database",
			Description: `Runs the schema migration against the configured database.`,
		},
	}
}
