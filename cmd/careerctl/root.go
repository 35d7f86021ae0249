package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/edu2job/edu2job-server/internal/client"
)

// globalFlags are available to all subcommands.
type globalFlags struct {
	server      string
	sessionFile string
}

// NewRootCmd creates the root command for the careerctl CLI.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "careerctl",
		Short: "careerctl - command-line client for edu2job",
		Long: `careerctl registers and logs in to an edu2job server, shows the
dashboard and submits profiles to the career predictor.`,
		SilenceUsage: true,
	}

	defaultServer := os.Getenv("EDU2JOB_URL")
	if defaultServer == "" {
		defaultServer = "http://localhost:3000"
	}
	cmd.PersistentFlags().StringVar(&flags.server, "server", defaultServer, "edu2job server base URL")
	cmd.PersistentFlags().StringVar(&flags.sessionFile, "session-file", "", "session file path (default: user config dir)")

	cmd.AddCommand(newRegisterCmd(flags))
	cmd.AddCommand(newLoginCmd(flags))
	cmd.AddCommand(newLogoutCmd(flags))
	cmd.AddCommand(newDashboardCmd(flags))
	cmd.AddCommand(newPredictCmd(flags))

	return cmd
}

// newClient builds an API client from the global flags.
func (f *globalFlags) newClient() (*client.Client, error) {
	path := f.sessionFile
	if path == "" {
		var err error
		path, err = client.DefaultSessionPath()
		if err != nil {
			return nil, err
		}
	}
	return client.New(f.server, client.NewFileStore(path), nil), nil
}
