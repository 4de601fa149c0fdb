package main

import (
	"fmt"
	"time"

	gtconstants "github.com/gametime/go-constants-sdk"
	"github.com/gametime/go-constants-sdk/gtcomponents"
	"github.com/gametime/go-constants-sdk/gtfiledata"
	"github.com/gametime/go-constants-sdk/gtsqlite"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/spf13/cobra"
)

const defaultSyncTimeout = 10 * time.Second

type commonFlags struct {
	defaultsFile  string
	overrideFiles []string
	storePath     string
	verbose       bool
}

func newRootCmd() *cobra.Command {
	var flags commonFlags
	cmd := &cobra.Command{
		Use:           "gtconstants",
		Short:         "Inspect Gametime constants configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       gtconstants.Version,
	}
	cmd.PersistentFlags().StringVar(&flags.defaultsFile, "defaults", "", "default constants file (JSON or YAML)")
	cmd.PersistentFlags().StringSliceVar(&flags.overrideFiles, "override", nil,
		"override constants file, applied in the order given")
	cmd.PersistentFlags().StringVar(&flags.storePath, "store", "",
		"SQLite database holding persisted hotfixes; if not set, hotfixes are not persisted")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log client activity to stderr")
	if err := cmd.MarkPersistentFlagRequired("defaults"); err != nil {
		panic(fmt.Errorf("failed to mark defaults flag as required: %w", err))
	}

	cmd.AddCommand(newGetCmd(&flags))
	cmd.AddCommand(newKeysCmd(&flags))
	cmd.AddCommand(newSyncCmd(&flags))
	return cmd
}

// makeClient builds a client whose lookup errors are returned through the misconfiguration hook
// rather than panicking.
func makeClient(cmd *cobra.Command, flags *commonFlags, config gtconstants.Config) (*gtconstants.Client, error) {
	minLevel := ldlog.Error
	if flags.verbose {
		minLevel = ldlog.Debug
	}
	config.Logging = gtcomponents.Logging().MinLevel(minLevel)
	config.Constants = gtfiledata.Constants().DefaultFile(flags.defaultsFile).OverrideFiles(flags.overrideFiles...)
	if flags.storePath != "" {
		config.Storage = gtcomponents.PersistentStorage(gtsqlite.DataStore().Path(flags.storePath)).NoCaching()
	}
	if config.OnMisconfiguration == nil {
		config.OnMisconfiguration = func(err error) {
			fmt.Fprintf(cmd.ErrOrStderr(), "misconfiguration: %s\n", err)
		}
	}
	return gtconstants.MakeClient(config)
}
