package main

import (
	"fmt"

	gtconstants "github.com/gametime/go-constants-sdk"

	"github.com/spf13/cobra"
)

func newGetCmd(flags *commonFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print the resolved value of a constant as JSON",
		Long: "Print the resolved value of a constant as JSON. A hotfix persisted by an earlier sync takes " +
			"precedence over the files when --store is given.",
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			client, err := makeClient(c, flags, gtconstants.Config{})
			if err != nil {
				return err
			}
			defer client.Close() //nolint:errcheck

			value, err := client.GetValue(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), value.JSONString())
			return nil
		},
	}
}

func newKeysCmd(flags *commonFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the keys defined by the constants files",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			client, err := makeClient(c, flags, gtconstants.Config{})
			if err != nil {
				return err
			}
			defer client.Close() //nolint:errcheck

			for _, key := range client.Keys() {
				fmt.Fprintln(c.OutOrStdout(), key)
			}
			return nil
		},
	}
}
