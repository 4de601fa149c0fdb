package main

import (
	"errors"
	"fmt"
	"time"

	gtconstants "github.com/gametime/go-constants-sdk"
	"github.com/gametime/go-constants-sdk/gtcomponents"
	"github.com/gametime/go-constants-sdk/interfaces"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"github.com/spf13/cobra"
)

type syncFlags struct {
	appVersion string
	osVersion  string
	platform   string
	locales    []string
	timeout    time.Duration
}

func newSyncCmd(flags *commonFlags) *cobra.Command {
	var sf syncFlags
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch the remote document once and print the resulting state as JSON",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runSync(c, flags, sf)
		},
	}
	cmd.Flags().StringVar(&sf.appVersion, "app-version", "", "installed application version")
	cmd.Flags().StringVar(&sf.osVersion, "os-version", "", "operating system version")
	cmd.Flags().StringVar(&sf.platform, "platform", gtcomponents.DefaultPlatform,
		"platform entry of the update and maintenance documents")
	cmd.Flags().StringSliceVar(&sf.locales, "locale", nil, "preferred locales for update messages")
	cmd.Flags().DurationVar(&sf.timeout, "timeout", defaultSyncTimeout, "how long to wait for the sync")
	return cmd
}

func runSync(c *cobra.Command, flags *commonFlags, sf syncFlags) error {
	client, err := makeClient(c, flags, gtconstants.Config{
		ApplicationInfo: interfaces.ApplicationInfo{
			ApplicationVersion: sf.appVersion,
			OSVersion:          sf.osVersion,
			Platform:           sf.platform,
			PreferredLocales:   sf.locales,
		},
	})
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	if url, err := client.GetValue(gtcomponents.DefaultInterceptionsURLKey); err != nil || url.StringValue() == "" {
		return errors.New("the constants files do not define an interceptions URL")
	}
	status, ok := waitForSyncResult(client.GetSyncStatusProvider(), sf.timeout)
	if !ok {
		return fmt.Errorf("sync did not complete within %s", sf.timeout)
	}
	if status.State == interfaces.SyncStateError {
		return fmt.Errorf("sync failed: %s", status.LastError.Message)
	}

	fmt.Fprintln(c.OutOrStdout(), syncReport(client).JSONString())
	return nil
}

func waitForSyncResult(provider interfaces.SyncStatusProvider, timeout time.Duration) (interfaces.SyncStatus, bool) {
	statusCh := provider.AddStatusListener()
	defer provider.RemoveStatusListener(statusCh)
	if status := provider.GetStatus(); status.State.IsTerminal() {
		return status, true
	}
	deadline := time.After(timeout)
	for {
		select {
		case status, ok := <-statusCh:
			if !ok {
				return interfaces.SyncStatus{}, false
			}
			if status.State.IsTerminal() {
				return status, true
			}
		case <-deadline:
			return interfaces.SyncStatus{}, false
		}
	}
}

func syncReport(client *gtconstants.Client) ldvalue.Value {
	update := ldvalue.Null()
	if rule, ok := client.UpdateRule(); ok {
		b := ldvalue.ObjectBuild().
			Set("type", ldvalue.String(string(rule.Type))).
			Set("version", ldvalue.String(rule.Version)).
			Set("restriction", ldvalue.String(rule.Restriction.String()))
		if rule.HasMessage {
			b.Set("message", ldvalue.String(rule.Message))
		}
		update = b.Build()
	}
	maintenance := client.MaintenanceState()
	return ldvalue.ObjectBuild().
		Set("state", ldvalue.String(client.GetSyncStatusProvider().GetStatus().State.String())).
		Set("updateRule", update).
		Set("maintenance", ldvalue.ObjectBuild().
			Set("active", ldvalue.Bool(maintenance.Active)).
			Set("message", ldvalue.String(maintenance.Message)).
			Set("pollIntervalSeconds", ldvalue.Float64(maintenance.PollInterval.Seconds())).
			Build()).
		Build()
}
