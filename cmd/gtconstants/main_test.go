package main

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gametime/go-constants-sdk/testhelpers/gtservices"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"github.com/launchdarkly/go-test-helpers/v3/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCommand(args ...string) (string, error) {
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGetPrintsResolvedValue(t *testing.T) {
	dir := t.TempDir()
	defaults := writeFile(t, dir, "defaults.json", `{"max_retries": 3, "welcome_text": "hello"}`)
	override := writeFile(t, dir, "prod.yaml", "max_retries: 5\n")

	out, err := runCommand("get", "max_retries", "--defaults", defaults, "--override", override)
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)

	out, err = runCommand("get", "welcome_text", "--defaults", defaults)
	require.NoError(t, err)
	assert.Equal(t, "\"hello\"\n", out)
}

func TestGetMissingKeyFails(t *testing.T) {
	defaults := writeFile(t, t.TempDir(), "defaults.json", `{"a": 1}`)
	_, err := runCommand("get", "b", "--defaults", defaults)
	assert.EqualError(t, err, "key is missing: b")
}

func TestGetRequiresDefaults(t *testing.T) {
	_, err := runCommand("get", "a")
	assert.Error(t, err)
}

func TestKeysListsSortedKeys(t *testing.T) {
	defaults := writeFile(t, t.TempDir(), "defaults.json", `{"b": 1, "a": 2}`)
	out, err := runCommand("keys", "--defaults", defaults)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", out)
}

func TestSyncPrintsState(t *testing.T) {
	doc := gtservices.NewRemoteDocument().
		Hotfix("max_retries", ldvalue.Int(9)).
		UpdateRuleFor("ios", gtservices.UpdateRuleRecord(true, 2, "2.0", "1.0")).
		MaintenanceFor("ios", true, "Back soon", 60)
	httphelpers.WithServer(gtservices.RemoteDocumentHandler(doc), func(server *httptest.Server) {
		defaults := writeFile(t, t.TempDir(), "defaults.json",
			`{"interceptions_url": "`+server.URL+`", "max_retries": 3}`)

		out, err := runCommand("sync", "--defaults", defaults, "--app-version", "1.0")
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"state": "COMPLETE",
			"updateRule": {"type": "app", "version": "2.0", "restriction": "high"},
			"maintenance": {"active": true, "message": "Back soon", "pollIntervalSeconds": 60}
		}`, out)
	})
}

func TestSyncPersistsHotfixesForLaterCommands(t *testing.T) {
	dir := t.TempDir()
	storePath := filepath.Join(dir, "constants.db")
	doc := gtservices.NewRemoteDocument().Hotfix("max_retries", ldvalue.Int(9))
	httphelpers.WithServer(gtservices.RemoteDocumentHandler(doc), func(server *httptest.Server) {
		defaults := writeFile(t, dir, "defaults.json",
			`{"interceptions_url": "`+server.URL+`", "max_retries": 3}`)
		_, err := runCommand("sync", "--defaults", defaults, "--store", storePath)
		require.NoError(t, err)
	})

	defaults := writeFile(t, dir, "offline.json", `{"max_retries": 3}`)
	out, err := runCommand("get", "max_retries", "--defaults", defaults, "--store", storePath)
	require.NoError(t, err)
	assert.Equal(t, "9\n", out)
}

func TestSyncReportsHTTPError(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(503), func(server *httptest.Server) {
		defaults := writeFile(t, t.TempDir(), "defaults.json", `{"interceptions_url": "`+server.URL+`"}`)
		_, err := runCommand("sync", "--defaults", defaults)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sync failed")
	})
}

func TestSyncWithoutURLFails(t *testing.T) {
	defaults := writeFile(t, t.TempDir(), "defaults.json", `{"a": 1}`)
	_, err := runCommand("sync", "--defaults", defaults)
	assert.EqualError(t, err, "the constants files do not define an interceptions URL")
}
