package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jbweber/homelab/pokereview/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and returns stdout
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrate_StatusAndDown(t *testing.T) {
	db := filepath.Join(t.TempDir(), "pokereview.db")

	out, err := run(t, "--db", db, "migrate", "--status")
	require.NoError(t, err)
	assert.Contains(t, out, "create_initial_tables")
	assert.Contains(t, out, "pending")

	_, err = run(t, "--db", db, "migrate")
	require.NoError(t, err)

	out, err = run(t, "--db", db, "migrate", "--status")
	require.NoError(t, err)
	assert.NotContains(t, out, "pending")

	_, err = run(t, "--db", db, "migrate", "--down")
	require.NoError(t, err)

	out, err = run(t, "--db", db, "migrate", "--status")
	require.NoError(t, err)
	assert.Contains(t, out, "add_name_uniqueness_and_lookup_indices  pending")

	_, err = run(t, "--db", db, "migrate", "--down", "--status")
	assert.Error(t, err)
}

func TestSeed_DefaultThenSkip(t *testing.T) {
	db := filepath.Join(t.TempDir(), "pokereview.db")

	out, err := run(t, "--db", db, "seed")
	require.NoError(t, err)
	assert.Equal(t, "seeded 3 pokemon and 9 reviews\n", out)

	out, err = run(t, "--db", db, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing seeded")
}

func TestSeed_File(t *testing.T) {
	dir := t.TempDir()
	fixture := filepath.Join(dir, "fixture.yaml")
	require.NoError(t, os.WriteFile(fixture, []byte(`
owners:
  - name: Ash
categories:
  - name: Electric
pokemon:
  - name: Pikachu
    birthDate: 1996-02-27
    owners: [Ash]
    categories: [Electric]
`), 0o600))

	out, err := run(t, "--db", filepath.Join(dir, "pokereview.db"), "seed", "--file", fixture)
	require.NoError(t, err)
	assert.Equal(t, "seeded 1 pokemon and 0 reviews\n", out)

	_, err = run(t, "--db", filepath.Join(dir, "other.db"), "seed", "--file", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestRoot_RejectsBadFlags(t *testing.T) {
	_, err := run(t, "--db", filepath.Join(t.TempDir(), "x.db"), "--log-level", "loud", "migrate")
	assert.Error(t, err)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	cfg := config.NewConfig()
	cfg.DBPath = filepath.Join(t.TempDir(), "pokereview.db")
	cfg.ShutdownTimeout = 2 * time.Second

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, cfg, zerolog.Nop(), ln)
	}()

	url := fmt.Sprintf("http://%s/healthz", ln.Addr())
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}
