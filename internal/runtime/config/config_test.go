package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errspkg "github.com/drblury/omlflow/internal/runtime/errors"
)

func TestParseServerURI(t *testing.T) {
	ep, err := ParseServerURI("tcp:localhost:3003")
	require.NoError(t, err)
	assert.Equal(t, Endpoint{Scheme: "tcp", Host: "localhost", Port: 3003}, ep)
	assert.Equal(t, "localhost:3003", ep.Address())
	assert.Equal(t, "tcp:localhost:3003", ep.String())
}

func TestParseServerURIRejects(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want error
	}{
		{"host only", "localhost", errspkg.ErrMalformedServerURI},
		{"host and port", "localhost:3003", errspkg.ErrMalformedServerURI},
		{"too many segments", "tcp:localhost:3003:extra", errspkg.ErrMalformedServerURI},
		{"empty host", "tcp::3003", errspkg.ErrMalformedServerURI},
		{"non integer port", "tcp:localhost:http", errspkg.ErrInvalidPort},
		{"port zero", "tcp:localhost:0", errspkg.ErrInvalidPort},
		{"port too large", "tcp:localhost:70000", errspkg.ErrInvalidPort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseServerURI(tt.uri)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestResolveExplicitWinsOverProvider(t *testing.T) {
	provider := MapProvider{
		KeyExperimentID: "from-env",
		KeySenderID:     "env-node",
		KeyServerURI:    "tcp:env-host:4000",
	}
	res, err := Resolve(Config{
		AppName:      "sensor1",
		ExperimentID: "exp42",
		SenderID:     "node1",
		ServerURI:    "tcp:localhost:3003",
	}, provider)

	require.NoError(t, err)
	assert.Equal(t, "exp42", res.ExperimentID)
	assert.Equal(t, "node1", res.SenderID)
	assert.Equal(t, Endpoint{Scheme: "tcp", Host: "localhost", Port: 3003}, res.Endpoint)
	assert.Equal(t, DefaultConnectTimeout, res.ConnectTimeout)
}

func TestResolveFallsBackToProvider(t *testing.T) {
	res, err := Resolve(Config{AppName: "sensor1", ConnectTimeout: time.Second}, MapProvider{
		KeyExperimentID: "exp42",
		KeySenderID:     "node1",
		KeyServerURI:    "tcp:collector:3003",
	})

	require.NoError(t, err)
	assert.Equal(t, "exp42", res.ExperimentID)
	assert.Equal(t, "node1", res.SenderID)
	assert.Equal(t, "collector:3003", res.Endpoint.Address())
	assert.Equal(t, time.Second, res.ConnectTimeout)
	assert.Contains(t, res.String(), "server=tcp:collector:3003")
}

func TestResolveReportsEveryProblem(t *testing.T) {
	_, err := Resolve(Config{AppName: "-bad"}, nil)

	var cfgErr errspkg.ConfigValidationError
	require.True(t, errors.As(err, &cfgErr))
	assert.ErrorIs(t, err, errspkg.ErrInvalidAppName)
	assert.ErrorIs(t, err, errspkg.ErrMissingExperimentID)
	assert.ErrorIs(t, err, errspkg.ErrMissingSenderID)
	assert.ErrorIs(t, err, errspkg.ErrMissingServerURI)
}

func TestResolveMalformedURI(t *testing.T) {
	_, err := Resolve(Config{
		AppName:      "sensor1",
		ExperimentID: "exp42",
		SenderID:     "node1",
		ServerURI:    "localhost:3003",
	}, nil)
	assert.ErrorIs(t, err, errspkg.ErrMalformedServerURI)
}

func TestResolveTreatsEmptyProviderValueAsMissing(t *testing.T) {
	_, err := Resolve(Config{AppName: "sensor1", SenderID: "n", ServerURI: "tcp:h:1"}, MapProvider{KeyExperimentID: ""})
	assert.ErrorIs(t, err, errspkg.ErrMissingExperimentID)
}

func TestEnvProvider(t *testing.T) {
	t.Setenv(KeyExperimentID, "env-exp")
	t.Setenv(KeySenderID, "env-node")
	t.Setenv(KeyServerURI, "tcp:env-host:3003")

	res, err := Resolve(Config{AppName: "sensor1"}, EnvProvider{})
	require.NoError(t, err)
	assert.Equal(t, "env-exp", res.ExperimentID)
	assert.Equal(t, "env-node", res.SenderID)
	assert.Equal(t, "env-host", res.Endpoint.Host)
}

func TestChainProviderFirstHitWins(t *testing.T) {
	chain := ChainProvider{
		nil,
		MapProvider{KeySenderID: ""},
		MapProvider{KeySenderID: "second"},
		MapProvider{KeySenderID: "third"},
	}
	v, ok := chain.Lookup(KeySenderID)
	assert.True(t, ok)
	assert.Equal(t, "second", v)

	_, ok = chain.Lookup(KeyExperimentID)
	assert.False(t, ok)
}

func TestFileProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oml.yaml")
	doc := "experiment_id: exp42\nsender_id: node1\nserver: tcp:collector:3003\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	fp, err := LoadFile(path)
	require.NoError(t, err)

	res, err := Resolve(Config{AppName: "sensor1"}, fp)
	require.NoError(t, err)
	assert.Equal(t, "exp42", res.ExperimentID)
	assert.Equal(t, "node1", res.SenderID)
	assert.Equal(t, 3003, res.Endpoint.Port)

	_, ok := fp.Lookup("OTHER")
	assert.False(t, ok)
}

func TestFileProviderErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ParseFile([]byte("experiment_id: [unterminated"))
	assert.Error(t, err)

	var nilProvider *FileProvider
	_, ok := nilProvider.Lookup(KeySenderID)
	assert.False(t, ok)
}

func TestResolveRejectsLineBreaks(t *testing.T) {
	_, err := Resolve(Config{AppName: "sensor1", ServerURI: "tcp:localhost:3003"}, MapProvider{
		KeyExperimentID: "exp\n\n0\t1\t0\tforged",
		KeySenderID:     "node1\r",
	})

	var cfgErr errspkg.ConfigValidationError
	require.True(t, errors.As(err, &cfgErr))
	assert.ErrorIs(t, err, errspkg.ErrLineBreak)
	assert.Contains(t, err.Error(), "experiment id")
	assert.Contains(t, err.Error(), "sender id")
}
