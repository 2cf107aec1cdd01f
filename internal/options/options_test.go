package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	name    string
	retries int
}

func TestApply(t *testing.T) {
	cfg := &testConfig{}

	err := Apply(cfg,
		NoError(func(c *testConfig) { c.name = "archive" }),
		New(func(c *testConfig) error {
			c.retries = 3
			return nil
		}),
	)
	require.NoError(t, err)
	require.Equal(t, "archive", cfg.name)
	require.Equal(t, 3, cfg.retries)
}

func TestApply_StopsOnError(t *testing.T) {
	cfg := &testConfig{}
	boom := errors.New("boom")

	err := Apply(cfg,
		New(func(c *testConfig) error { return boom }),
		NoError(func(c *testConfig) { c.retries = 7 }),
	)
	require.ErrorIs(t, err, boom)
	require.Zero(t, cfg.retries)
}

func TestApply_NoOptions(t *testing.T) {
	require.NoError(t, Apply(&testConfig{}))
}
