package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teclalabs/paperscope"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	newContext := func(level string) *cli.Context {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.String("log-level", level, "")
		return cli.NewContext(cli.NewApp(), set, nil)
	}

	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "INFO"} {
			assert.NoError(t, setupLogger(newContext(level)))
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		err := setupLogger(newContext("verbose"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestEngineFlagDefaults(t *testing.T) {
	flags := engineFlags()

	find := func(name string) *cli.StringFlag {
		for _, f := range flags {
			if sf, ok := f.(*cli.StringFlag); ok && sf.Name == name {
				return sf
			}
		}
		return nil
	}

	host := find("host")
	require.NotNil(t, host)
	assert.Equal(t, "http://localhost:11434/v1", host.Value)

	origin := find("origin-url")
	require.NotNil(t, origin)
	assert.Equal(t, paperscope.DefaultOriginURL, origin.Value)

	dataDir := find("data-dir")
	require.NotNil(t, dataDir)
	assert.Equal(t, "./paperscope_data", dataDir.Value)
}
