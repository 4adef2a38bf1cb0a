package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_missingFileUsesDefaults(t *testing.T) {
	a := assert.New(t)

	os.Setenv("DP_CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	defer os.Unsetenv("DP_CONFIG_FILE")

	a.NoError(Load())

	c := Instance()
	a.Equal(1000, c.Game.StartingChips)
	a.Equal(10, c.Game.SmallBlind)
	a.Equal(20, c.Game.BigBlind)
	a.Equal("info", c.Log.Level)
}

func TestLoad_fileAndEnv(t *testing.T) {
	a := assert.New(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	a.NoError(os.WriteFile(path, []byte(`
pgDsn: postgres://localhost/poker
game:
  smallBlind: 25
  bigBlind: 50
  decisionTimeout: 5
`), 0o644))

	os.Setenv("DP_CONFIG_FILE", path)
	os.Setenv("DP_GAME_BIG_BLIND", "100")
	defer func() {
		os.Unsetenv("DP_CONFIG_FILE")
		os.Unsetenv("DP_GAME_BIG_BLIND")
	}()

	a.NoError(Load())

	c := Instance()
	a.Equal("postgres://localhost/poker", c.PGDSN)
	a.Equal(25, c.Game.SmallBlind)

	// environment wins over the file
	a.Equal(100, c.Game.BigBlind)

	options := c.GameOptions()
	a.Equal(25, options.SmallBlind)
	a.Equal(100, options.BigBlind)
	a.Equal(5*time.Second, options.DecisionTimeout)
	a.NoError(options.Validate())
	a.Equal(100, options.MinBet) // defaults to the big blind
}
