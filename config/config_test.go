package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitReadsFileAndEnv(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(`
server:
  env: production
mysql:
  addr: db:3306
  database: vidtube
jwt:
  access_ttl: 1h
`), 0o644))

	wd, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd); viper.Reset() })
	t.Setenv("VIDTUBE_MYSQL_USERNAME", "root")

	Init()

	assert.Equal(t, "db:3306", ConfigInfo.Mysql.Addr)
	assert.Equal(t, "root", ConfigInfo.Mysql.Username)
	assert.Equal(t, "utf8mb4", ConfigInfo.Mysql.Charset)
	assert.Equal(t, time.Hour, ConfigInfo.Jwt.AccessTTL)
	assert.Equal(t, 240*time.Hour, ConfigInfo.Jwt.RefreshTTL)
	assert.False(t, IsDevelopment())
	assert.Empty(t, RabbitMqURL())
}
