package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectorFor(t *testing.T) {
	d, err := dialectorFor("postgres", "host=db user=app dbname=careerhub")
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	d, err = dialectorFor("mysql", "app:secret@tcp(db:3306)/careerhub?parseTime=true")
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	_, err = dialectorFor("mysql", "")
	assert.Error(t, err)

	_, err = dialectorFor("sqlite", "x")
	assert.Error(t, err)
}

func TestPostgresDSNFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_NAME", "jobs")
	t.Setenv("DB_PASS", "pw")

	assert.Equal(t, "host=db user=postgres password=pw dbname=jobs port=5432 sslmode=disable", PostgresDSNFromEnv())
}

func TestConnectRedisWithoutURL(t *testing.T) {
	assert.Nil(t, ConnectRedis(""))
	assert.Nil(t, ConnectRedis("not a url"))
}
