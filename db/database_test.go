package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTursoDSN(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		token string
		want  string
	}{
		{"no token", "libsql://notes.turso.io", "", "libsql://notes.turso.io"},
		{"token appended", "libsql://notes.turso.io", "abc", "libsql://notes.turso.io?authToken=abc"},
		{"existing query kept", "libsql://notes.turso.io?tls=1", "abc", "libsql://notes.turso.io?authToken=abc&tls=1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TursoDSN(tt.url, tt.token))
		})
	}
}

func TestInitialize_LocalSQLite(t *testing.T) {
	type sample struct {
		ID   uint
		Name string
	}

	path := filepath.Join(t.TempDir(), "app.db")
	require.NoError(t, Initialize(Options{Path: path, Environment: "production"}))
	defer Close()

	require.NoError(t, AutoMigrate(&sample{}))
	require.NoError(t, DB.Create(&sample{Name: "lined"}).Error)

	var count int64
	DB.Model(&sample{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
