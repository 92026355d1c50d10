package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dbsmedya/goinsight/internal/config"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DatabaseConfig
		want string
	}{
		{
			name: "full config preferred tls",
			cfg: config.DatabaseConfig{
				Host: "localhost", Port: 3306,
				User: "insight", Password: "pw", Database: "analytics",
				TLS: "preferred",
			},
			want: "insight:pw@tcp(localhost:3306)/analytics?parseTime=true&tls=preferred",
		},
		{
			name: "tls disabled",
			cfg: config.DatabaseConfig{
				Host: "db", Port: 3307,
				User: "u", Password: "p", Database: "d",
				TLS: "disable",
			},
			want: "u:p@tcp(db:3307)/d?parseTime=true&tls=false",
		},
		{
			name: "tls required no database",
			cfg: config.DatabaseConfig{
				Host: "db", Port: 3306,
				User: "u", Password: "p",
				TLS: "required",
			},
			want: "u:p@tcp(db:3306)/?parseTime=true&tls=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildDSN(&tt.cfg))
		})
	}
}

func TestNewManager(t *testing.T) {
	cfg := config.DefaultConfig()
	m := NewManager(cfg)
	assert.NotNil(t, m)
	assert.Nil(t, m.Source)
}

func TestClose_NoConnection(t *testing.T) {
	m := NewManager(config.DefaultConfig())
	assert.NoError(t, m.Close())
}
