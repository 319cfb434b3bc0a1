package database

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JithuMorrison/OneStop-Web-sub001/core"
)

func TestDataSourceName(t *testing.T) {
	conf := core.NewTestConfig()
	conf.Database = core.DatabaseConfig{
		Engine:        "postgres",
		Host:          "db",
		Port:          "5433",
		Name:          "onestop",
		User:          "app",
		Password:      "p@ss",
		AdminUser:     "root",
		AdminPassword: "secret",
	}

	tests := []struct {
		name       string
		admin      bool
		disableTLS bool
		wantUser   string
		wantSSL    string
	}{
		{name: "app user", wantUser: "app", wantSSL: "require"},
		{name: "admin user", admin: true, wantUser: "root", wantSSL: "require"},
		{name: "tls disabled", disableTLS: true, wantUser: "app", wantSSL: "disable"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			conf.Database.DisableTLS = tc.disableTLS
			u, err := url.Parse(dataSourceName("onestop", tc.admin, conf))
			require.NoError(t, err)

			assert.Equal(t, "postgres", u.Scheme)
			assert.Equal(t, "db:5433", u.Host)
			assert.Equal(t, "/onestop", u.Path)
			assert.Equal(t, tc.wantUser, u.User.Username())
			assert.Equal(t, tc.wantSSL, u.Query().Get("sslmode"))
			assert.Equal(t, "utc", u.Query().Get("timezone"))
		})
	}
}
