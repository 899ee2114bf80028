package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// GetDSN returns a connection string in the native format of the configured driver.
func (c DBConfig) GetDSN() (string, error) {
	if c.Driver == DriverMySQL {
		return c.mysqlDSN()
	}
	if c.DSN != "" {
		return c.DSN, nil
	}
	parts := []string{
		"host=" + c.Host,
		"port=" + c.Port,
		"dbname=" + c.Name,
		"sslmode=" + c.SSLMode,
		"TimeZone=" + c.TimeZone,
	}
	if c.User != "" {
		parts = append(parts, "user="+c.User)
	}
	if c.Password != "" {
		parts = append(parts, "password="+c.Password)
	}
	return strings.Join(parts, " "), nil
}

func (c DBConfig) mysqlDSN() (string, error) {
	var cfg *mysql.Config
	switch {
	case c.DSN == "":
		cfg = mysql.NewConfig()
		cfg.User = c.User
		cfg.Passwd = c.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(c.Host, c.Port)
		cfg.DBName = c.Name
	case strings.Contains(c.DSN, "://"):
		parsed, err := mysqlConfigFromURL(c.DSN)
		if err != nil {
			return "", err
		}
		cfg = parsed
	default:
		parsed, err := mysql.ParseDSN(c.DSN)
		if err != nil {
			return "", fmt.Errorf("parse mysql dsn: %w", err)
		}
		cfg = parsed
	}

	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}

// mysqlConfigFromURL accepts mysql:// and SQLAlchemy style mysql+driver:// URLs.
func mysqlConfigFromURL(raw string) (*mysql.Config, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse mysql url: %w", err)
	}
	if u.Scheme != "mysql" && !strings.HasPrefix(u.Scheme, "mysql+") {
		return nil, fmt.Errorf("unsupported mysql url scheme %q", u.Scheme)
	}

	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	if u.Port() == "" {
		cfg.Addr = net.JoinHostPort(u.Hostname(), "3306")
	}
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Passwd, _ = u.User.Password()
	}
	return cfg, nil
}
