package db

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

const (
	defaultUser           = "postgres"
	defaultConnectTimeout = 5 * time.Second
)

type NewDBPoolParams struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	// MaxConns 0 keeps the pgx default
	MaxConns       int32
	TracingEnabled bool
}

// ConnString builds the postgres URL of the params, without sslmode so the
// server default applies.
func (p NewDBPoolParams) ConnString() string {
	user := p.DBUser
	if user == "" {
		user = defaultUser
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(p.DBHost, p.DBPort),
		Path:   "/" + p.DBName,
	}
	if p.DBPassword != "" {
		u.User = url.UserPassword(user, p.DBPassword)
	} else {
		u.User = url.User(user)
	}
	q := url.Values{}
	q.Set("application_name", "fitprogram")
	u.RawQuery = q.Encode()
	return u.String()
}

func NewDBPool(ctx context.Context, params NewDBPoolParams) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(params.ConnString())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	poolConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout
	if params.MaxConns > 0 {
		poolConfig.MaxConns = params.MaxConns
	}

	if params.TracingEnabled {
		poolConfig.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	log.Debugf("db pool created: %s:%s/%s, max conns %d",
		params.DBHost, params.DBPort, params.DBName, poolConfig.MaxConns)

	return pool, nil
}
