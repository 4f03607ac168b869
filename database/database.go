package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/circleci/ex/config/secret"
	"github.com/circleci/ex/mongoex"
	"github.com/circleci/ex/o11y"
	"github.com/circleci/ex/system"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Config struct {
	URI    secret.String
	UseTLS bool
}

// BuildURI returns the srv connection string for a managed cluster.
func BuildURI(user string, pass secret.String, host, appName string) secret.String {
	u := url.URL{
		Scheme: "mongodb+srv",
		User:   url.UserPassword(user, pass.Raw()),
		Host:   host,
		Path:   "/",
	}
	if appName != "" {
		u.RawQuery = url.Values{"appName": []string{appName}}.Encode()
	}
	return secret.String(u.String())
}

// Connect opens a client pinned to version 1 of the Stable API in strict mode.
func Connect(ctx context.Context, appName string, cfg Config) (*mongo.Client, error) {
	opts := options.Client().
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1).
			SetStrict(true).
			SetDeprecationErrors(true))

	client, err := mongoex.New(ctx, appName, mongoex.Config{
		URI:     cfg.URI.Raw(),
		UseTLS:  cfg.UseTLS,
		Options: opts,
	})
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}
	return client, nil
}

// Ping runs the ping command against the admin database. It only succeeds once a
// server is reachable and has accepted the credentials.
func Ping(ctx context.Context, client *mongo.Client) (err error) {
	ctx, span := o11y.StartSpan(ctx, "database: ping")
	defer o11y.End(span, &err)

	err = client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	if err != nil {
		return fmt.Errorf("database: ping failed: %w", err)
	}
	return nil
}

// Load connects and pings the deployment, returning the named database. A failed
// ping is returned so startup stops before any request is served.
func Load(ctx context.Context, dbName, appName string, cfg Config, sys *system.System) (*mongo.Database, error) {
	client, err := Connect(ctx, appName, cfg)
	if err != nil {
		return nil, err
	}

	if err := Ping(ctx, client); err != nil {
		abandon(ctx, client)
		return nil, err
	}
	o11y.Log(ctx, "database: pinged deployment", o11y.Field("database", dbName))

	sys.AddCleanup(client.Disconnect)
	sys.AddHealthCheck(readiness{client: client})

	return client.Database(dbName), nil
}

// abandon disconnects a client that will not be used, recording rather than returning
// any failure so the original error is what the caller sees.
func abandon(ctx context.Context, client *mongo.Client) {
	if err := client.Disconnect(ctx); err != nil {
		o11y.AddField(ctx, "disconnect_error", err)
	}
}

const readyTimeout = 5 * time.Second

// readiness reports ready while the admin ping succeeds.
type readiness struct {
	client *mongo.Client
}

func (r readiness) HealthChecks() (name string, ready, live func(ctx context.Context) error) {
	return "mongo", func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, readyTimeout)
		defer cancel()
		return Ping(ctx, r.client)
	}, nil
}
