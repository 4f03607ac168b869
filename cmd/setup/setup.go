// Package setup contains the configuration and wiring shared by the coffeeshop commands.
package setup

import (
	"context"
	"fmt"
	_ "time/tzdata" // include embedded timezone data

	"github.com/circleci/ex/config/o11y"
	"github.com/circleci/ex/config/secret"
	"github.com/circleci/ex/rootcerts"
	"github.com/circleci/ex/system"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/circleci/coffeeshop/database"
)

type CLI struct {
	AdminAddr string `env:"ADMIN_ADDR" default:":8001" help:"The address for the admin api to listen on"`

	O11yStatsd           string        `name:"o11y-statsd" env:"O11Y_STATSD" help:"Address to send statsd metrics, metrics are discarded when empty"`
	O11yHoneycombEnabled bool          `name:"o11y-honeycomb" env:"O11Y_HONEYCOMB" default:"false" help:"Send traces to honeycomb"`
	O11yHoneycombDataset string        `name:"o11y-honeycomb-dataset" env:"O11Y_HONEYCOMB_DATASET" default:"coffeeshop"`
	O11yHoneycombKey     secret.String `name:"o11y-honeycomb-key" env:"O11Y_HONEYCOMB_KEY"`
	O11yFormat           string        `name:"o11y-format" env:"O11Y_FORMAT" enum:"json,color,text" default:"json" help:"Format used for stderr logging"`
	O11yRollbarToken     secret.String `name:"o11y-rollbar-token" env:"O11Y_ROLLBAR_TOKEN"`
	O11yRollbarEnv       string        `name:"o11y-rollbar-env" env:"O11Y_ROLLBAR_ENV" default:"production"`

	DBUser    string        `name:"db-user" env:"DB_USER" help:"Database user"`
	DBPass    secret.String `name:"db-pass" env:"DB_PASS" help:"Database password"`
	DBHost    string        `name:"db-host" env:"DB_HOST" default:"cluster0.ujjwout.mongodb.net" help:"Managed cluster address"`
	DBAppName string        `name:"db-app-name" env:"DB_APP_NAME" default:"Cluster0"`
	DBName    string        `name:"db-name" env:"DB_NAME" default:"coffeeDB"`
	MongoURI  secret.String `name:"mongo-uri" env:"MONGO_URI" help:"Full connection URI, overrides the db-* connection settings"`
	MongoTLS  bool          `name:"mongo-tls" env:"MONGO_TLS" default:"false" help:"Connect with TLS using the bundled root certificates"`
}

func init() {
	err := rootcerts.UpdateDefaultTransport()
	if err != nil {
		panic(fmt.Errorf("failed to inject rootcerts: %w", err))
	}
}

func LoadO11y(version, mode string, cli CLI) (context.Context, func(context.Context), error) {
	cfg := o11y.Config{
		Statsd:            cli.O11yStatsd,
		RollbarToken:      cli.O11yRollbarToken,
		RollbarEnv:        cli.O11yRollbarEnv,
		RollbarServerRoot: "github.com/circleci/coffeeshop",
		HoneycombEnabled:  cli.O11yHoneycombEnabled,
		HoneycombDataset:  cli.O11yHoneycombDataset,
		HoneycombKey:      cli.O11yHoneycombKey,
		Format:            cli.O11yFormat,
		Version:           version,
		Service:           "coffeeshop",
		StatsNamespace:    "coffeeshop.",
		Mode:              mode,
	}
	return o11y.Setup(context.Background(), cfg)
}

// MongoConnectionURI is the explicit URI when one is configured, otherwise the srv URI of the managed cluster.
func (c CLI) MongoConnectionURI() secret.String {
	if c.MongoURI != "" {
		return c.MongoURI
	}
	return database.BuildURI(c.DBUser, c.DBPass, c.DBHost, c.DBAppName)
}

func LoadMongo(ctx context.Context, cli CLI, sys *system.System) (*mongo.Database, error) {
	return database.Load(ctx, cli.DBName, cli.DBAppName, database.Config{
		URI:    cli.MongoConnectionURI(),
		UseTLS: cli.MongoTLS,
	}, sys)
}
