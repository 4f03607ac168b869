package main

import (
	"context"
	"errors"
	"fmt"
	"log" //nolint:depguard // non-o11y log is allowed for a top-level fatal
	"time"

	"github.com/alecthomas/kong"
	"github.com/circleci/ex/httpserver"
	"github.com/circleci/ex/httpserver/healthcheck"
	"github.com/circleci/ex/o11y"
	"github.com/circleci/ex/system"
	"github.com/circleci/ex/termination"

	"github.com/circleci/coffeeshop/api"
	"github.com/circleci/coffeeshop/cmd"
	"github.com/circleci/coffeeshop/cmd/setup"
	"github.com/circleci/coffeeshop/coffee"
	"github.com/circleci/coffeeshop/users"
)

type cli struct {
	setup.CLI

	ShutdownDelay time.Duration `env:"SHUTDOWN_DELAY" default:"5s" help:"Delay shutdown by this amount" hidden:""`
	Port          int           `env:"PORT" default:"5000" help:"The port for the API to listen on"`
}

func main() {
	err := run(cmd.Version, cmd.Date)
	if err != nil && !errors.Is(err, termination.ErrTerminated) {
		log.Fatal("Unexpected Error: ", err)
	}
	log.Println("exited 0")
}

func run(version, date string) (err error) {
	cli := cli{}
	kong.Parse(&cli,
		kong.Name("coffeeshop"),
		kong.Description("The coffee shop API"),
	)

	ctx, o11yCleanup, err := setup.LoadO11y(version, "api", cli.CLI)
	if err != nil {
		return err
	}
	defer o11yCleanup(ctx)

	ctx, runSpan := o11y.StartSpan(ctx, "main: run")
	defer o11y.End(runSpan, &err)

	o11y.Log(ctx, "starting coffeeshop",
		o11y.Field("version", version),
		o11y.Field("date", date),
	)

	sys := system.New()
	defer sys.Cleanup(ctx)

	err = loadAPI(ctx, cli, sys)
	if err != nil {
		return err
	}

	// Should be last so it collects all the health checks
	_, err = healthcheck.Load(ctx, cli.AdminAddr, sys)
	if err != nil {
		return err
	}

	return sys.Run(ctx, cli.ShutdownDelay)
}

func loadAPI(ctx context.Context, cli cli, sys *system.System) error {
	db, err := setup.LoadMongo(ctx, cli.CLI, sys)
	if err != nil {
		return err
	}

	a := api.New(ctx, api.Options{
		Coffee: coffee.NewStore(db),
		Users:  users.NewStore(db),
	})

	addr := fmt.Sprintf(":%d", cli.Port)
	_, err = httpserver.Load(ctx, "api", addr, a.Handler(), sys)
	if err != nil {
		return err
	}
	o11y.Log(ctx, "server is running", o11y.Field("address", addr))
	return nil
}
