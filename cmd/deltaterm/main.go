package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/delta-vision/deltaterm/internal/helpers"
	"github.com/delta-vision/deltaterm/pkg/api"
	"github.com/delta-vision/deltaterm/pkg/client"
	"github.com/delta-vision/deltaterm/pkg/configuration"
	"github.com/delta-vision/deltaterm/pkg/logger"
	"github.com/delta-vision/deltaterm/pkg/startup"
	"github.com/delta-vision/deltaterm/pkg/static"
	"github.com/delta-vision/deltaterm/pkg/version"
	"github.com/spf13/viper"
)

func main() {
	startup.SetFlags()

	conf := configuration.NewConfig()

	if path := viper.GetString("config"); path != "" {
		file, err := os.Open(path)

		if err != nil {
			helpers.PrintAndExit(err, 2)
		}

		conf, err = startup.Load(file)
		file.Close()

		if err != nil {
			helpers.PrintAndExit(err, 2)
		}
	}

	startup.Apply(conf)

	logger.Log = logger.NewLogger(conf.LogLevel, []string{"stdout"}, []string{"stderr"})

	if conf.LogLevel == "debug" {
		fmt.Println(fmt.Sprintf("logging level set to %s (override with --log flag)", conf.LogLevel))
	}

	if err := conf.Validate(); err != nil {
		helpers.PrintAndExit(err, 2)
	}

	switch startup.Mode() {
	case static.MODE_SERVER:
		runServer(conf)
	case static.MODE_CLIENT:
		runClient(conf)
	default:
		fmt.Println("specify --server or --client (or set DELTA_MODE)")
		os.Exit(2)
	}
}

func runServer(conf *configuration.Configuration) {
	childEnv, err := startup.ChildEnvironment(conf)

	if err != nil {
		helpers.PrintAndExit(err, 1)
	}

	a := api.NewApi(conf)
	a.Version = version.New(DELTATERM_VERSION)
	a.ChildEnv = childEnv

	helpers.WatchInterrupts(a.Shutdown)

	if err := a.Listen(); err != nil {
		helpers.PrintAndExit(err, 1)
	}
}

func runClient(conf *configuration.Configuration) {
	cli := client.New(conf.Client.Host, conf.Client.Port)
	cli.Version = version.New(DELTATERM_VERSION)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := cli.Attach(ctx); err != nil {
		helpers.PrintAndExit(err, 1)
	}
}
