package main

import (
	"context"
	"time"

	"github.com/duosnap/booth/pkg/booth"
	"github.com/duosnap/booth/pkg/config"
	"github.com/duosnap/booth/pkg/logger"
	"github.com/duosnap/booth/pkg/monitoring"
	"github.com/duosnap/booth/pkg/os"
	"github.com/duosnap/booth/pkg/service"
)

var Version = "?"

func main() {
	conf := config.NewBoothConfig()
	conf.ParseFlags()

	log := logger.NewConsole(conf.Booth.Debug, "b", false)
	log.Info().Msgf("version %s", Version)
	if log.GetLevel() < logger.InfoLevel {
		log.Debug().Msgf("config: %+v", conf)
	}

	var group service.Group

	b, err := booth.New(conf, log)
	if err != nil {
		log.Fatal().Err(err).Msg("booth init fail")
	}
	group.Add(b)

	if conf.Monitoring.IsEnabled() {
		m, err := monitoring.New(conf.Monitoring, log)
		if err != nil {
			log.Fatal().Err(err).Msg("monitoring init fail")
		}
		group.Add(m)
	}

	group.Start()
	<-os.ExpectTermination()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := group.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("service shutdown errors")
	}
}
