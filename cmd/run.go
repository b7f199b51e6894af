package cmd

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	config "github.com/hsejin314/eos-zmq-plugin/configs"
	"github.com/hsejin314/eos-zmq-plugin/internal/chainapi"
	"github.com/hsejin314/eos-zmq-plugin/internal/correlator"
	"github.com/hsejin314/eos-zmq-plugin/internal/engine"
	"github.com/hsejin314/eos-zmq-plugin/internal/enricher"
	"github.com/hsejin314/eos-zmq-plugin/internal/publisher"
	"github.com/hsejin314/eos-zmq-plugin/internal/walker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func RunPublisher(cmd *cobra.Command, args []string) {
	sink, enabled := newSink()
	if !enabled {
		// normal startup mode, not a failure: with no binding configured the
		// whole component stays inert
		log.Warn().Msg("No publisher binding configured => publisher disabled")
		return
	}

	pub := publisher.NewPublisher(sink)
	defer pub.Close()

	apiClient := chainapi.NewClient(config.Cfg.Chain.APIURL)
	enr := enricher.New(apiClient, apiClient, config.Cfg.Chain.SystemAccounts)
	w := walker.NewWalker(config.Cfg.Chain.BlacklistActions)
	corr := correlator.New(pub, w, enr, apiClient)

	if config.Cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(config.Cfg.Metrics.Addr, nil); err != nil {
				log.Error().Err(err).Msg("Metrics server stopped")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	feed := engine.NewFeed(corr)
	if err := feed.Listen(ctx, config.Cfg.Feed.Listen); err != nil {
		log.Fatal().Err(err).Msg("Engine feed failed")
	}
	log.Info().Msg("Engine feed stopped, shutting down")
}

func newSink() (publisher.Sink, bool) {
	switch config.Cfg.Publisher.Mode {
	case "kafka":
		if config.Cfg.Publisher.Kafka.Brokers == "" {
			return nil, false
		}
		sink, err := publisher.NewKafkaSink(
			config.Cfg.Publisher.Kafka.Brokers,
			config.Cfg.Publisher.Kafka.Topic,
			config.Cfg.Publisher.Kafka.Username,
			config.Cfg.Publisher.Kafka.Password,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Kafka sink")
		}
		return sink, true
	default:
		bind := config.Cfg.Publisher.ZMQ.Bind
		if bind == "" {
			return nil, false
		}
		timeout := time.Duration(config.Cfg.Publisher.ZMQ.SendTimeoutMs) * time.Millisecond
		sink, err := publisher.NewZMQSink(bind, timeout)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to bind ZMQ sink")
		}
		return sink, true
	}
}
