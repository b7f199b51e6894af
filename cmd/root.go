package cmd

import (
	"os"

	configs "github.com/hsejin314/eos-zmq-plugin/configs"
	customLogger "github.com/hsejin314/eos-zmq-plugin/internal/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "eos-zmq-plugin",
		Short: "Publishes normalized block and transaction events from an EOSIO node",
		Long:  "Bridges the execution engine's lifecycle notifications to a push-style message socket, enriching each action trace with resource and token balance snapshots",
		Run: func(cmd *cobra.Command, args []string) {
			RunPublisher(cmd, args)
		},
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level to use for the application")
	rootCmd.PersistentFlags().Bool("log-prettify", false, "Whether to prettify the log output")
	rootCmd.PersistentFlags().String("publisher-mode", "zmq", "Outbound channel type: zmq or kafka")
	rootCmd.PersistentFlags().String("publisher-zmq-bind", "", "ZMQ PUSH socket binding; empty disables the publisher entirely")
	rootCmd.PersistentFlags().Int("publisher-zmq-sendTimeoutMs", 0, "Milliseconds to wait on a full send queue before dropping the event; 0 blocks")
	rootCmd.PersistentFlags().String("publisher-kafka-brokers", "", "Comma-separated Kafka brokers")
	rootCmd.PersistentFlags().String("publisher-kafka-topic", "", "Kafka topic for framed events")
	rootCmd.PersistentFlags().String("publisher-kafka-username", "", "Kafka SASL username")
	rootCmd.PersistentFlags().String("publisher-kafka-password", "", "Kafka SASL password")
	rootCmd.PersistentFlags().String("chain-apiUrl", "", "Chain API endpoint for resource and balance lookups")
	rootCmd.PersistentFlags().String("feed-listen", "", "Address to accept the engine notification feed on")
	rootCmd.PersistentFlags().Bool("metrics-enabled", false, "Toggle the Prometheus metrics endpoint")
	rootCmd.PersistentFlags().String("metrics-addr", "", "Address to serve Prometheus metrics on")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.prettify", rootCmd.PersistentFlags().Lookup("log-prettify"))
	viper.BindPFlag("publisher.mode", rootCmd.PersistentFlags().Lookup("publisher-mode"))
	viper.BindPFlag("publisher.zmq.bind", rootCmd.PersistentFlags().Lookup("publisher-zmq-bind"))
	viper.BindPFlag("publisher.zmq.sendTimeoutMs", rootCmd.PersistentFlags().Lookup("publisher-zmq-sendTimeoutMs"))
	viper.BindPFlag("publisher.kafka.brokers", rootCmd.PersistentFlags().Lookup("publisher-kafka-brokers"))
	viper.BindPFlag("publisher.kafka.topic", rootCmd.PersistentFlags().Lookup("publisher-kafka-topic"))
	viper.BindPFlag("publisher.kafka.username", rootCmd.PersistentFlags().Lookup("publisher-kafka-username"))
	viper.BindPFlag("publisher.kafka.password", rootCmd.PersistentFlags().Lookup("publisher-kafka-password"))
	viper.BindPFlag("chain.apiUrl", rootCmd.PersistentFlags().Lookup("chain-apiUrl"))
	viper.BindPFlag("feed.listen", rootCmd.PersistentFlags().Lookup("feed-listen"))
	viper.BindPFlag("metrics.enabled", rootCmd.PersistentFlags().Lookup("metrics-enabled"))
	viper.BindPFlag("metrics.addr", rootCmd.PersistentFlags().Lookup("metrics-addr"))
}

func initConfig() {
	godotenv.Load()
	configs.LoadConfig(cfgFile)
	customLogger.InitLogger()
}
