package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Prettify bool   `mapstructure:"prettify"`
}

type ZMQConfig struct {
	Bind          string `mapstructure:"bind"`
	SendTimeoutMs int    `mapstructure:"sendTimeoutMs"`
}

type KafkaConfig struct {
	Brokers  string `mapstructure:"brokers"`
	Topic    string `mapstructure:"topic"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type PublisherConfig struct {
	// Mode selects the outbound channel: "zmq" or "kafka". There is always
	// exactly one channel per process.
	Mode  string      `mapstructure:"mode"`
	ZMQ   ZMQConfig   `mapstructure:"zmq"`
	Kafka KafkaConfig `mapstructure:"kafka"`
}

type ChainConfig struct {
	APIURL string `mapstructure:"apiUrl"`
	// SystemAccounts are never enriched with resource or token snapshots.
	SystemAccounts []string `mapstructure:"systemAccounts"`
	// BlacklistActions maps a contract account to action names whose traces,
	// including the whole inline subtree, are suppressed.
	BlacklistActions map[string][]string `mapstructure:"blacklistActions"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

type FeedConfig struct {
	Listen string `mapstructure:"listen"`
}

type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Publisher PublisherConfig `mapstructure:"publisher"`
	Chain     ChainConfig     `mapstructure:"chain"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Feed      FeedConfig      `mapstructure:"feed"`
}

var Cfg Config

func setDefaults() {
	viper.SetDefault("publisher.mode", "zmq")
	viper.SetDefault("publisher.zmq.bind", "tcp://127.0.0.1:5556")
	viper.SetDefault("chain.apiUrl", "http://127.0.0.1:8888")
	viper.SetDefault("chain.systemAccounts", []string{
		"eosio", "eosio.msig", "eosio.token", "eosio.ram", "eosio.ramfee",
		"eosio.stake", "eosio.vpay", "eosio.bpay", "eosio.saving",
	})
	viper.SetDefault("chain.blacklistActions", map[string][]string{
		"eosio":        {"onblock"},
		"blocktwitter": {"tweet"},
	})
	viper.SetDefault("metrics.addr", ":9109")
	viper.SetDefault("feed.listen", "tcp://127.0.0.1:8900")
}

func LoadConfig(cfgFile string) error {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file, %s", err)
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./configs")

		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error reading config file, %s", err)
			}
		}
	}

	// sets e.g. PUBLISHER_ZMQ_BIND to publisher.zmq.bind
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	viper.AutomaticEnv()

	err := viper.Unmarshal(&Cfg)
	if err != nil {
		return fmt.Errorf("error unmarshalling config: %v", err)
	}

	return nil
}
