// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package config

import (
	"fmt"
	"strings"

	"github.com/creasty/defaults"
	"github.com/imdario/mergo"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	ConfigFlagName = "config"
)

type EngineConfig struct {
	LogLevel   string `mapstructure:"logLevel" default:"info"`
	ApiAddr    string `mapstructure:"apiAddr" default:":5005"`
	HealthPort uint16 `mapstructure:"healthPort" default:"9001"`

	RoutingURL    string `mapstructure:"routingUrl"`
	SettlementURL string `mapstructure:"settlementUrl"`
	ExplorerURL   string `mapstructure:"explorerUrl" default:"https://relay.link"`

	PriceURL    string `mapstructure:"priceUrl" default:"https://pro-api.coinmarketcap.com"`
	PriceApiKey string `mapstructure:"priceApiKey"`
}

type Config struct {
	EngineConfig EngineConfig             `mapstructure:"engine"`
	ChainConfigs []map[string]interface{} `mapstructure:"chains"`
}

func (c *Config) Validate() error {
	if c.EngineConfig.RoutingURL == "" {
		return fmt.Errorf("required field engine.RoutingURL empty")
	}
	if c.EngineConfig.SettlementURL == "" {
		return fmt.Errorf("required field engine.SettlementURL empty")
	}
	if len(c.ChainConfigs) == 0 {
		return fmt.Errorf("no chains configured")
	}
	for _, chain := range c.ChainConfigs {
		if chain["type"] == "" || chain["type"] == nil {
			return fmt.Errorf("chain 'type' must be provided for every configured chain")
		}
	}
	return nil
}

func BindFlags(rootCMD *cobra.Command) {
	rootCMD.PersistentFlags().String(ConfigFlagName, "", "path to the configuration file")
	_ = viper.BindPFlag(ConfigFlagName, rootCMD.PersistentFlags().Lookup(ConfigFlagName))
}

// GetConfigFromFile reads the configuration from a file and merges it on top
// of the base configuration.
func GetConfigFromFile(path string, base *Config) (*Config, error) {
	config := &Config{}

	viper.SetConfigFile(path)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		return config, err
	}
	if err := viper.Unmarshal(config); err != nil {
		return config, err
	}

	if base != nil {
		if err := mergo.Merge(config, base); err != nil {
			return config, err
		}
	}

	if err := defaults.Set(&config.EngineConfig); err != nil {
		return config, err
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// GetConfigFromENV reads the configuration from SWAP_ENGINE prefixed
// environment variables and merges it on top of the base configuration.
func GetConfigFromENV(base *Config) (*Config, error) {
	config := &Config{}

	viper.SetEnvPrefix("SWAP_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	rawEngine := map[string]interface{}{
		"logLevel":      viper.Get("engine.logLevel"),
		"apiAddr":       viper.Get("engine.apiAddr"),
		"healthPort":    viper.Get("engine.healthPort"),
		"routingUrl":    viper.Get("engine.routingUrl"),
		"settlementUrl": viper.Get("engine.settlementUrl"),
		"explorerUrl":   viper.Get("engine.explorerUrl"),
		"priceUrl":      viper.Get("engine.priceUrl"),
		"priceApiKey":   viper.Get("engine.priceApiKey"),
	}
	if err := mapstructure.Decode(rawEngine, &config.EngineConfig); err != nil {
		return config, err
	}

	if base != nil {
		if err := mergo.Merge(config, base); err != nil {
			return config, err
		}
	}

	if err := defaults.Set(&config.EngineConfig); err != nil {
		return config, err
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}
