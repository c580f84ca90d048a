// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package evm

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mitchellh/mapstructure"

	"github.com/glyphwallet/swap-engine/config"
	"github.com/glyphwallet/swap-engine/config/chain"
)

type EVMConfig struct {
	GeneralChainConfig chain.GeneralChainConfig

	// canonical wrapped form of the chain's native token
	WrappedNative common.Address
	Tokens        map[string]config.TokenConfig
}

type RawEVMConfig struct {
	chain.GeneralChainConfig `mapstructure:",squash"`
	WrappedNative            string            `mapstructure:"wrappedNative"`
	Tokens                   map[string]RawToken `mapstructure:"tokens"`
}

type RawToken struct {
	Address  string `mapstructure:"address"`
	Decimals uint8  `mapstructure:"decimals" default:"18"`
}

func (c *RawEVMConfig) Validate() error {
	if err := c.GeneralChainConfig.Validate(); err != nil {
		return err
	}
	if c.WrappedNative != "" && !common.IsHexAddress(c.WrappedNative) {
		return fmt.Errorf("invalid wrappedNative address '%s' for chain %v", c.WrappedNative, *c.Id)
	}
	for symbol, t := range c.Tokens {
		if !common.IsHexAddress(t.Address) {
			return fmt.Errorf("invalid address '%s' for token %s", t.Address, symbol)
		}
	}
	return nil
}

// NewEVMConfig decodes and validates an instance of an EVMConfig from
// raw chain config
func NewEVMConfig(chainConfig map[string]interface{}) (*EVMConfig, error) {
	var c RawEVMConfig
	err := mapstructure.Decode(chainConfig, &c)
	if err != nil {
		return nil, err
	}

	err = defaults.Set(&c)
	if err != nil {
		return nil, err
	}

	err = c.Validate()
	if err != nil {
		return nil, err
	}

	tokens := make(map[string]config.TokenConfig)
	for symbol, t := range c.Tokens {
		tokens[symbol] = config.TokenConfig{
			Address:  common.HexToAddress(t.Address),
			Decimals: t.Decimals,
		}
	}

	return &EVMConfig{
		GeneralChainConfig: c.GeneralChainConfig,
		WrappedNative:      common.HexToAddress(c.WrappedNative),
		Tokens:             tokens,
	}, nil
}
