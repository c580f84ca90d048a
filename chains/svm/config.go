// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package svm

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/mitchellh/mapstructure"

	"github.com/glyphwallet/swap-engine/config/chain"
)

type SVMConfig struct {
	GeneralChainConfig chain.GeneralChainConfig
	Commitment         string
}

type RawSVMConfig struct {
	chain.GeneralChainConfig `mapstructure:",squash"`
	Commitment               string `mapstructure:"commitment" default:"confirmed"`
}

func (c *RawSVMConfig) Validate() error {
	if err := c.GeneralChainConfig.Validate(); err != nil {
		return err
	}
	switch c.Commitment {
	case "processed", "confirmed", "finalized":
		return nil
	default:
		return fmt.Errorf("invalid commitment '%s' for chain %v", c.Commitment, *c.Id)
	}
}

// NewSVMConfig decodes and validates an instance of an SVMConfig from
// raw chain config
func NewSVMConfig(chainConfig map[string]interface{}) (*SVMConfig, error) {
	var c RawSVMConfig
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

	return &SVMConfig{
		GeneralChainConfig: c.GeneralChainConfig,
		Commitment:         c.Commitment,
	}, nil
}
