// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package svm_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/glyphwallet/swap-engine/chains/svm"
	"github.com/glyphwallet/swap-engine/config/chain"
)

type NewSVMConfigTestSuite struct {
	suite.Suite
}

func TestRunNewSVMConfigTestSuite(t *testing.T) {
	suite.Run(t, new(NewSVMConfigTestSuite))
}

func (s *NewSVMConfigTestSuite) Test_FailedGeneralConfigValidation() {
	_, err := svm.NewSVMConfig(map[string]interface{}{})

	s.NotNil(err)
}

func (s *NewSVMConfigTestSuite) Test_InvalidCommitment() {
	_, err := svm.NewSVMConfig(map[string]interface{}{
		"id":         9286185,
		"endpoint":   "https://eclipse.rpc",
		"name":       "eclipse",
		"commitment": "instant",
	})

	s.NotNil(err)
}

func (s *NewSVMConfigTestSuite) Test_ValidConfig() {
	actualConfig, err := svm.NewSVMConfig(map[string]interface{}{
		"id":             9286185,
		"endpoint":       "https://eclipse.rpc",
		"name":           "eclipse",
		"nativeSymbol":   "ETH",
		"nativeDecimals": 9,
	})

	id := new(uint64)
	*id = 9286185
	s.Nil(err)
	s.Equal(*actualConfig, svm.SVMConfig{
		GeneralChainConfig: chain.GeneralChainConfig{
			Name:           "eclipse",
			Endpoint:       "https://eclipse.rpc",
			Id:             id,
			NativeSymbol:   "ETH",
			NativeDecimals: 9,
		},
		Commitment: "confirmed",
	})
}
