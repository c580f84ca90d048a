package config

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

type TokenConfig struct {
	Address  common.Address
	Decimals uint8
}

// NativeCurrency describes a chain's native gas token.
type NativeCurrency struct {
	Symbol   string
	Decimals uint8
}

type TokenStore struct {
	Tokens map[uint64]map[string]TokenConfig
	// chain id -> canonical wrapped form of the chain's native token
	WrappedNative map[uint64]common.Address
	Natives       map[uint64]NativeCurrency
}

func (s *TokenStore) SetNative(chainID uint64, symbol string, decimals uint8) {
	if s.Natives == nil {
		s.Natives = make(map[uint64]NativeCurrency)
	}
	s.Natives[chainID] = NativeCurrency{Symbol: symbol, Decimals: decimals}
}

// Native returns the chain's native currency, defaulting to 18-decimal ETH
// for chains registered without metadata.
func (s *TokenStore) Native(chainID uint64) NativeCurrency {
	native, ok := s.Natives[chainID]
	if !ok {
		return NativeCurrency{Symbol: "ETH", Decimals: 18}
	}
	return native
}

func (s *TokenStore) ConfigByAddress(chainID uint64, address common.Address) (string, TokenConfig, error) {
	tokens, ok := s.Tokens[chainID]
	if !ok {
		return "", TokenConfig{}, fmt.Errorf("no tokens for chain %d", chainID)
	}

	for symbol, c := range tokens {
		if c.Address == address {
			return symbol, c, nil
		}
	}

	return "", TokenConfig{}, fmt.Errorf("no symbol for address %s", address.Hex())
}

func (s *TokenStore) ConfigBySymbol(chainID uint64, symbol string) (TokenConfig, error) {
	tokens, ok := s.Tokens[chainID]
	if !ok {
		return TokenConfig{}, fmt.Errorf("no tokens for chain %d", chainID)
	}

	c, ok := tokens[symbol]
	if !ok {
		return TokenConfig{}, fmt.Errorf("no config for token %s", symbol)
	}

	return c, nil
}

// IsWrappedNative reports whether the address is the canonical wrapped form
// of the chain's native token.
func (s *TokenStore) IsWrappedNative(chainID uint64, address string) bool {
	wrapped, ok := s.WrappedNative[chainID]
	if !ok {
		return false
	}

	return strings.EqualFold(wrapped.Hex(), address)
}
