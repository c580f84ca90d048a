package quote

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"time"
)

type TradeType string

const (
	TradeExactInput  TradeType = "EXACT_INPUT"
	TradeExactOutput TradeType = "EXACT_OUTPUT"
)

// OpKind classifies the requested conversion. Wrapping between a native
// token and its canonical wrapped form is a same-asset routing shortcut and
// carries no app fee.
type OpKind string

const (
	OpSwap   OpKind = "swap"
	OpWrap   OpKind = "wrap"
	OpUnwrap OpKind = "unwrap"
)

type BigInt struct {
	*big.Int
}

func (b *BigInt) UnmarshalJSON(data []byte) error {
	if b.Int == nil {
		b.Int = new(big.Int)
	}

	s := strings.Trim(string(data), "\"")
	_, ok := b.SetString(s, 10)
	if !ok {
		return fmt.Errorf("failed to parse big.Int from %s", s)
	}

	return nil
}

func (b *BigInt) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", b.String())), nil
}

type TokenRef struct {
	ChainID  uint64 `json:"chainId"`
	Address  string `json:"address"`
	Decimals uint8  `json:"decimals"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	IsNative bool   `json:"isNative"`
}

// Same reports whether both refs resolve to the same (chainId, address) pair.
func (t *TokenRef) Same(o *TokenRef) bool {
	if t == nil || o == nil {
		return false
	}

	return t.ChainID == o.ChainID && strings.EqualFold(t.Address, o.Address)
}

// SwapRequest is the live user input of one swap session. The amount pins
// the side selected by TradeType; the other side is always derived from a
// fresh quote and never rewritten locally.
type SwapRequest struct {
	FromToken         *TokenRef `json:"fromToken"`
	ToToken           *TokenRef `json:"toToken"`
	TradeType         TradeType `json:"tradeType"`
	AmountWei         *BigInt   `json:"amountWei"`
	TopUpGas          bool      `json:"topUpGas"`
	TopUpGasAmountWei *BigInt   `json:"topUpGasAmountWei,omitempty"`
}

func (r *SwapRequest) Validate() error {
	if r.FromToken == nil || r.ToToken == nil {
		return fmt.Errorf("both tokens have to be selected")
	}
	if r.FromToken.Same(r.ToToken) {
		return fmt.Errorf("tokens resolve to the same asset %s on chain %d", r.FromToken.Address, r.FromToken.ChainID)
	}
	if r.TradeType != TradeExactInput && r.TradeType != TradeExactOutput {
		return fmt.Errorf("invalid trade type '%s'", r.TradeType)
	}
	if r.AmountWei == nil || r.AmountWei.Int == nil || r.AmountWei.Sign() <= 0 {
		return fmt.Errorf("amount has to be greater than 0")
	}
	return nil
}

// ClearAmounts resets the amount fields but keeps the selected tokens.
func (r *SwapRequest) ClearAmounts() {
	r.AmountWei = nil
	r.TopUpGas = false
	r.TopUpGasAmountWei = nil
}

type GasFee struct {
	AmountWei *BigInt `json:"amountWei"`
	Currency  string  `json:"currency"`
}

type TopUpDetails struct {
	AmountWei *BigInt `json:"amountWei"`
}

type RawStep struct {
	ID   string          `json:"id"`
	Kind string          `json:"kind"`
	Sign json.RawMessage `json:"sign,omitempty"`
	Tx   json.RawMessage `json:"tx,omitempty"`
}

// Quote is a short-lived priced proposal. It is replaced wholesale on every
// refresh and never mutated in place.
type Quote struct {
	InAmount  *BigInt `json:"inAmount"`
	OutAmount *BigInt `json:"outAmount"`

	FeesApp        *BigInt `json:"feesApp"`
	FeesGas        GasFee  `json:"feesGas"`
	FeesNetworkUsd float64 `json:"feesNetworkUsd"`

	SlippageToleranceOriginPct      float64 `json:"slippageToleranceOriginPct"`
	SlippageToleranceDestinationPct float64 `json:"slippageToleranceDestinationPct"`

	TimeEstimateSec uint64 `json:"timeEstimateSec"`

	OriginChainID      uint64 `json:"originChainId"`
	DestinationChainID uint64 `json:"destinationChainId"`

	GasTopup *TopUpDetails `json:"gasTopup,omitempty"`

	// set on final quotes returned by the backend ledger
	RequestID string    `json:"requestId,omitempty"`
	Steps     []RawStep `json:"steps,omitempty"`

	ExpiresAt time.Time `json:"expiresAt"`

	// classification derived when the quote is fetched
	Kind OpKind `json:"-"`
	// the raw request payload that produced this quote; the backend ledger
	// re-prices it on submission
	Raw json.RawMessage `json:"-"`
}

func (q *Quote) Expired() bool {
	return time.Now().After(q.ExpiresAt)
}

// Submission is the backend ledger's answer to a submitted quote. The final
// quote is the executable source of truth; the client-estimated quote is
// advisory only.
type Submission struct {
	TxnID      string `json:"txnId"`
	FinalQuote *Quote `json:"quote"`
}

// Addresses holds the wallet addresses a quote is priced for.
type Addresses struct {
	Origin      string
	Destination string
}
