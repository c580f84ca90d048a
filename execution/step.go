package execution

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/glyphwallet/swap-engine/quote"
)

type StepKind string

const (
	StepSignMessage        StepKind = "signMessage"
	StepSendTransaction    StepKind = "sendTransaction"
	StepConfirmTransaction StepKind = "confirmTransaction"
)

type SignatureKind string

const (
	SignatureEip191 SignatureKind = "eip191"
	SignatureEip712 SignatureKind = "eip712"
)

// SignStep is a protocol signing payload. The concrete type fixes the
// signing scheme, so the wallet adapter never has to sniff payload shape.
type SignStep interface {
	Kind() SignatureKind
}

type Eip191Sign struct {
	Message hexutil.Bytes `json:"message"`
}

func (Eip191Sign) Kind() SignatureKind {
	return SignatureEip191
}

type Eip712Sign struct {
	TypedData apitypes.TypedData `json:"typedData"`
}

func (Eip712Sign) Kind() SignatureKind {
	return SignatureEip712
}

type TxFields struct {
	From    common.Address `json:"from"`
	To      common.Address `json:"to"`
	Data    hexutil.Bytes  `json:"data"`
	Value   *hexutil.Big   `json:"value"`
	ChainID uint64         `json:"chainId"`
}

// Step is a resolved protocol step of a final quote.
type Step struct {
	ID   string
	Kind StepKind
	Sign SignStep
	Tx   *TxFields
}

type rawSignEnvelope struct {
	SignatureKind SignatureKind `json:"signatureKind"`
}

// ParseSteps resolves the untyped protocol steps of a final quote. All
// discriminators are checked up front so an unknown step aborts the
// execution before any transaction is broadcast.
func ParseSteps(raw []quote.RawStep) ([]Step, error) {
	steps := make([]Step, 0, len(raw))
	for _, r := range raw {
		step := Step{
			ID:   r.ID,
			Kind: StepKind(r.Kind),
		}

		switch step.Kind {
		case StepSignMessage:
			sign, err := parseSignStep(r.Sign)
			if err != nil {
				return nil, fmt.Errorf("step %s: %w", r.ID, err)
			}
			step.Sign = sign
		case StepSendTransaction:
			tx := new(TxFields)
			if err := json.Unmarshal(r.Tx, tx); err != nil {
				return nil, fmt.Errorf("step %s: failed to unmarshal transaction: %w", r.ID, err)
			}
			step.Tx = tx
		case StepConfirmTransaction:
		default:
			return nil, fmt.Errorf("step %s: unknown step kind '%s'", r.ID, r.Kind)
		}

		steps = append(steps, step)
	}

	return steps, nil
}

func parseSignStep(raw json.RawMessage) (SignStep, error) {
	var envelope rawSignEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sign payload: %w", err)
	}

	switch envelope.SignatureKind {
	case SignatureEip191:
		var sign Eip191Sign
		if err := json.Unmarshal(raw, &sign); err != nil {
			return nil, fmt.Errorf("failed to unmarshal eip191 payload: %w", err)
		}
		return sign, nil
	case SignatureEip712:
		var sign Eip712Sign
		if err := json.Unmarshal(raw, &sign); err != nil {
			return nil, fmt.Errorf("failed to unmarshal eip712 payload: %w", err)
		}
		return sign, nil
	default:
		return nil, fmt.Errorf("unknown signature kind '%s'", envelope.SignatureKind)
	}
}
