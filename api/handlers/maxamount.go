package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/glyphwallet/swap-engine/config"
)

type FeeCalculator interface {
	FeeBuffer(ctx context.Context, chainID uint64, vmType config.VmType) *big.Int
	MaxTransferable(ctx context.Context, chainID uint64, vmType config.VmType, balanceWei *big.Int) *big.Int
}

type MaxAmountHandler struct {
	calculator FeeCalculator
	vmTypes    map[uint64]config.VmType
}

func NewMaxAmountHandler(calculator FeeCalculator, vmTypes map[uint64]config.VmType) *MaxAmountHandler {
	return &MaxAmountHandler{
		calculator: calculator,
		vmTypes:    vmTypes,
	}
}

type maxAmountResponse struct {
	MaxAmountWei *BigInt `json:"maxAmountWei"`
	FeeBufferWei *BigInt `json:"feeBufferWei"`
}

// HandleRequest returns the maximum spendable portion of a native balance
// after reserving the gas fee buffer
func (h *MaxAmountHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	chainId, ok := new(big.Int).SetString(vars["chainId"], 10)
	if !ok {
		JSONError(w, fmt.Errorf("chain id invalid"), http.StatusBadRequest)
		return
	}

	vmType, ok := h.vmTypes[chainId.Uint64()]
	if !ok {
		JSONError(w, fmt.Errorf("chain %d not supported", chainId.Uint64()), http.StatusNotFound)
		return
	}

	balance, ok := new(big.Int).SetString(r.URL.Query().Get("balance"), 10)
	if !ok {
		JSONError(w, fmt.Errorf("query param 'balance' invalid"), http.StatusBadRequest)
		return
	}

	resp := maxAmountResponse{
		MaxAmountWei: &BigInt{h.calculator.MaxTransferable(r.Context(), chainId.Uint64(), vmType, balance)},
		FeeBufferWei: &BigInt{h.calculator.FeeBuffer(r.Context(), chainId.Uint64(), vmType)},
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
