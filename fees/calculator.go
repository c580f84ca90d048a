package fees

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"

	"github.com/glyphwallet/swap-engine/config"
)

const (
	BUFFER_TTL = time.Second * 30

	// assumed gas usage of a swap deposit transaction
	evmGasLimit       = 400_000
	evmMultiplier     = 2
	svmMultiplier     = 5
	eclipseMultiplier = 200

	// 0.1 gwei, keeps idle testnet estimates from collapsing to zero
	minGasPriceWei = 100_000_000

	// 0.005 native token, used when every estimation path fails
	defaultEvmBufferWei = 5_000_000_000_000_000

	// base signature fee in lamports
	defaultSvmBaseFee = 5_000

	feeHistoryDepth = 20
)

// EclipseChainID identifies the Eclipse chain, whose fee market is volatile
// enough to warrant a much larger safety multiplier than standard SVM chains.
const EclipseChainID uint64 = 9286185

type GasPricer interface {
	GasPrice(ctx context.Context) (*big.Int, error)
}

type FeeHistorySource interface {
	RecentFees(ctx context.Context, chainID uint64, limit int) ([]uint64, error)
}

// Calculator computes a conservative native-gas reserve per chain. Results
// are cached per (vmType, chainID) so bursts of callers inside the TTL
// window resolve against one upstream query.
type Calculator struct {
	mu sync.Mutex

	evm     map[uint64]GasPricer
	history FeeHistorySource

	bufferCache *ttlcache.Cache[string, *big.Int]
}

func NewCalculator(evm map[uint64]GasPricer, history FeeHistorySource) *Calculator {
	cache := ttlcache.New(
		ttlcache.WithTTL[string, *big.Int](BUFFER_TTL),
	)
	go cache.Start()

	return &Calculator{
		evm:         evm,
		history:     history,
		bufferCache: cache,
	}
}

// FeeBuffer returns the native-gas reserve for the chain. It never fails;
// estimation errors resolve to a conservative fallback and are only logged.
func (c *Calculator) FeeBuffer(ctx context.Context, chainID uint64, vmType config.VmType) *big.Int {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := fmt.Sprintf("%s-%d", vmType, chainID)
	if cached := c.bufferCache.Get(key); cached != nil {
		return new(big.Int).Set(cached.Value())
	}

	var buffer *big.Int
	switch vmType {
	case config.VmTypeEvm:
		buffer = c.evmBuffer(ctx, chainID)
	case config.VmTypeSvm:
		buffer = c.svmBuffer(ctx, chainID)
	default:
		log.Warn().Msgf("Unknown vm type '%s' for chain %d, using conservative default buffer", vmType, chainID)
		buffer = new(big.Int).Mul(big.NewInt(defaultEvmBufferWei), big.NewInt(evmMultiplier))
	}

	c.bufferCache.Set(key, buffer, ttlcache.DefaultTTL)
	return new(big.Int).Set(buffer)
}

// MaxTransferable returns the portion of balance that can be sent while
// keeping enough native token behind to pay for the transfer itself.
func (c *Calculator) MaxTransferable(ctx context.Context, chainID uint64, vmType config.VmType, balanceWei *big.Int) *big.Int {
	max := new(big.Int).Sub(balanceWei, c.FeeBuffer(ctx, chainID, vmType))
	if max.Sign() < 0 {
		return big.NewInt(0)
	}
	return max
}

func (c *Calculator) evmBuffer(ctx context.Context, chainID uint64) *big.Int {
	pricer, ok := c.evm[chainID]
	if !ok {
		log.Warn().Msgf("No gas pricer for chain %d, using default buffer", chainID)
		return big.NewInt(defaultEvmBufferWei)
	}

	gasPrice, err := pricer.GasPrice(ctx)
	if err != nil {
		log.Warn().Msgf("Failed to estimate gas price for chain %d: %s", chainID, err)
		return big.NewInt(defaultEvmBufferWei)
	}

	if gasPrice.Cmp(big.NewInt(minGasPriceWei)) < 0 {
		gasPrice = big.NewInt(minGasPriceWei)
	}

	buffer := new(big.Int).Mul(gasPrice, big.NewInt(evmGasLimit))
	return buffer.Mul(buffer, big.NewInt(evmMultiplier))
}

func (c *Calculator) svmBuffer(ctx context.Context, chainID uint64) *big.Int {
	multiplier := int64(svmMultiplier)
	if chainID == EclipseChainID {
		multiplier = eclipseMultiplier
	}

	maxFee := uint64(0)
	fees, err := c.history.RecentFees(ctx, chainID, feeHistoryDepth)
	if err != nil {
		log.Warn().Msgf("Failed to fetch fee history for chain %d: %s", chainID, err)
	}
	for _, fee := range fees {
		if fee > maxFee {
			maxFee = fee
		}
	}
	if maxFee == 0 {
		maxFee = defaultSvmBaseFee
	}

	return new(big.Int).Mul(new(big.Int).SetUint64(maxFee), big.NewInt(multiplier))
}
