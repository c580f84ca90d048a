package quote

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/glyphwallet/swap-engine/config"
)

const (
	// quotes go stale server-side after 30 seconds
	RefreshInterval = time.Second * 30
)

type Client interface {
	GetQuote(ctx context.Context, params Params) (*Quote, error)
}

type PriceSource interface {
	TokenPrice(symbol string) (float64, error)
}

type Update struct {
	Quote *Quote
	Err   error
}

// Watcher keeps a fresh quote for the live swap request. Every request
// change invalidates the displayed quote immediately and supersedes any
// fetch still in flight; a superseded fetch may finish but its result is
// dropped, so the newest request always wins.
type Watcher struct {
	client   Client
	tokens   *config.TokenStore
	prices   PriceSource
	interval time.Duration

	mu          sync.Mutex
	baseCtx     context.Context
	gen         uint64
	req         *SwapRequest
	addrs       Addresses
	enabled     bool
	paused      bool
	quote       *Quote
	cancelFetch context.CancelFunc

	updates chan Update
}

func NewWatcher(client Client, tokens *config.TokenStore, prices PriceSource) *Watcher {
	return &Watcher{
		client:   client,
		tokens:   tokens,
		prices:   prices,
		interval: RefreshInterval,
		baseCtx:  context.Background(),
		updates:  make(chan Update, 16),
	}
}

func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Start runs the periodic refresh loop until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	w.baseCtx = ctx
	w.mu.Unlock()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			w.invalidate(true)
			w.mu.Unlock()
			return
		case <-ticker.C:
			w.mu.Lock()
			if w.quotable() {
				// keep showing the old quote until the refresh lands
				w.invalidate(false)
				w.launch()
			}
			w.mu.Unlock()
		}
	}
}

// SetRequest replaces the live request. The current quote is cleared
// immediately so a quote is never displayed against inputs it was not
// priced for.
func (w *Watcher) SetRequest(req *SwapRequest, addrs Addresses) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.req = req
	w.addrs = addrs
	w.invalidate(true)
	if w.quotable() {
		w.launch()
	}
}

// SetEnabled toggles quoting, used by the caller while on non-entry screens.
func (w *Watcher) SetEnabled(enabled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.enabled = enabled
	if !enabled {
		w.invalidate(true)
		return
	}
	if w.quotable() {
		w.launch()
	}
}

// Pause suspends quoting while an execution is in flight.
func (w *Watcher) Pause() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.paused = true
	w.invalidate(false)
}

func (w *Watcher) Resume() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.paused = false
	if w.quotable() {
		w.invalidate(true)
		w.launch()
	}
}

// Quote returns the current quote, or nil when none is valid.
func (w *Watcher) Quote() *Quote {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.quote == nil || w.quote.Expired() {
		return nil
	}
	return w.quote
}

// Classify detects the same-asset wrap/unwrap shortcut between a chain's
// native token and its canonical wrapped form.
func (w *Watcher) Classify(req *SwapRequest) OpKind {
	from, to := req.FromToken, req.ToToken
	if from == nil || to == nil || from.ChainID != to.ChainID {
		return OpSwap
	}
	if from.IsNative && w.tokens.IsWrappedNative(from.ChainID, to.Address) {
		return OpWrap
	}
	if to.IsNative && w.tokens.IsWrappedNative(from.ChainID, from.Address) {
		return OpUnwrap
	}
	return OpSwap
}

// QuoteOnce fetches a single quote for a request without touching the
// watcher's live state, for one-shot callers like the HTTP API.
func (w *Watcher) QuoteOnce(ctx context.Context, req *SwapRequest, addrs Addresses) (*Quote, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	kind := w.Classify(req)
	q, err := w.client.GetQuote(ctx, w.params(req, addrs, kind))
	if err != nil {
		return nil, err
	}

	q.Kind = kind
	if kind != OpSwap {
		q.FeesApp = &BigInt{big.NewInt(0)}
	}
	w.fillNetworkUsd(q)
	return q, nil
}

func (w *Watcher) quotable() bool {
	if !w.enabled || w.paused || w.req == nil {
		return false
	}
	if w.addrs.Origin == "" || w.addrs.Destination == "" {
		return false
	}
	return w.req.Validate() == nil
}

// invalidate supersedes any in-flight fetch. Callers hold the lock.
func (w *Watcher) invalidate(clearQuote bool) {
	w.gen++
	if clearQuote {
		w.quote = nil
	}
	if w.cancelFetch != nil {
		w.cancelFetch()
		w.cancelFetch = nil
	}
}

// launch starts a fetch for the current request. Callers hold the lock.
func (w *Watcher) launch() {
	kind := w.Classify(w.req)
	ctx, cancel := context.WithCancel(w.baseCtx)
	w.cancelFetch = cancel
	go w.fetch(ctx, w.gen, w.params(w.req, w.addrs, kind), kind)
}

func (w *Watcher) params(req *SwapRequest, addrs Addresses, kind OpKind) Params {
	return Params{
		User:                addrs.Origin,
		Recipient:           addrs.Destination,
		OriginChainID:       req.FromToken.ChainID,
		DestinationChainID:  req.ToToken.ChainID,
		OriginCurrency:      req.FromToken.Address,
		DestinationCurrency: req.ToToken.Address,
		TradeType:           req.TradeType,
		Amount:              req.AmountWei,
		TopUpGas:            req.TopUpGas,
		TopUpGasAmount:      req.TopUpGasAmountWei,
		ExcludeAppFees:      kind != OpSwap,
	}
}

func (w *Watcher) fetch(ctx context.Context, gen uint64, params Params, kind OpKind) {
	q, err := w.client.GetQuote(ctx, params)
	if err != nil && ctx.Err() == nil {
		// quotes are time-sensitive, one retry is the most that makes sense
		q, err = w.client.GetQuote(ctx, params)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if gen != w.gen || ctx.Err() != nil {
		// superseded by a newer request
		return
	}

	if err != nil {
		log.Warn().Msgf("Failed to fetch quote: %s", err)
		w.quote = nil
		w.push(Update{Err: err})
		return
	}

	q.Kind = kind
	if kind != OpSwap {
		q.FeesApp = &BigInt{big.NewInt(0)}
	}
	w.fillNetworkUsd(q)

	w.quote = q
	w.push(Update{Quote: q})
}

// fillNetworkUsd derives the USD network fee from the gas fee when the
// routing service omits it, using the origin chain's native token metadata.
func (w *Watcher) fillNetworkUsd(q *Quote) {
	if q.FeesNetworkUsd != 0 || w.prices == nil {
		return
	}
	if q.FeesGas.AmountWei == nil || q.FeesGas.AmountWei.Int == nil {
		return
	}

	native := w.tokens.Native(q.OriginChainID)
	symbol := q.FeesGas.Currency
	if symbol == "" {
		symbol = native.Symbol
	}

	price, err := w.prices.TokenPrice(symbol)
	if err != nil {
		log.Warn().Msgf("Failed to fetch price for %s: %s", symbol, err)
		return
	}

	divisor := new(big.Float).SetInt(new(big.Int).Exp(
		big.NewInt(10), big.NewInt(int64(native.Decimals)), nil))
	gas, _ := new(big.Float).Quo(
		new(big.Float).SetInt(q.FeesGas.AmountWei.Int), divisor).Float64()
	q.FeesNetworkUsd = gas * price
}

func (w *Watcher) push(u Update) {
	select {
	case w.updates <- u:
	default:
		log.Warn().Msg("Quote update dropped, consumer lagging")
	}
}
