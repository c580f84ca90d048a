package quote_test

import (
	"context"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/glyphwallet/swap-engine/config"
	"github.com/glyphwallet/swap-engine/quote"
	mock_quote "github.com/glyphwallet/swap-engine/quote/mock"
)

const wethAddress = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"

type WatcherTestSuite struct {
	suite.Suite

	mockClient *mock_quote.MockClient
	mockPrices *mock_quote.MockPriceSource

	watcher *quote.Watcher
}

func TestRunWatcherTestSuite(t *testing.T) {
	suite.Run(t, new(WatcherTestSuite))
}

func (s *WatcherTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())

	s.mockClient = mock_quote.NewMockClient(ctrl)
	s.mockPrices = mock_quote.NewMockPriceSource(ctrl)

	tokens := &config.TokenStore{
		Tokens: map[uint64]map[string]config.TokenConfig{},
		WrappedNative: map[uint64]common.Address{
			1: common.HexToAddress(wethAddress),
		},
		Natives: map[uint64]config.NativeCurrency{
			1:       {Symbol: "ETH", Decimals: 18},
			9286185: {Symbol: "ETH", Decimals: 9},
		},
	}
	s.watcher = quote.NewWatcher(s.mockClient, tokens, s.mockPrices)
	s.watcher.SetEnabled(true)
}

func (s *WatcherTestSuite) validRequest() *quote.SwapRequest {
	return &quote.SwapRequest{
		FromToken: &quote.TokenRef{
			ChainID:  1,
			Address:  "0x0000000000000000000000000000000000000000",
			Symbol:   "ETH",
			IsNative: true,
		},
		ToToken: &quote.TokenRef{
			ChainID: 8453,
			Address: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
			Symbol:  "USDC",
		},
		TradeType: quote.TradeExactInput,
		AmountWei: &quote.BigInt{Int: big.NewInt(1_000_000_000_000_000_000)},
	}
}

func (s *WatcherTestSuite) addrs() quote.Addresses {
	return quote.Addresses{
		Origin:      "0x5c7BCd6E7De5423a257D81B442095A1a6ced35C5",
		Destination: "0x5c7BCd6E7De5423a257D81B442095A1a6ced35C5",
	}
}

func (s *WatcherTestSuite) freshQuote() *quote.Quote {
	return &quote.Quote{
		InAmount:       &quote.BigInt{Int: big.NewInt(1_000_000_000_000_000_000)},
		OutAmount:      &quote.BigInt{Int: big.NewInt(4_000_000_000)},
		FeesNetworkUsd: 1.5,
		ExpiresAt:      time.Now().Add(time.Minute),
	}
}

func (s *WatcherTestSuite) receiveUpdate() quote.Update {
	select {
	case u := <-s.watcher.Updates():
		return u
	case <-time.After(time.Second * 5):
		s.FailNow("timed out waiting for update")
		return quote.Update{}
	}
}

func (s *WatcherTestSuite) Test_SetRequest_FetchesQuote() {
	s.mockClient.EXPECT().GetQuote(gomock.Any(), gomock.Any()).Return(s.freshQuote(), nil)

	s.watcher.SetRequest(s.validRequest(), s.addrs())

	update := s.receiveUpdate()
	s.Nil(update.Err)
	s.Equal(big.NewInt(4_000_000_000), update.Quote.OutAmount.Int)
	s.NotNil(s.watcher.Quote())
}

func (s *WatcherTestSuite) Test_SetRequest_InvalidRequest_NoFetch() {
	req := s.validRequest()
	req.AmountWei = nil

	s.watcher.SetRequest(req, s.addrs())

	s.Nil(s.watcher.Quote())
}

func (s *WatcherTestSuite) Test_SetRequest_SupersedesInflightFetch() {
	release := make(chan struct{})
	staleQuote := s.freshQuote()
	staleQuote.OutAmount = &quote.BigInt{Int: big.NewInt(1)}

	staleReq := s.validRequest()
	freshReq := s.validRequest()
	freshReq.AmountWei = &quote.BigInt{Int: big.NewInt(2_000_000_000_000_000_000)}

	s.mockClient.EXPECT().GetQuote(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, params quote.Params) (*quote.Quote, error) {
			if params.Amount.Cmp(staleReq.AmountWei.Int) == 0 {
				<-release
				return staleQuote, nil
			}
			return s.freshQuote(), nil
		}).Times(2)

	s.watcher.SetRequest(staleReq, s.addrs())
	s.watcher.SetRequest(freshReq, s.addrs())

	update := s.receiveUpdate()
	s.Equal(big.NewInt(4_000_000_000), update.Quote.OutAmount.Int)

	close(release)
	time.Sleep(time.Millisecond * 50)

	s.Equal(big.NewInt(4_000_000_000), s.watcher.Quote().OutAmount.Int)
	select {
	case u := <-s.watcher.Updates():
		s.Failf("unexpected update", "%+v", u)
	default:
	}
}

func (s *WatcherTestSuite) Test_Fetch_RetriesOnce() {
	s.mockClient.EXPECT().GetQuote(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("timeout"))
	s.mockClient.EXPECT().GetQuote(gomock.Any(), gomock.Any()).Return(s.freshQuote(), nil)

	s.watcher.SetRequest(s.validRequest(), s.addrs())

	update := s.receiveUpdate()
	s.Nil(update.Err)
	s.NotNil(update.Quote)
}

func (s *WatcherTestSuite) Test_Fetch_BothAttemptsFail() {
	s.mockClient.EXPECT().GetQuote(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("timeout")).Times(2)

	s.watcher.SetRequest(s.validRequest(), s.addrs())

	update := s.receiveUpdate()
	s.NotNil(update.Err)
	s.Nil(s.watcher.Quote())
}

func (s *WatcherTestSuite) Test_Fetch_WrapSuppressesAppFee() {
	req := s.validRequest()
	req.ToToken = &quote.TokenRef{
		ChainID: 1,
		Address: wethAddress,
		Symbol:  "WETH",
	}

	q := s.freshQuote()
	q.FeesApp = &quote.BigInt{Int: big.NewInt(5_000)}
	s.mockClient.EXPECT().GetQuote(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, params quote.Params) (*quote.Quote, error) {
			s.True(params.ExcludeAppFees)
			return q, nil
		})

	s.watcher.SetRequest(req, s.addrs())

	update := s.receiveUpdate()
	s.Equal(quote.OpWrap, update.Quote.Kind)
	s.Equal(int64(0), update.Quote.FeesApp.Int64())
}

func (s *WatcherTestSuite) Test_Fetch_FillsNetworkUsd() {
	q := s.freshQuote()
	q.FeesNetworkUsd = 0
	q.FeesGas = quote.GasFee{
		AmountWei: &quote.BigInt{Int: big.NewInt(2_000_000_000_000_000)},
		Currency:  "ETH",
	}
	s.mockClient.EXPECT().GetQuote(gomock.Any(), gomock.Any()).Return(q, nil)
	s.mockPrices.EXPECT().TokenPrice("ETH").Return(2000.0, nil)

	s.watcher.SetRequest(s.validRequest(), s.addrs())

	update := s.receiveUpdate()
	s.InDelta(4.0, update.Quote.FeesNetworkUsd, 0.001)
}

func (s *WatcherTestSuite) Test_Fetch_FillsNetworkUsd_NativeDecimals() {
	q := s.freshQuote()
	q.FeesNetworkUsd = 0
	q.OriginChainID = 9286185
	// no currency on the gas fee, the chain's native metadata takes over
	q.FeesGas = quote.GasFee{
		AmountWei: &quote.BigInt{Int: big.NewInt(2_000_000)},
	}
	s.mockClient.EXPECT().GetQuote(gomock.Any(), gomock.Any()).Return(q, nil)
	s.mockPrices.EXPECT().TokenPrice("ETH").Return(2000.0, nil)

	s.watcher.SetRequest(s.validRequest(), s.addrs())

	update := s.receiveUpdate()
	s.InDelta(4.0, update.Quote.FeesNetworkUsd, 0.001)
}

func (s *WatcherTestSuite) Test_SetEnabled_False_ClearsQuote() {
	s.mockClient.EXPECT().GetQuote(gomock.Any(), gomock.Any()).Return(s.freshQuote(), nil)

	s.watcher.SetRequest(s.validRequest(), s.addrs())
	s.receiveUpdate()

	s.watcher.SetEnabled(false)

	s.Nil(s.watcher.Quote())
}

func (s *WatcherTestSuite) Test_Pause_KeepsQuote_Resume_Refetches() {
	s.mockClient.EXPECT().GetQuote(gomock.Any(), gomock.Any()).Return(s.freshQuote(), nil).Times(2)

	s.watcher.SetRequest(s.validRequest(), s.addrs())
	s.receiveUpdate()

	s.watcher.Pause()
	s.NotNil(s.watcher.Quote())

	s.watcher.Resume()
	s.receiveUpdate()
	s.NotNil(s.watcher.Quote())
}

func (s *WatcherTestSuite) Test_Classify() {
	native := &quote.TokenRef{ChainID: 1, Address: "0x0000000000000000000000000000000000000000", IsNative: true}
	wrapped := &quote.TokenRef{ChainID: 1, Address: wethAddress}
	other := &quote.TokenRef{ChainID: 1, Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"}
	remote := &quote.TokenRef{ChainID: 8453, Address: wethAddress}

	s.Equal(quote.OpWrap, s.watcher.Classify(&quote.SwapRequest{FromToken: native, ToToken: wrapped}))
	s.Equal(quote.OpUnwrap, s.watcher.Classify(&quote.SwapRequest{FromToken: wrapped, ToToken: native}))
	s.Equal(quote.OpSwap, s.watcher.Classify(&quote.SwapRequest{FromToken: native, ToToken: other}))
	s.Equal(quote.OpSwap, s.watcher.Classify(&quote.SwapRequest{FromToken: native, ToToken: remote}))
}

func (s *WatcherTestSuite) Test_QuoteOnce() {
	s.mockClient.EXPECT().GetQuote(gomock.Any(), gomock.Any()).Return(s.freshQuote(), nil)

	q, err := s.watcher.QuoteOnce(context.Background(), s.validRequest(), s.addrs())

	s.Nil(err)
	s.Equal(quote.OpSwap, q.Kind)
	s.Nil(s.watcher.Quote())
}
