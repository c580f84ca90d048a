package execution_test

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/glyphwallet/swap-engine/config"
	"github.com/glyphwallet/swap-engine/execution"
	mock_execution "github.com/glyphwallet/swap-engine/execution/mock"
	"github.com/glyphwallet/swap-engine/quote"
)

type ExecutorTestSuite struct {
	suite.Suite

	mockBackend  *mock_execution.MockBackend
	mockBalances *mock_execution.MockGasBalancer
	mockAdapter  *mock_execution.MockWalletAdapter

	executor *execution.Executor
	starts   int
}

func TestRunExecutorTestSuite(t *testing.T) {
	suite.Run(t, new(ExecutorTestSuite))
}

func (s *ExecutorTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())

	s.mockBackend = mock_execution.NewMockBackend(ctrl)
	s.mockBalances = mock_execution.NewMockGasBalancer(ctrl)
	s.mockAdapter = mock_execution.NewMockWalletAdapter(ctrl)
	s.mockAdapter.EXPECT().Address().Return("0x5c7BCd6E7De5423a257D81B442095A1a6ced35C5").AnyTimes()

	s.starts = 0
	s.executor = execution.NewExecutor(
		s.mockBackend,
		s.mockBalances,
		map[uint64]config.VmType{
			1: config.VmTypeEvm,
			2: config.VmTypeSvm,
		},
		map[config.VmType]struct{}{
			config.VmTypeEvm: {},
		},
	)
}

func (s *ExecutorTestSuite) onStart() {
	s.starts++
}

func (s *ExecutorTestSuite) estimatedQuote(originChainID uint64) *quote.Quote {
	return &quote.Quote{
		OriginChainID: originChainID,
		Raw:           json.RawMessage(`{"amount":"1000"}`),
	}
}

func (s *ExecutorTestSuite) finalQuote() *quote.Quote {
	return &quote.Quote{
		OriginChainID: 1,
		RequestID:     "req-1",
		FeesGas: quote.GasFee{
			AmountWei: &quote.BigInt{Int: big.NewInt(1_000)},
			Currency:  "ETH",
		},
		Steps: []quote.RawStep{
			{
				ID:   "sign-1",
				Kind: "signMessage",
				Sign: json.RawMessage(`{"signatureKind":"eip191","message":"0xdeadbeef"}`),
			},
			{
				ID:   "deposit",
				Kind: "sendTransaction",
				Tx:   json.RawMessage(`{"from":"0x5c7BCd6E7De5423a257D81B442095A1a6ced35C5","to":"0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2","data":"0x","chainId":1}`),
			},
			{
				ID:   "confirm",
				Kind: "confirmTransaction",
			},
		},
	}
}

func (s *ExecutorTestSuite) Test_Execute_UnsupportedVmType() {
	_, err := s.executor.Execute(context.Background(), s.estimatedQuote(2), s.mockAdapter, s.onStart)

	s.ErrorIs(err, execution.ErrNotImplemented)
	s.Equal(0, s.starts)
}

func (s *ExecutorTestSuite) Test_Execute_UnknownChain() {
	_, err := s.executor.Execute(context.Background(), s.estimatedQuote(99), s.mockAdapter, s.onStart)

	s.ErrorIs(err, execution.ErrNotImplemented)
}

func (s *ExecutorTestSuite) Test_Execute_SubmitFails_NothingReported() {
	s.mockBackend.EXPECT().SubmitQuote(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("backend down"))

	_, err := s.executor.Execute(context.Background(), s.estimatedQuote(1), s.mockAdapter, s.onStart)

	s.NotNil(err)
	s.Equal(0, s.starts)
}

func (s *ExecutorTestSuite) Test_Execute_MissingTxnID() {
	s.mockBackend.EXPECT().SubmitQuote(gomock.Any(), gomock.Any()).Return(&quote.Submission{
		TxnID:      "",
		FinalQuote: s.finalQuote(),
	}, nil)

	_, err := s.executor.Execute(context.Background(), s.estimatedQuote(1), s.mockAdapter, s.onStart)

	s.ErrorIs(err, execution.ErrStatusCheckFailed)
	s.Equal(0, s.starts)
}

func (s *ExecutorTestSuite) Test_Execute_SuccessfulFlow() {
	s.mockBackend.EXPECT().SubmitQuote(gomock.Any(), gomock.Any()).Return(&quote.Submission{
		TxnID:      "txn-1",
		FinalQuote: s.finalQuote(),
	}, nil)
	s.mockAdapter.EXPECT().CurrentChainID(gomock.Any()).Return(uint64(10), nil)
	s.mockAdapter.EXPECT().SwitchChain(gomock.Any(), uint64(1)).Return(nil)
	s.mockAdapter.EXPECT().SignMessage(gomock.Any(), gomock.Any()).Return([]byte{0x01}, nil)
	s.mockBackend.EXPECT().SubmitStepSignature(gomock.Any(), "txn-1", "sign-1", []byte{0x01}).Return(nil)
	s.mockBalances.EXPECT().GasBalance(gomock.Any(), uint64(1), gomock.Any()).Return(big.NewInt(1_000_000), nil)
	s.mockAdapter.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return("0xhash", nil)
	s.mockAdapter.EXPECT().WaitForReceipt(gomock.Any(), "0xhash", uint64(1), gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := s.executor.Execute(context.Background(), s.estimatedQuote(1), s.mockAdapter, s.onStart)

	s.Nil(err)
	s.Equal(1, s.starts)
	s.Equal("txn-1", outcome.TxnID)
	s.Equal("req-1", outcome.RequestID)
	s.Equal("0xhash", outcome.LastTxHash)
}

func (s *ExecutorTestSuite) Test_Execute_SameChain_NoSwitch() {
	final := s.finalQuote()
	final.Steps = final.Steps[:1]
	s.mockBackend.EXPECT().SubmitQuote(gomock.Any(), gomock.Any()).Return(&quote.Submission{
		TxnID:      "txn-1",
		FinalQuote: final,
	}, nil)
	s.mockAdapter.EXPECT().CurrentChainID(gomock.Any()).Return(uint64(1), nil)
	s.mockAdapter.EXPECT().SignMessage(gomock.Any(), gomock.Any()).Return([]byte{0x01}, nil)
	s.mockBackend.EXPECT().SubmitStepSignature(gomock.Any(), "txn-1", "sign-1", []byte{0x01}).Return(nil)

	_, err := s.executor.Execute(context.Background(), s.estimatedQuote(1), s.mockAdapter, s.onStart)

	s.Nil(err)
}

func (s *ExecutorTestSuite) Test_Execute_InsufficientGas_NoBroadcast() {
	s.mockBackend.EXPECT().SubmitQuote(gomock.Any(), gomock.Any()).Return(&quote.Submission{
		TxnID:      "txn-1",
		FinalQuote: s.finalQuote(),
	}, nil)
	s.mockAdapter.EXPECT().CurrentChainID(gomock.Any()).Return(uint64(1), nil)
	s.mockAdapter.EXPECT().SignMessage(gomock.Any(), gomock.Any()).Return([]byte{0x01}, nil)
	s.mockBackend.EXPECT().SubmitStepSignature(gomock.Any(), "txn-1", "sign-1", []byte{0x01}).Return(nil)
	s.mockBalances.EXPECT().GasBalance(gomock.Any(), uint64(1), gomock.Any()).Return(big.NewInt(10), nil)
	s.mockBackend.EXPECT().ReportFailed(gomock.Any(), "txn-1").Return(nil).Times(1)

	_, err := s.executor.Execute(context.Background(), s.estimatedQuote(1), s.mockAdapter, s.onStart)

	s.ErrorIs(err, execution.ErrInsufficientGas)
}

func (s *ExecutorTestSuite) Test_Execute_BalanceCheckFails_ProceedsToBroadcast() {
	s.mockBackend.EXPECT().SubmitQuote(gomock.Any(), gomock.Any()).Return(&quote.Submission{
		TxnID:      "txn-1",
		FinalQuote: s.finalQuote(),
	}, nil)
	s.mockAdapter.EXPECT().CurrentChainID(gomock.Any()).Return(uint64(1), nil)
	s.mockAdapter.EXPECT().SignMessage(gomock.Any(), gomock.Any()).Return([]byte{0x01}, nil)
	s.mockBackend.EXPECT().SubmitStepSignature(gomock.Any(), "txn-1", "sign-1", []byte{0x01}).Return(nil)
	s.mockBalances.EXPECT().GasBalance(gomock.Any(), uint64(1), gomock.Any()).Return(nil, fmt.Errorf("rpc error"))
	s.mockAdapter.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return("0xhash", nil)
	s.mockAdapter.EXPECT().WaitForReceipt(gomock.Any(), "0xhash", uint64(1), gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.executor.Execute(context.Background(), s.estimatedQuote(1), s.mockAdapter, s.onStart)

	s.Nil(err)
}

func (s *ExecutorTestSuite) Test_Execute_ReplacedTransaction() {
	s.mockBackend.EXPECT().SubmitQuote(gomock.Any(), gomock.Any()).Return(&quote.Submission{
		TxnID:      "txn-1",
		FinalQuote: s.finalQuote(),
	}, nil)
	s.mockAdapter.EXPECT().CurrentChainID(gomock.Any()).Return(uint64(1), nil)
	s.mockAdapter.EXPECT().SignMessage(gomock.Any(), gomock.Any()).Return([]byte{0x01}, nil)
	s.mockBackend.EXPECT().SubmitStepSignature(gomock.Any(), "txn-1", "sign-1", []byte{0x01}).Return(nil)
	s.mockBalances.EXPECT().GasBalance(gomock.Any(), uint64(1), gomock.Any()).Return(big.NewInt(1_000_000), nil)
	s.mockAdapter.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return("0xhash", nil)
	s.mockAdapter.EXPECT().WaitForReceipt(gomock.Any(), "0xhash", uint64(1), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, txHash string, chainID uint64, onReplaced func(string), onCancelled func()) error {
			onReplaced("0xspeedup")
			return nil
		})

	outcome, err := s.executor.Execute(context.Background(), s.estimatedQuote(1), s.mockAdapter, s.onStart)

	s.Nil(err)
	s.Equal("0xspeedup", outcome.LastTxHash)
}

func (s *ExecutorTestSuite) Test_Execute_CancelledTransaction() {
	s.mockBackend.EXPECT().SubmitQuote(gomock.Any(), gomock.Any()).Return(&quote.Submission{
		TxnID:      "txn-1",
		FinalQuote: s.finalQuote(),
	}, nil)
	s.mockAdapter.EXPECT().CurrentChainID(gomock.Any()).Return(uint64(1), nil)
	s.mockAdapter.EXPECT().SignMessage(gomock.Any(), gomock.Any()).Return([]byte{0x01}, nil)
	s.mockBackend.EXPECT().SubmitStepSignature(gomock.Any(), "txn-1", "sign-1", []byte{0x01}).Return(nil)
	s.mockBalances.EXPECT().GasBalance(gomock.Any(), uint64(1), gomock.Any()).Return(big.NewInt(1_000_000), nil)
	s.mockAdapter.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return("0xhash", nil)
	s.mockAdapter.EXPECT().WaitForReceipt(gomock.Any(), "0xhash", uint64(1), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, txHash string, chainID uint64, onReplaced func(string), onCancelled func()) error {
			onCancelled()
			return nil
		})
	s.mockBackend.EXPECT().ReportFailed(gomock.Any(), "txn-1").Return(nil).Times(1)

	_, err := s.executor.Execute(context.Background(), s.estimatedQuote(1), s.mockAdapter, s.onStart)

	s.ErrorIs(err, execution.ErrTxCancelled)
}

func (s *ExecutorTestSuite) Test_Execute_MissingRequestID() {
	final := s.finalQuote()
	final.RequestID = ""
	final.Steps = nil
	s.mockBackend.EXPECT().SubmitQuote(gomock.Any(), gomock.Any()).Return(&quote.Submission{
		TxnID:      "txn-1",
		FinalQuote: final,
	}, nil)
	s.mockAdapter.EXPECT().CurrentChainID(gomock.Any()).Return(uint64(1), nil)
	s.mockBackend.EXPECT().ReportFailed(gomock.Any(), "txn-1").Return(nil).Times(1)

	_, err := s.executor.Execute(context.Background(), s.estimatedQuote(1), s.mockAdapter, s.onStart)

	s.ErrorIs(err, execution.ErrStatusCheckFailed)
	s.Equal(1, s.starts)
}

func (s *ExecutorTestSuite) Test_Execute_UnknownStep_ReportedOnce() {
	final := s.finalQuote()
	final.Steps = []quote.RawStep{
		{
			ID:   "mystery",
			Kind: "approveAllowance",
		},
	}
	s.mockBackend.EXPECT().SubmitQuote(gomock.Any(), gomock.Any()).Return(&quote.Submission{
		TxnID:      "txn-1",
		FinalQuote: final,
	}, nil)
	s.mockAdapter.EXPECT().CurrentChainID(gomock.Any()).Return(uint64(1), nil)
	s.mockBackend.EXPECT().ReportFailed(gomock.Any(), "txn-1").Return(nil).Times(1)

	_, err := s.executor.Execute(context.Background(), s.estimatedQuote(1), s.mockAdapter, s.onStart)

	s.NotNil(err)
}
