package intent_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/glyphwallet/swap-engine/intent"
	mock_intent "github.com/glyphwallet/swap-engine/intent/mock"
)

type PollerTestSuite struct {
	suite.Suite

	mockClient   *mock_intent.MockStatusSource
	mockBalances *mock_intent.MockBalanceRefresher

	poller *intent.Poller
}

func TestRunPollerTestSuite(t *testing.T) {
	suite.Run(t, new(PollerTestSuite))
}

func (s *PollerTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())

	s.mockClient = mock_intent.NewMockStatusSource(ctrl)
	s.mockBalances = mock_intent.NewMockBalanceRefresher(ctrl)

	s.poller = intent.NewPoller(s.mockClient, s.mockBalances, "https://explorer.example.com")
	s.poller.Interval = time.Millisecond * 10
}

func (s *PollerTestSuite) collect(updates <-chan intent.Update) []intent.Update {
	collected := []intent.Update{}
	timeout := time.After(time.Second * 5)
	for {
		select {
		case u, ok := <-updates:
			if !ok {
				return collected
			}
			collected = append(collected, u)
		case <-timeout:
			s.FailNow("timed out collecting updates")
			return collected
		}
	}
}

func (s *PollerTestSuite) Test_Watch_Success_RefreshesBalancesOnce() {
	s.mockClient.EXPECT().GetStatus(gomock.Any(), "req-1").Return(&intent.IntentStatus{
		Status: intent.StatusSuccess,
	}, nil)
	s.mockBalances.EXPECT().Refresh(true).Times(1)

	updates := s.collect(s.poller.Watch(context.Background(), "req-1", nil))

	s.Len(updates, 1)
	s.True(updates[0].Terminal)
	s.False(updates[0].Failed)
}

func (s *PollerTestSuite) Test_Watch_PendingThenSuccess() {
	s.mockClient.EXPECT().GetStatus(gomock.Any(), "req-1").Return(&intent.IntentStatus{
		Status: intent.StatusPending,
	}, nil)
	s.mockClient.EXPECT().GetStatus(gomock.Any(), "req-1").Return(&intent.IntentStatus{
		Status: intent.StatusSuccess,
	}, nil)
	s.mockBalances.EXPECT().Refresh(true).Times(1)

	updates := s.collect(s.poller.Watch(context.Background(), "req-1", nil))

	s.Len(updates, 2)
	s.False(updates[0].Terminal)
	s.True(updates[1].Terminal)
}

func (s *PollerTestSuite) Test_Watch_Refund_InvokesCallback() {
	s.mockClient.EXPECT().GetStatus(gomock.Any(), "req-1").Return(&intent.IntentStatus{
		Status: intent.StatusRefund,
	}, nil)
	s.mockBalances.EXPECT().Refresh(true).Times(1)

	failures := 0
	updates := s.collect(s.poller.Watch(context.Background(), "req-1", func(ctx context.Context) {
		failures++
	}))

	s.Equal(1, failures)
	s.Len(updates, 1)
	s.True(updates[0].Terminal)
	s.True(updates[0].Failed)
	s.Contains(updates[0].Message, "will be refunded")
}

func (s *PollerTestSuite) Test_Watch_Failure_InvokesCallback() {
	s.mockClient.EXPECT().GetStatus(gomock.Any(), "req-1").Return(&intent.IntentStatus{
		Status:  intent.StatusFailure,
		Details: "deposit expired",
	}, nil)
	s.mockBalances.EXPECT().Refresh(true).Times(1)

	failures := 0
	updates := s.collect(s.poller.Watch(context.Background(), "req-1", func(ctx context.Context) {
		failures++
	}))

	s.Equal(1, failures)
	s.Len(updates, 1)
	s.True(updates[0].Failed)
	s.Equal("deposit expired", updates[0].Message)
}

func (s *PollerTestSuite) Test_Watch_StatusError_Stops() {
	s.mockClient.EXPECT().GetStatus(gomock.Any(), "req-1").Return(nil, fmt.Errorf("service down"))

	updates := s.collect(s.poller.Watch(context.Background(), "req-1", nil))

	s.Len(updates, 1)
	s.True(updates[0].Terminal)
	s.NotNil(updates[0].Err)
}

func (s *PollerTestSuite) Test_Watch_UnknownStatus_Bounded() {
	s.mockClient.EXPECT().GetStatus(gomock.Any(), "req-1").Return(&intent.IntentStatus{
		Status: intent.StatusUnknown,
	}, nil).Times(3)

	updates := s.collect(s.poller.Watch(context.Background(), "req-1", nil))

	s.Len(updates, 1)
	s.True(updates[0].Terminal)
	s.ErrorIs(updates[0].Err, intent.ErrIntentNotFound)
}

func (s *PollerTestSuite) Test_Watch_UnknownStatus_RecoversOnPending() {
	s.mockClient.EXPECT().GetStatus(gomock.Any(), "req-1").Return(&intent.IntentStatus{
		Status: intent.StatusUnknown,
	}, nil).Times(2)
	s.mockClient.EXPECT().GetStatus(gomock.Any(), "req-1").Return(&intent.IntentStatus{
		Status: intent.StatusPending,
	}, nil)
	s.mockClient.EXPECT().GetStatus(gomock.Any(), "req-1").Return(&intent.IntentStatus{
		Status: intent.StatusUnknown,
	}, nil).Times(2)
	s.mockClient.EXPECT().GetStatus(gomock.Any(), "req-1").Return(&intent.IntentStatus{
		Status: intent.StatusSuccess,
	}, nil)
	s.mockBalances.EXPECT().Refresh(true).Times(1)

	updates := s.collect(s.poller.Watch(context.Background(), "req-1", nil))

	s.Len(updates, 2)
	s.True(updates[1].Terminal)
	s.False(updates[1].Failed)
}

func (s *PollerTestSuite) Test_Watch_ContextCancelled() {
	ctx, cancel := context.WithCancel(context.Background())
	s.mockClient.EXPECT().GetStatus(gomock.Any(), "req-1").DoAndReturn(
		func(ctx context.Context, requestID string) (*intent.IntentStatus, error) {
			cancel()
			return &intent.IntentStatus{Status: intent.StatusPending}, nil
		})

	updates := s.collect(s.poller.Watch(ctx, "req-1", nil))

	s.Len(updates, 1)
	s.False(updates[0].Terminal)
}

func (s *PollerTestSuite) Test_ExplorerLink() {
	s.Equal(
		"https://explorer.example.com/transaction/req-1",
		s.poller.ExplorerLink("req-1"))
}
