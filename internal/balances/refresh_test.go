package balances

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestRefreshPrimary(t *testing.T) {
	s := NewSession(testAccount)
	reg, tok := newFixture(true, 50, 3, 0)
	require.NoError(t, s.Bind(Primary, Bindings{Registry: reg, Token: tok}))

	require.NoError(t, s.Refresh(context.Background(), Primary))

	st := s.Store().Snapshot(Primary)
	require.False(t, st.Loading)
	require.True(t, st.Registered)
	require.Equal(t, int64(50), st.Balance.Int64())
	require.Equal(t, int64(3), st.VotingBalance.Int64())
	require.Nil(t, st.Size)
}

func TestRefreshAggregateReadsSize(t *testing.T) {
	s := NewSession(testAccount)
	reg, tok := newFixture(false, 2, 0, 14)
	require.NoError(t, s.Bind(Aggregate, Bindings{Registry: reg, Token: tok}))

	require.NoError(t, s.Refresh(context.Background(), Aggregate))

	st := s.Store().Snapshot(Aggregate)
	require.False(t, st.Loading)
	require.False(t, st.Registered)
	require.Equal(t, int64(2), st.Balance.Int64())
	require.Equal(t, int64(14), st.Size.Int64())
	require.Equal(t, int64(0), st.VotingBalance.Int64())
}

func TestRefreshSuccessLeavesNoNilValues(t *testing.T) {
	s := NewSession(testAccount)
	for _, class := range AssetClasses {
		reg, tok := newFixture(false, 0, 0, 0)
		require.NoError(t, s.Bind(class, Bindings{Registry: reg, Token: tok}))
	}
	require.NoError(t, s.RefreshAll(context.Background()))

	for _, class := range AssetClasses {
		st := s.Store().Snapshot(class)
		require.False(t, st.Loading, class.String())
		require.NotNil(t, st.Balance, class.String())
		require.NotNil(t, st.VotingBalance, class.String())
	}
}

func TestRefreshFailureKeepsDefaults(t *testing.T) {
	s := NewSession(testAccount)
	reg, tok := newFixture(true, 50, 3, 0)
	tok.err = errRPC
	require.NoError(t, s.Bind(Primary, Bindings{Registry: reg, Token: tok}))

	err := s.Refresh(context.Background(), Primary)
	require.True(t, errors.Is(err, ErrReadFailure))
	require.ErrorIs(t, err, errRPC)

	st := s.Store().Snapshot(Primary)
	require.False(t, st.Loading)
	require.False(t, st.Registered)
	require.Nil(t, st.Balance)
	require.Nil(t, st.VotingBalance)
}

func TestRefreshAllClassesFailIndependently(t *testing.T) {
	s := NewSession(testAccount)
	land, landTok := newFixture(true, 50, 3, 0)
	estate, estateTok := newFixture(true, 1, 1, 4)
	estate.readErr = errRPC
	require.NoError(t, s.Bind(Primary, Bindings{Registry: land, Token: landTok}))
	require.NoError(t, s.Bind(Aggregate, Bindings{Registry: estate, Token: estateTok}))

	err := s.RefreshAll(context.Background())
	require.True(t, errors.Is(err, ErrReadFailure))

	primary := s.Store().Snapshot(Primary)
	require.True(t, primary.Registered)
	require.Equal(t, int64(50), primary.Balance.Int64())

	aggregate := s.Store().Snapshot(Aggregate)
	require.False(t, aggregate.Loading)
	require.False(t, aggregate.Registered)
	require.Nil(t, aggregate.Size)
}

func TestRefreshAllSkipsUnboundClasses(t *testing.T) {
	s := NewSession(testAccount)
	reg, tok := newFixture(false, 5, 0, 0)
	require.NoError(t, s.Bind(Primary, Bindings{Registry: reg, Token: tok}))

	require.NoError(t, s.RefreshAll(context.Background()))
	require.False(t, s.Store().Snapshot(Primary).Loading)
	require.True(t, s.Store().Snapshot(Aggregate).Loading)
}

func TestRefreshUnboundClass(t *testing.T) {
	s := NewSession(testAccount)
	require.ErrorIs(t, s.Refresh(context.Background(), Aggregate), ErrNotReady)
	require.ErrorIs(t, s.Refresh(context.Background(), AssetClass(5)), ErrUnknownAssetClass)
}

func TestReloadRefusesLoadingClass(t *testing.T) {
	s := NewSession(testAccount)
	reg, tok := newFixture(false, 5, 0, 0)
	require.NoError(t, s.Bind(Primary, Bindings{Registry: reg, Token: tok}))

	// still loading from Bind
	require.ErrorIs(t, s.Reload(context.Background(), Primary), ErrToggleInProgress)

	require.NoError(t, s.Refresh(context.Background(), Primary))
	reg.mu.Lock()
	reg.balance.SetInt64(6)
	reg.mu.Unlock()

	require.NoError(t, s.Reload(context.Background(), Primary))
	require.Equal(t, int64(6), s.Store().Snapshot(Primary).Balance.Int64())
}
