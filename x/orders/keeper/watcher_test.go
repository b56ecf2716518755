package keeper_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cosmossdk.io/log"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/sealswap/testutil/keeper"
	"github.com/paw-chain/sealswap/x/orders/keeper"
)

func TestWaitForExpiry(t *testing.T) {
	heights := &keepertest.HeightSequence{Heights: []uint64{98, 99, 100, 101, 102}}
	w := keeper.NewDeadlineWatcher(heights, 0, log.NewNopLogger())

	height, err := w.WaitForExpiry(context.Background(), 100)
	require.NoError(t, err)
	require.Equal(t, uint64(101), height)
	require.Equal(t, 4, heights.Polls())
}

func TestWaitForExpiry_AlreadyExpired(t *testing.T) {
	heights := &keepertest.HeightSequence{Heights: []uint64{500}}
	w := keeper.NewDeadlineWatcher(heights, time.Millisecond, nil)

	height, err := w.WaitForExpiry(context.Background(), 100)
	require.NoError(t, err)
	require.Equal(t, uint64(500), height)
	require.Equal(t, 1, heights.Polls())
}

func TestWaitForExpiry_PollErrorsAreRetried(t *testing.T) {
	heights := &keepertest.HeightSequence{
		Heights: []uint64{0, 0, 100, 101},
		Errs:    []error{errors.New("rpc timeout"), errors.New("rpc timeout")},
	}
	w := keeper.NewDeadlineWatcher(heights, 0, nil)

	height, err := w.WaitForExpiry(context.Background(), 100)
	require.NoError(t, err)
	require.Equal(t, uint64(101), height)
	require.Equal(t, 4, heights.Polls())
}

func TestWaitForExpiry_ContextCancelled(t *testing.T) {
	heights := &keepertest.HeightSequence{Heights: []uint64{10}}
	w := keeper.NewDeadlineWatcher(heights, time.Millisecond, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := w.WaitForExpiry(ctx, 100)
	require.Error(t, err)
	require.Greater(t, heights.Polls(), 1)
}
