//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package resourcelimits

import (
	"os"
	"syscall"
	"testing"

	"github.com/core-tools/hsu-rlimit/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// These tests change the limits of the test process itself and must not run
// in parallel.

func restoreLimit(t *testing.T, name string) Pair {
	t.Helper()
	original, err := Get(name)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := Set(name, SetBoth(original)); err != nil {
			t.Errorf("restore %s: %v", name, err)
		}
	})
	return original
}

func TestKernel_AllResourcesReadable(t *testing.T) {
	for _, name := range Names() {
		pair, err := Get(name)
		if err != nil {
			assert.True(t, errors.IsSystemError(err), "%s: %v", name, err)
			continue
		}
		soft, softBounded := pair.Soft.Uint64()
		hard, hardBounded := pair.Hard.Uint64()
		if softBounded && hardBounded {
			assert.LessOrEqual(t, soft, hard, name)
		}
		if hard := pair.Hard; hard.IsUnbounded() {
			continue
		}
		assert.False(t, pair.Soft.IsUnbounded(), "%s: unbounded soft above bounded hard", name)
	}
}

func TestKernel_EmptyUpdateIsNoop(t *testing.T) {
	for _, name := range []string{"nofile", "core", "stack"} {
		before, err := Get(name)
		require.NoError(t, err)

		require.NoError(t, Set(name, Update{}))

		after, err := Get(name)
		require.NoError(t, err)
		assert.Equal(t, before, after, name)
	}
}

func TestKernel_RoundTrip(t *testing.T) {
	for _, name := range []string{"nofile", "core", "cpu", "fsize"} {
		before, err := Get(name)
		require.NoError(t, err)

		require.NoError(t, Set(name, SetBoth(before)))

		after, err := Get(name)
		require.NoError(t, err)
		assert.Equal(t, before, after, name)
	}
}

func TestKernel_SoftOnlyKeepsHard(t *testing.T) {
	original := restoreLimit(t, "core")

	require.NoError(t, Set("core", SetSoft(Limit(0))))

	after, err := Get("core")
	require.NoError(t, err)
	assert.Equal(t, Limit(0), after.Soft)
	assert.Equal(t, original.Hard, after.Hard)
}

func TestKernel_SoftUnbounded(t *testing.T) {
	original := restoreLimit(t, "core")
	if !original.Hard.IsUnbounded() {
		t.Skip("hard core limit is bounded")
	}

	require.NoError(t, Set("core", SetSoft(Unbounded())))

	after, err := Get("core")
	require.NoError(t, err)
	assert.True(t, after.Soft.IsUnbounded())
	assert.Equal(t, original.Hard, after.Hard)
}

func TestKernel_RaiseHardWithoutPrivilegeFails(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root")
	}
	original := restoreLimit(t, "nofile")
	hard, ok := original.Hard.Uint64()
	if !ok {
		t.Skip("hard nofile limit is unbounded")
	}

	err := Set("nofile", SetHard(Limit(hard+1)))

	require.Error(t, err)
	assert.True(t, errors.IsSystemError(err))
	after, getErr := Get("nofile")
	require.NoError(t, getErr)
	assert.Equal(t, original, after)
}

func TestKernel_SoftAboveHardFails(t *testing.T) {
	original := restoreLimit(t, "nofile")
	hard, ok := original.Hard.Uint64()
	if !ok {
		t.Skip("hard nofile limit is unbounded")
	}

	err := Set("nofile", SetSoft(Limit(hard+1)))

	require.Error(t, err)
	assert.True(t, errors.IsSystemError(err))
	assert.ErrorIs(t, err, unix.EINVAL)
}

func swapSyscalls(t *testing.T,
	get func(int, *unix.Rlimit) error, set func(int, *unix.Rlimit) error) {
	t.Helper()
	savedGet, savedSet := getrlimit, setrlimit
	t.Cleanup(func() { getrlimit, setrlimit = savedGet, savedSet })
	if get != nil {
		getrlimit = get
	}
	if set != nil {
		setrlimit = set
	}
}

func TestSysKernel_GetrlimitError(t *testing.T) {
	swapSyscalls(t, func(int, *unix.Rlimit) error { return syscall.EIO }, nil)

	_, err := Get("nofile")

	assert.True(t, errors.IsSystemError(err))
	assert.ErrorIs(t, err, syscall.EIO)
}

func TestSysKernel_SetrlimitReceivesMergedPair(t *testing.T) {
	var got unix.Rlimit
	swapSyscalls(t,
		func(_ int, lim *unix.Rlimit) error {
			*lim = unix.Rlimit{Cur: 7, Max: 9}
			return nil
		},
		func(_ int, lim *unix.Rlimit) error {
			got = *lim
			return syscall.EPERM
		})

	err := Set("nofile", SetSoft(Limit(8)))

	assert.True(t, errors.IsSystemError(err))
	assert.Equal(t, unix.Rlimit{Cur: 8, Max: 9}, got)
}
