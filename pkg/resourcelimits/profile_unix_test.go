//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package resourcelimits

import (
	"syscall"
	"testing"

	"github.com/core-tools/hsu-rlimit/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApplyProfile(t *testing.T) {
	core := mustLookup(t, "core")
	nofile := mustLookup(t, "nofile")

	k := &MockKernel{}
	k.onSet(core.id, rlimit{Cur: 0, Max: 0}, nil).Once()
	k.onGet(nofile.id, rlimit{Cur: 256, Max: 8192}, nil).Once()
	k.onSet(nofile.id, rlimit{Cur: 4096, Max: 8192}, nil).Once()

	profile := &Profile{Limits: map[string]Update{
		"core":   SetBoth(Pair{Soft: Limit(0), Hard: Limit(0)}),
		"nofile": SetSoft(Limit(4096)),
	}}

	require.NoError(t, newTestManager(k).ApplyProfile(profile))
	k.AssertExpectations(t)
}

func TestApplyProfile_ContinuesAfterFailures(t *testing.T) {
	cpu := mustLookup(t, "cpu")
	nofile := mustLookup(t, "nofile")

	k := &MockKernel{}
	k.onGet(cpu.id, rlimit{Cur: 1, Max: 1}, nil)
	k.onSet(cpu.id, rlimit{Cur: 1, Max: 10}, syscall.EPERM)
	k.onSet(nofile.id, rlimit{Cur: 64, Max: 64}, nil).Once()

	profile := &Profile{Limits: map[string]Update{
		"bogus":  {},
		"cpu":    SetHard(Limit(10)),
		"nofile": SetBoth(Pair{Soft: Limit(64), Hard: Limit(64)}),
	}}

	err := newTestManager(k).ApplyProfile(profile)

	require.Error(t, err)
	assert.True(t, errors.IsUnknownResourceError(err))
	assert.True(t, errors.IsSystemError(err))
	assert.ErrorIs(t, err, syscall.EPERM)
	k.AssertCalled(t, "Setrlimit", nofile.id, mock.Anything)
}

func TestApplyProfile_Nil(t *testing.T) {
	err := newTestManager(&MockKernel{}).ApplyProfile(nil)
	assert.True(t, errors.IsValidationError(err))
}
