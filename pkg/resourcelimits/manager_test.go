//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package resourcelimits

import (
	"syscall"
	"testing"

	"github.com/core-tools/hsu-rlimit/pkg/errors"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockResourceLimitLogger for testing
type MockResourceLimitLogger struct {
	mock.Mock
}

func (m *MockResourceLimitLogger) LogLevelf(level int, format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockResourceLimitLogger) Debugf(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockResourceLimitLogger) Infof(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockResourceLimitLogger) Warnf(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockResourceLimitLogger) Errorf(format string, args ...interface{}) {
	m.Called(format, args)
}

func newMockLogger() *MockResourceLimitLogger {
	logger := &MockResourceLimitLogger{}
	logger.On("Debugf", mock.Anything, mock.Anything).Maybe()
	logger.On("Infof", mock.Anything, mock.Anything).Maybe()
	logger.On("Warnf", mock.Anything, mock.Anything).Maybe()
	logger.On("Errorf", mock.Anything, mock.Anything).Maybe()
	return logger
}

// MockKernel stands in for getrlimit/setrlimit
type MockKernel struct {
	mock.Mock
}

func (m *MockKernel) Getrlimit(resource int, lim *rlimit) error {
	args := m.Called(resource, lim)
	return args.Error(0)
}

func (m *MockKernel) Setrlimit(resource int, lim *rlimit) error {
	args := m.Called(resource, lim)
	return args.Error(0)
}

func (m *MockKernel) onGet(resource int, current rlimit, err error) *mock.Call {
	return m.On("Getrlimit", resource, mock.Anything).Run(func(args mock.Arguments) {
		if err == nil {
			*args.Get(1).(*rlimit) = current
		}
	}).Return(err)
}

func (m *MockKernel) onSet(resource int, expected rlimit, err error) *mock.Call {
	return m.On("Setrlimit", resource, mock.MatchedBy(func(lim *rlimit) bool {
		return *lim == expected
	})).Return(err)
}

func newTestManager(k kernel) *Manager {
	return &Manager{kernel: k, logger: newMockLogger()}
}

func mustLookup(t *testing.T, name string) Resource {
	t.Helper()
	r, ok := Lookup(name)
	require.True(t, ok, "resource %q not registered", name)
	return r
}

func TestManagerGet(t *testing.T) {
	nofile := mustLookup(t, "nofile")
	k := &MockKernel{}
	k.onGet(nofile.id, rlimit{Cur: 1024, Max: rlimInfinity}, nil).Once()

	pair, err := newTestManager(k).Get("nofile")

	require.NoError(t, err)
	assert.Equal(t, Pair{Soft: Limit(1024), Hard: Unbounded()}, pair)
	k.AssertExpectations(t)
}

func TestManagerGet_LargeValues(t *testing.T) {
	fsize := mustLookup(t, "fsize")
	k := &MockKernel{}
	k.onGet(fsize.id, rlimit{Cur: 1 << 40, Max: rlimInfinity - 1}, nil)

	pair, err := newTestManager(k).Get("fsize")

	require.NoError(t, err)
	soft, _ := pair.Soft.Uint64()
	hard, _ := pair.Hard.Uint64()
	assert.Equal(t, uint64(1<<40), soft)
	assert.Equal(t, rlimInfinity-1, hard)
}

func TestManagerGet_UnknownResource(t *testing.T) {
	k := &MockKernel{}

	_, err := newTestManager(k).Get("bogus-name")

	assert.True(t, errors.IsUnknownResourceError(err))
	k.AssertNotCalled(t, "Getrlimit", mock.Anything, mock.Anything)
}

func TestManagerGet_KernelFailure(t *testing.T) {
	core := mustLookup(t, "core")
	k := &MockKernel{}
	k.onGet(core.id, rlimit{}, syscall.EINVAL)

	_, err := newTestManager(k).Get("core")

	require.Error(t, err)
	assert.True(t, errors.IsSystemError(err))
	errno, ok := errors.Errno(err)
	require.True(t, ok)
	assert.Equal(t, syscall.EINVAL, errno)
}

func TestManagerSet_BothOmittedReappliesCurrent(t *testing.T) {
	stack := mustLookup(t, "stack")
	current := rlimit{Cur: 8 << 20, Max: rlimInfinity}
	k := &MockKernel{}
	k.onGet(stack.id, current, nil).Once()
	k.onSet(stack.id, current, nil).Once()

	require.NoError(t, newTestManager(k).Set("stack", Update{}))
	k.AssertExpectations(t)
}

func TestManagerSet_SoftOnlyKeepsHard(t *testing.T) {
	nofile := mustLookup(t, "nofile")
	k := &MockKernel{}
	k.onGet(nofile.id, rlimit{Cur: 1024, Max: 4096}, nil).Once()
	k.onSet(nofile.id, rlimit{Cur: 2048, Max: 4096}, nil).Once()

	require.NoError(t, newTestManager(k).Set("nofile", SetSoft(Limit(2048))))
	k.AssertExpectations(t)
}

func TestManagerSet_HardOnlyKeepsSoft(t *testing.T) {
	cpu := mustLookup(t, "cpu")
	k := &MockKernel{}
	k.onGet(cpu.id, rlimit{Cur: 10, Max: rlimInfinity}, nil).Once()
	k.onSet(cpu.id, rlimit{Cur: 10, Max: 60}, nil).Once()

	require.NoError(t, newTestManager(k).Set("cpu", SetHard(Limit(60))))
	k.AssertExpectations(t)
}

func TestManagerSet_SoftUnbounded(t *testing.T) {
	core := mustLookup(t, "core")
	k := &MockKernel{}
	k.onGet(core.id, rlimit{Cur: 0, Max: rlimInfinity}, nil).Once()
	k.onSet(core.id, rlimit{Cur: rlimInfinity, Max: rlimInfinity}, nil).Once()

	require.NoError(t, newTestManager(k).Set("core", SetSoft(Unbounded())))
	k.AssertExpectations(t)
}

func TestManagerSet_FullPairSkipsRead(t *testing.T) {
	data := mustLookup(t, "data")
	k := &MockKernel{}
	k.onSet(data.id, rlimit{Cur: 100, Max: 200}, nil).Once()

	err := newTestManager(k).Set("data", SetBoth(Pair{Soft: Limit(100), Hard: Limit(200)}))

	require.NoError(t, err)
	k.AssertExpectations(t)
	k.AssertNotCalled(t, "Getrlimit", mock.Anything, mock.Anything)
}

func TestManagerSet_UnknownResource(t *testing.T) {
	k := &MockKernel{}

	err := newTestManager(k).Set("bogus-name", Update{})

	assert.True(t, errors.IsUnknownResourceError(err))
	k.AssertNotCalled(t, "Getrlimit", mock.Anything, mock.Anything)
	k.AssertNotCalled(t, "Setrlimit", mock.Anything, mock.Anything)
}

func TestManagerSet_ReadFailureSkipsUpdate(t *testing.T) {
	nofile := mustLookup(t, "nofile")
	k := &MockKernel{}
	k.onGet(nofile.id, rlimit{}, syscall.EFAULT)

	err := newTestManager(k).Set("nofile", SetSoft(Limit(1)))

	require.Error(t, err)
	assert.True(t, errors.IsSystemError(err))
	assert.ErrorIs(t, err, syscall.EFAULT)
	k.AssertNotCalled(t, "Setrlimit", mock.Anything, mock.Anything)
}

func TestManagerSet_UpdateFailure(t *testing.T) {
	nofile := mustLookup(t, "nofile")
	k := &MockKernel{}
	k.onGet(nofile.id, rlimit{Cur: 1024, Max: 4096}, nil)
	k.onSet(nofile.id, rlimit{Cur: 1024, Max: 1 << 20}, syscall.EPERM)

	err := newTestManager(k).Set("nofile", SetHard(Limit(1<<20)))

	require.Error(t, err)
	assert.True(t, errors.IsSystemError(err))
	errno, ok := errors.Errno(err)
	require.True(t, ok)
	assert.Equal(t, syscall.EPERM, errno)
}

func TestManagerSnapshot(t *testing.T) {
	k := &MockKernel{}
	stack := mustLookup(t, "stack")
	k.onGet(stack.id, rlimit{}, syscall.EINVAL)
	k.On("Getrlimit", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		*args.Get(1).(*rlimit) = rlimit{Cur: 1, Max: 2}
	}).Return(nil)

	entries := newTestManager(k).Snapshot()

	require.Len(t, entries, len(Names()))
	for i, entry := range entries {
		assert.Equal(t, Names()[i], entry.Name)
		if entry.Name == "stack" {
			assert.True(t, errors.IsSystemError(entry.Err))
			continue
		}
		require.NoError(t, entry.Err)
		assert.Equal(t, Pair{Soft: Limit(1), Hard: Limit(2)}, entry.Pair)
	}
}

func TestManagerSnapshotMapsInfinity(t *testing.T) {
	k := &MockKernel{}
	k.On("Getrlimit", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		*args.Get(1).(*rlimit) = rlimit{Cur: 7, Max: rlimInfinity}
	}).Return(nil)

	got := map[string]Pair{}
	for _, entry := range newTestManager(k).Snapshot() {
		require.NoError(t, entry.Err)
		got[entry.Name] = entry.Pair
	}

	want := map[string]Pair{}
	for _, name := range Names() {
		want[name] = Pair{Soft: Limit(7), Hard: Unbounded()}
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(Value{})); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}
