package dictionary

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/heartmarshall/hanzi-reader/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockSource struct {
	OpenFunc func(ctx context.Context) (io.ReadCloser, error)
	opens    atomic.Int32
}

func (m *mockSource) Open(ctx context.Context) (io.ReadCloser, error) {
	m.opens.Add(1)
	return m.OpenFunc(ctx)
}

func (m *mockSource) String() string { return "mock://cedict" }

func textSource(text string) *mockSource {
	return &mockSource{
		OpenFunc: func(_ context.Context) (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(text)), nil
		},
	}
}

func newTestStore(src Source) *Store {
	return NewStore(slog.New(slog.NewTextHandler(io.Discard, nil)), src)
}

const sampleDict = `# CC-CEDICT
你 你 [ni3] /you/
好 好 [hao3] /good/well/
中國 中国 [Zhong1 guo2] /China/
broken line
`

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

func TestStore_NotReadyBeforeLoad(t *testing.T) {
	t.Parallel()

	s := newTestStore(textSource(sampleDict))

	assert.False(t, s.Ready())
	assert.Nil(t, s.Table())
	assert.Equal(t, 0, s.Table().Len())

	_, ok := s.Info()
	assert.False(t, ok)

	_, err := s.Lookup("你")
	assert.True(t, errors.Is(err, domain.ErrDictionaryNotReady))
}

func TestStore_Load_Success(t *testing.T) {
	t.Parallel()

	s := newTestStore(textSource(sampleDict))

	info, err := s.Load(context.Background())
	require.NoError(t, err)

	assert.True(t, s.Ready())
	assert.Equal(t, "mock://cedict", info.Source)
	assert.Equal(t, 3, info.Stats.ParsedLines)
	assert.Equal(t, 1, info.Stats.SkippedLines)
	assert.Equal(t, 4, info.Stats.UniqueKeys)
	assert.False(t, info.LoadedAt.IsZero())

	got, ok := s.Info()
	require.True(t, ok)
	assert.Equal(t, info, got)

	entry, err := s.Lookup("中国")
	require.NoError(t, err)
	assert.Equal(t, domain.DictionaryEntry{Traditional: "中國", Simplified: "中国", Pinyin: "Zhōng gúo", English: "China"}, entry)

	_, err = s.Lookup("龍")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStore_Load_SourceFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	s := newTestStore(&mockSource{
		OpenFunc: func(_ context.Context) (io.ReadCloser, error) { return nil, boom },
	})

	_, err := s.Load(context.Background())
	require.Error(t, err)

	var le *domain.LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "mock://cedict", le.Source)
	assert.True(t, errors.Is(err, boom))
	assert.True(t, errors.Is(err, domain.ErrDictionaryUnavailable))

	assert.False(t, s.Ready())
	assert.Equal(t, 0, s.Table().Len())
}

func TestStore_Load_ReadFailureKeepsNothing(t *testing.T) {
	t.Parallel()

	s := newTestStore(&mockSource{
		OpenFunc: func(_ context.Context) (io.ReadCloser, error) {
			r := io.MultiReader(strings.NewReader(sampleDict), errReader{})
			return io.NopCloser(r), nil
		},
	})

	_, err := s.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDictionaryUnavailable))
	assert.False(t, s.Ready(), "a partially read dictionary must not be published")
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestStore_Load_FailureAfterSuccessKeepsSnapshot(t *testing.T) {
	t.Parallel()

	var fail atomic.Bool
	s := newTestStore(&mockSource{
		OpenFunc: func(_ context.Context) (io.ReadCloser, error) {
			if fail.Load() {
				return nil, errors.New("gone")
			}
			return io.NopCloser(strings.NewReader(sampleDict)), nil
		},
	})

	_, err := s.Load(context.Background())
	require.NoError(t, err)
	before := s.Table()

	fail.Store(true)
	_, err = s.Load(context.Background())
	require.Error(t, err)

	assert.True(t, s.Ready())
	assert.Same(t, before, s.Table())
}

func TestStore_Load_RebuildsFromScratch(t *testing.T) {
	t.Parallel()

	var second atomic.Bool
	s := newTestStore(&mockSource{
		OpenFunc: func(_ context.Context) (io.ReadCloser, error) {
			if second.Load() {
				return io.NopCloser(strings.NewReader("好 好 [hao4] /to be fond of/\n")), nil
			}
			return io.NopCloser(strings.NewReader(sampleDict)), nil
		},
	})

	_, err := s.Load(context.Background())
	require.NoError(t, err)
	first := s.Table()

	second.Store(true)
	_, err = s.Load(context.Background())
	require.NoError(t, err)

	_, err = s.Lookup("你")
	assert.True(t, errors.Is(err, domain.ErrNotFound), "entries of the previous load must not survive")

	hao, err := s.Lookup("好")
	require.NoError(t, err)
	assert.Equal(t, "hào", hao.Pinyin)

	// The old snapshot is untouched for readers still holding it.
	old, ok := first.Lookup("你")
	assert.True(t, ok)
	assert.Equal(t, "nǐ", old.Pinyin)
}

func TestStore_Load_ConcurrentCallsShareOneLoad(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	src := &mockSource{
		OpenFunc: func(_ context.Context) (io.ReadCloser, error) {
			<-release
			return io.NopCloser(strings.NewReader(sampleDict)), nil
		},
	}
	s := newTestStore(src)

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	infos := make([]LoadInfo, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			infos[i], errs[i] = s.Load(context.Background())
		}()
	}

	require.Eventually(t, func() bool { return src.opens.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), src.opens.Load())
	for i := range callers {
		require.NoError(t, errs[i])
		assert.Equal(t, infos[0], infos[i])
	}
}

// ---------------------------------------------------------------------------
// Run
// ---------------------------------------------------------------------------

func TestStore_Run_RetriesUntilLoaded(t *testing.T) {
	t.Parallel()

	src := &mockSource{}
	src.OpenFunc = func(_ context.Context) (io.ReadCloser, error) {
		if src.opens.Load() < 3 {
			return nil, errors.New("not yet")
		}
		return io.NopCloser(strings.NewReader(sampleDict)), nil
	}
	s := newTestStore(src)

	err := s.Run(context.Background(), time.Millisecond, 0)
	require.NoError(t, err)

	assert.True(t, s.Ready())
	assert.Equal(t, int32(3), src.opens.Load())
}

func TestStore_Run_StopsOnCancel(t *testing.T) {
	t.Parallel()

	s := newTestStore(&mockSource{
		OpenFunc: func(_ context.Context) (io.ReadCloser, error) { return nil, errors.New("down") },
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, 5*time.Millisecond, 0) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.False(t, s.Ready())
}

func TestStore_Run_Reloads(t *testing.T) {
	t.Parallel()

	src := textSource(sampleDict)
	s := newTestStore(src)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, time.Millisecond, 2*time.Millisecond) }()

	require.Eventually(t, func() bool { return src.opens.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	assert.True(t, s.Ready())
}

func TestStore_Run_InvalidRetryInterval(t *testing.T) {
	t.Parallel()

	s := newTestStore(textSource(sampleDict))
	assert.Error(t, s.Run(context.Background(), 0, 0))
}
