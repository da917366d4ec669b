package annotation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/heartmarshall/hanzi-reader/internal/cedict"
	"github.com/heartmarshall/hanzi-reader/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockStore struct {
	ReadyFunc func() bool
	TableFunc func() *cedict.Table
}

func (m *mockStore) Ready() bool          { return m.ReadyFunc() }
func (m *mockStore) Table() *cedict.Table { return m.TableFunc() }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestService(t *testing.T, store *mockStore, maxRunes int) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, store, maxRunes)
}

func loadedStore(t *testing.T, dict string) *mockStore {
	t.Helper()
	result, err := cedict.Parse(strings.NewReader(dict))
	require.NoError(t, err)
	return &mockStore{
		ReadyFunc: func() bool { return true },
		TableFunc: func() *cedict.Table { return result.Table },
	}
}

const testDictionary = `# test
你 你 [ni3] /you/
好 好 [hao3] /good/well/
`

// ---------------------------------------------------------------------------
// Annotate tests
// ---------------------------------------------------------------------------

func TestService_Annotate_Success(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, loadedStore(t, testDictionary), 100)

	res, err := svc.Annotate(context.Background(), "你好!")
	require.NoError(t, err)
	require.Len(t, res.Chars, 3)

	assert.Equal(t, "nǐ", res.Chars[0].Pinyin)
	assert.Equal(t, "you", res.Chars[0].Meaning)
	assert.Equal(t, "hǎo", res.Chars[1].Pinyin)
	assert.Equal(t, "good", res.Chars[1].Meaning)
	assert.False(t, res.Chars[2].IsChinese)
	assert.Equal(t, "0-2", res.Chars[2].ID)

	assert.Equal(t, Summary{Characters: 3, Lines: 1, Chinese: 2, Annotated: 2}, res.Summary)
	assert.Equal(t, "你好!", res.Text)
}

func TestService_Annotate_NotReady(t *testing.T) {
	t.Parallel()

	tableCalled := false
	store := &mockStore{
		ReadyFunc: func() bool { return false },
		TableFunc: func() *cedict.Table {
			tableCalled = true
			return nil
		},
	}
	svc := newTestService(t, store, 100)

	_, err := svc.Annotate(context.Background(), "你好")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDictionaryNotReady))
	assert.False(t, tableCalled, "table must not be consulted before the dictionary is ready")
}

func TestService_Annotate_EmptyText(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, loadedStore(t, testDictionary), 100)

	for _, text := range []string{"", "   ", "\n\n"} {
		_, err := svc.Annotate(context.Background(), text)
		require.Error(t, err, "text %q", text)

		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "text", verr.Errors[0].Field)
		assert.True(t, errors.Is(err, domain.ErrValidation))
	}
}

func TestService_Annotate_TooLong(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, loadedStore(t, testDictionary), 3)

	_, err := svc.Annotate(context.Background(), "你好你好")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "at most 3")

	// The limit counts code points, not bytes.
	_, err = svc.Annotate(context.Background(), "你好你")
	assert.NoError(t, err)
}

func TestService_Annotate_NoLimit(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, loadedStore(t, testDictionary), 0)

	res, err := svc.Annotate(context.Background(), strings.Repeat("你", 10000))
	require.NoError(t, err)
	assert.Len(t, res.Chars, 10000)
}

func TestService_Annotate_EmptyDictionaryIsNotAnError(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, loadedStore(t, "# nothing here\n"), 100)

	res, err := svc.Annotate(context.Background(), "你")
	require.NoError(t, err)
	require.Len(t, res.Chars, 1)
	assert.Equal(t, domain.MeaningNotAvailable, res.Chars[0].Meaning)
	assert.Empty(t, res.Chars[0].Pinyin)
	assert.Equal(t, 1, res.Summary.Missing)
}
