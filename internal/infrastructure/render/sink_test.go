package render

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	uploads map[string][]byte
	fail    error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: make(map[string][]byte)}
}

func (s *fakeStorage) Upload(_ context.Context, key string, data []byte, _ string) error {
	if s.fail != nil {
		return s.fail
	}
	s.uploads[key] = data
	return nil
}

func (s *fakeStorage) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func TestNewDownload(t *testing.T) {
	d := NewDownload(KindQuotation, "Q-100", []byte("%PDF"))

	assert.Equal(t, "quotation-Q-100.pdf", d.Filename)
	assert.Equal(t, "application/pdf", d.ContentType)
}

func TestUploadSink(t *testing.T) {
	t.Run("should upload under timestamped key and return public URL", func(t *testing.T) {
		storage := newFakeStorage()
		sink := NewUploadSink(storage, nil)
		sink.now = func() time.Time { return time.UnixMilli(1700000000000) }

		url, err := sink.Upload(context.Background(), KindInvoice, "INV-100", []byte("%PDF"))
		require.NoError(t, err)

		key := "pdfs/invoice-INV-100-1700000000000.pdf"
		assert.Equal(t, "https://cdn.example.com/"+key, url)
		assert.Equal(t, []byte("%PDF"), storage.uploads[key])
	})

	t.Run("upload failure propagates with no URL", func(t *testing.T) {
		storage := newFakeStorage()
		storage.fail = errors.New("connection reset")
		sink := NewUploadSink(storage, nil)

		url, err := sink.Upload(context.Background(), KindQuotation, "Q-100", []byte("%PDF"))
		require.Error(t, err)
		assert.Empty(t, url)

		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeStorageFailed, renderErr.Code)
	})

	t.Run("rejects empty payload", func(t *testing.T) {
		sink := NewUploadSink(newFakeStorage(), nil)
		_, err := sink.Upload(context.Background(), KindQuotation, "Q-100", nil)
		assert.Error(t, err)
	})

	t.Run("key embeds document kind and reference", func(t *testing.T) {
		storage := newFakeStorage()
		sink := NewUploadSink(storage, nil)

		_, err := sink.Upload(context.Background(), KindQuotation, "Q-777", []byte("x"))
		require.NoError(t, err)

		for key := range storage.uploads {
			assert.True(t, strings.HasPrefix(key, "pdfs/quotation-Q-777-"))
			assert.True(t, strings.HasSuffix(key, ".pdf"))
		}
	})
}
