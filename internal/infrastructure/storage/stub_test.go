package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubObjectStorage(t *testing.T) {
	t.Run("should store and retrieve objects", func(t *testing.T) {
		stub := NewStubObjectStorage("")

		err := stub.Upload(context.Background(), "pdfs/test.pdf", []byte("%PDF"), "application/pdf")
		require.NoError(t, err)

		exists, err := stub.Exists(context.Background(), "pdfs/test.pdf")
		require.NoError(t, err)
		assert.True(t, exists)

		data, ok := stub.Get("pdfs/test.pdf")
		require.True(t, ok)
		assert.Equal(t, []byte("%PDF"), data)
	})

	t.Run("should delete objects", func(t *testing.T) {
		stub := NewStubObjectStorage("")
		require.NoError(t, stub.Upload(context.Background(), "k", []byte("x"), ""))
		require.NoError(t, stub.Delete(context.Background(), "k"))

		exists, err := stub.Exists(context.Background(), "k")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("should inject upload failures", func(t *testing.T) {
		stub := NewStubObjectStorage("")
		stub.FailUploads = errors.New("boom")

		err := stub.Upload(context.Background(), "k", []byte("x"), "")
		assert.Error(t, err)
	})

	t.Run("public URL derives from key", func(t *testing.T) {
		stub := NewStubObjectStorage("https://cdn.example.com")
		assert.Equal(t, "https://cdn.example.com/pdfs/a.pdf", stub.PublicURL("pdfs/a.pdf"))
	})

	t.Run("copies stored bytes", func(t *testing.T) {
		stub := NewStubObjectStorage("")
		payload := []byte("abc")
		require.NoError(t, stub.Upload(context.Background(), "k", payload, ""))

		payload[0] = 'z'
		data, _ := stub.Get("k")
		assert.Equal(t, []byte("abc"), data)
	})
}
