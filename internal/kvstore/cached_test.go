package kvstore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/billfold/billfold/internal/cache"
	"github.com/billfold/billfold/internal/config"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/sentry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, baseURL string) Store {
	t.Helper()

	cfg := config.GetDefaultConfig()
	cfg.Store.BaseURL = baseURL

	log, err := logger.NewLogger(cfg)
	require.NoError(t, err)

	c := cache.NewInMemoryCache(cfg, log)
	return NewStore(cfg, log, sentry.NewSentryService(cfg, log), c)
}

func TestCachedStoreServesRepeatLoadsFromCache(t *testing.T) {
	var loads atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		loads.Add(1)
		io.WriteString(w, `{"items":[{"key":"a"}],"paging":{"last":""}}`)
	}))
	defer server.Close()

	store := newTestStore(t, server.URL)
	ctx := context.Background()

	first, err := store.LoadAll(ctx, CollectionInvoices)
	require.NoError(t, err)
	second, err := store.LoadAll(ctx, CollectionInvoices)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), loads.Load())
}

func TestCachedStoreInvalidatesOnWrite(t *testing.T) {
	var loads atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			loads.Add(1)
			io.WriteString(w, `{"items":[{"key":"a"}],"paging":{"last":""}}`)
			return
		}
		io.WriteString(w, `{}`)
	}))
	defer server.Close()

	store := newTestStore(t, server.URL)
	ctx := context.Background()

	_, err := store.LoadAll(ctx, CollectionInvoices)
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, CollectionInvoices, Record{"key": "b"}))

	_, err = store.LoadAll(ctx, CollectionInvoices)
	require.NoError(t, err)
	assert.Equal(t, int32(2), loads.Load(), "write must drop the cached snapshot")
}

func TestCachedStoreScopesInvalidationToCollection(t *testing.T) {
	var loads atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			loads.Add(1)
			io.WriteString(w, `{"items":[],"paging":{"last":""}}`)
			return
		}
		io.WriteString(w, `{}`)
	}))
	defer server.Close()

	store := newTestStore(t, server.URL)
	ctx := context.Background()

	_, err := store.LoadAll(ctx, CollectionInvoices)
	require.NoError(t, err)

	// writing customers must not evict the invoices snapshot
	require.NoError(t, store.Put(ctx, CollectionCustomers, Record{"key": "c"}))

	_, err = store.LoadAll(ctx, CollectionInvoices)
	require.NoError(t, err)
	assert.Equal(t, int32(1), loads.Load())
}
