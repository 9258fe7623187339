package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func countingFetch(calls *int32, value any) FetchFunc {
	return func(ctx context.Context) (any, error) {
		atomic.AddInt32(calls, 1)
		return value, nil
	}
}

func TestGetCachesUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	c := New()
	key := ListKey("news", "page=1&limit=10&search=")

	var calls int32
	for i := 0; i < 3; i++ {
		v, err := c.Get(ctx, key, countingFetch(&calls, "page-1"))
		if err != nil {
			t.Fatalf("Get #%d: %v", i+1, err)
		}
		if v != "page-1" {
			t.Fatalf("Get #%d = %v, want page-1", i+1, v)
		}
	}
	if calls != 1 {
		t.Fatalf("fetch calls = %d, want 1", calls)
	}

	c.Invalidate("news", OpList)

	if _, err := c.Get(ctx, key, countingFetch(&calls, "page-1")); err != nil {
		t.Fatalf("Get after invalidate: %v", err)
	}
	if calls != 2 {
		t.Fatalf("fetch calls after invalidate = %d, want 2", calls)
	}
}

func TestInvalidateCoversEveryParamVariant(t *testing.T) {
	ctx := context.Background()
	c := New()

	var calls int32
	keys := []Key{
		ListKey("news", "page=1&limit=10&search="),
		ListKey("news", "page=2&limit=10&search="),
		ListKey("news", "page=1&limit=10&search=budget"),
	}
	for _, k := range keys {
		if _, err := c.Get(ctx, k, countingFetch(&calls, "v")); err != nil {
			t.Fatalf("Get(%v): %v", k, err)
		}
	}
	if calls != 3 {
		t.Fatalf("priming fetches = %d, want 3", calls)
	}

	c.Invalidate("news", OpList)

	for _, k := range keys {
		if _, err := c.Get(ctx, k, countingFetch(&calls, "v")); err != nil {
			t.Fatalf("Get(%v) after invalidate: %v", k, err)
		}
	}
	if calls != 6 {
		t.Fatalf("fetches after invalidate = %d, want 6 (all pages/searches refetched)", calls)
	}
}

func TestInvalidateScopesByResourceAndOp(t *testing.T) {
	ctx := context.Background()
	c := New()

	var newsList, newsItem, docsList int32
	listKey := ListKey("news", "page=1&limit=10&search=")
	itemKey := ItemKey("news", 42)
	docsKey := ListKey("documents", "page=1&limit=10&search=")

	mustGet := func(k Key, calls *int32) {
		t.Helper()
		if _, err := c.Get(ctx, k, countingFetch(calls, "v")); err != nil {
			t.Fatalf("Get(%v): %v", k, err)
		}
	}

	mustGet(listKey, &newsList)
	mustGet(itemKey, &newsItem)
	mustGet(docsKey, &docsList)

	c.Invalidate("news", OpList)

	mustGet(listKey, &newsList)
	mustGet(itemKey, &newsItem)
	mustGet(docsKey, &docsList)

	if newsList != 2 {
		t.Errorf("news list fetches = %d, want 2", newsList)
	}
	if newsItem != 1 {
		t.Errorf("news item fetches = %d, want 1 (item scope untouched)", newsItem)
	}
	if docsList != 1 {
		t.Errorf("documents list fetches = %d, want 1 (other resource untouched)", docsList)
	}
}

func TestInvalidateItemTouchesOnlyThatID(t *testing.T) {
	ctx := context.Background()
	c := New()

	var calls42, calls7 int32
	mustGet := func(id int64, calls *int32) {
		t.Helper()
		if _, err := c.Get(ctx, ItemKey("news", id), countingFetch(calls, id)); err != nil {
			t.Fatalf("Get(item %d): %v", id, err)
		}
	}

	mustGet(42, &calls42)
	mustGet(7, &calls7)

	c.InvalidateItem("news", 42)

	mustGet(42, &calls42)
	mustGet(7, &calls7)

	if calls42 != 2 {
		t.Errorf("item 42 fetches = %d, want 2", calls42)
	}
	if calls7 != 1 {
		t.Errorf("item 7 fetches = %d, want 1", calls7)
	}
}

func TestConcurrentReadersShareOneFetch(t *testing.T) {
	ctx := context.Background()
	c := New()
	key := ItemKey("news", 42)

	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})

	fetch := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		return "item-42", nil
	}

	var wg sync.WaitGroup
	results := make([]any, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Get(ctx, key, fetch)
			if err != nil {
				t.Errorf("Get: %v", err)
				return
			}
			results[i] = v
		}(i)
	}

	<-started
	// Give the second reader time to join the in-flight fetch.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if calls != 1 {
		t.Fatalf("fetch calls = %d, want 1 (deduplicated)", calls)
	}
	for i, v := range results {
		if v != "item-42" {
			t.Errorf("reader %d got %v, want item-42", i, v)
		}
	}
}

func TestFetchErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	c := New()
	key := ListKey("news", "page=1&limit=10&search=")

	boom := errors.New("upstream down")
	if _, err := c.Get(ctx, key, func(ctx context.Context) (any, error) {
		return nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("Get = %v, want %v", err, boom)
	}

	var calls int32
	v, err := c.Get(ctx, key, countingFetch(&calls, "recovered"))
	if err != nil {
		t.Fatalf("Get after error: %v", err)
	}
	if v != "recovered" || calls != 1 {
		t.Fatalf("Get after error = %v (calls %d), want recovered with 1 call", v, calls)
	}
}
