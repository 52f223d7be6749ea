package app

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	types "github.com/quantumatlas/atlas-backend/internal/domain"
	"github.com/quantumatlas/atlas-backend/internal/observability"
	"github.com/quantumatlas/atlas-backend/internal/platform/rediscache"
)

type fakeControl struct {
	calls int
	err   error
}

func (f *fakeControl) Execute(context.Context, *types.Implementation, map[string]string) (map[string]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return map[string]string{"depth": "7"}, nil
}

func TestInstrumentAnalyzerPassThrough(t *testing.T) {
	inner := &fakeControl{}
	ctl := instrumentAnalyzer(inner, observability.NewMetrics())
	out, err := ctl.Execute(context.Background(), &types.Implementation{ID: uuid.New()}, nil)
	if err != nil || out["depth"] != "7" || inner.calls != 1 {
		t.Fatalf("unexpected result out=%v err=%v calls=%d", out, err, inner.calls)
	}

	want := errors.New("analyzer down")
	inner.err = want
	if _, err := ctl.Execute(context.Background(), &types.Implementation{ID: uuid.New()}, nil); !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestInstrumentWithoutMetricsReturnsInner(t *testing.T) {
	inner := &fakeControl{}
	if got := instrumentAnalyzer(inner, nil); got != inner {
		t.Fatalf("expected the inner control back")
	}
	cache := rediscache.NewNopImageCache()
	if got := instrumentImageCache(cache, nil); got != cache {
		t.Fatalf("expected the inner cache back")
	}
}

func TestInstrumentImageCacheCountsMisses(t *testing.T) {
	cache := instrumentImageCache(rediscache.NewNopImageCache(), observability.NewMetrics())
	if _, ok, err := cache.Get(context.Background(), uuid.New()); ok || err != nil {
		t.Fatalf("nop cache should miss cleanly, ok=%v err=%v", ok, err)
	}
}
