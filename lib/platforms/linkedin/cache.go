package linkedin

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"linkedin-voyager/lib/resolve"
	"linkedin-voyager/lib/schema"
	"net/url"
	"time"

	"github.com/PuerkitoBio/purell"
	"github.com/dgraph-io/badger/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type cachedPayload struct {
	Body      []byte
	ExpiresAt int64
}

type CacheOptions struct {
	DB *badger.DB
	// Namespace separates the entries of different sessions sharing a db.
	Namespace string
	// TTL defaults to 1 hour.
	TTL time.Duration
	// BaseUrl is only used to normalize keys, it defaults to DefaultBaseUrl.
	BaseUrl string
	// Now defaults to time.Now.
	Now func() time.Time
}

// CachedFetcher keeps successful raw payloads in badger so that repeated
// lookups of the same entity skip the network. Failures are never cached,
// including bodies that embed an upstream error status, and writes always go
// through.
type CachedFetcher struct {
	inner   Fetcher
	db      *badger.DB
	ns      string
	ttl     time.Duration
	baseUrl *url.URL
	now     func() time.Time
}

func NewCachedFetcher(inner Fetcher, opts CacheOptions) (*CachedFetcher, error) {
	if opts.DB == nil {
		return nil, errors.New("linkedin: cache needs a badger db")
	}
	if opts.TTL <= 0 {
		opts.TTL = time.Hour
	}
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	return &CachedFetcher{
		inner:   inner,
		db:      opts.DB,
		ns:      opts.Namespace,
		ttl:     opts.TTL,
		baseUrl: baseUrl,
		now:     opts.Now,
	}, nil
}

func (c *CachedFetcher) key(plan resolve.RequestPlan) (string, error) {
	full, err := c.baseUrl.Parse(c.baseUrl.Path + plan.URI())
	if err != nil {
		return "", err
	}
	normalized := purell.NormalizeURL(
		full,
		purell.FlagsSafe|
			purell.FlagRemoveFragment|
			purell.FlagSortQuery,
	)
	return c.ns + ":" + normalized, nil
}

func (c *CachedFetcher) FetchRaw(ctx context.Context, plan resolve.RequestPlan) ([]byte, error) {
	if !plan.IsRead() {
		return c.inner.FetchRaw(ctx, plan)
	}
	ctx, span := tracer.Start(ctx, "cache:fetch")
	defer span.End()

	key, err := c.key(plan)
	if err != nil {
		recordError(span, err, "failed to create cache key")
		return nil, err
	}
	span.SetAttributes(attribute.String("cache_key", key))

	body, err := c.get(key)
	if err == nil {
		span.AddEvent("cache hit", trace.WithAttributes(
			attribute.Int("contentlength", len(body)),
		))
		return body, nil
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		// a broken cache entry should not stop the request
		span.RecordError(err)
	}

	body, err = c.inner.FetchRaw(ctx, plan)
	if err != nil {
		return nil, err
	}
	if status := schema.UpstreamStatus(string(plan.Endpoint), body); status != nil {
		span.AddEvent("not cached", trace.WithAttributes(
			attribute.String("reason", status.Error()),
		))
		return body, nil
	}
	err = c.set(key, body)
	if err != nil {
		span.RecordError(err)
	}
	return body, nil
}

func (c *CachedFetcher) get(key string) ([]byte, error) {
	var serialized []byte
	err := c.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(key))
		if err != nil {
			return err
		}
		serialized, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	var cached cachedPayload
	err = gob.NewDecoder(bytes.NewBuffer(serialized)).Decode(&cached)
	if err != nil {
		return nil, err
	}

	if c.now().Unix() >= cached.ExpiresAt {
		err = c.db.Update(func(tx *badger.Txn) error {
			return tx.Delete([]byte(key))
		})
		if err != nil {
			return nil, err
		}
		return nil, badger.ErrKeyNotFound
	}
	return cached.Body, nil
}

func (c *CachedFetcher) set(key string, body []byte) error {
	serialized := bytes.NewBuffer(nil)
	err := gob.NewEncoder(serialized).Encode(cachedPayload{
		Body:      body,
		ExpiresAt: c.now().Add(c.ttl).Unix(),
	})
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *badger.Txn) error {
		return tx.Set([]byte(key), serialized.Bytes())
	})
}
