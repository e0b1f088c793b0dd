/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/mikeb26/boylstonchessclub-roundrobin/s3cache"
)

// NewCachedHttpClient returns an http.Client that caches responses via
// httpcache. The cache lives in the S3 bucket named by $RRTD_CACHE_BUCKET
// when it is set and reachable, otherwise in memory. Origin cache headers are
// rewritten so every response is kept for maxAge.
func NewCachedHttpClient(ctx context.Context, maxAge time.Duration) *http.Client {
	return &http.Client{Transport: newCachedTransport(newCache(ctx),
		http.DefaultTransport, maxAge)}
}

func newCache(ctx context.Context) httpcache.Cache {
	bucket := os.Getenv(CacheBucketEnv)
	if bucket == "" {
		return httpcache.NewMemoryCache()
	}

	cache := s3cache.New(ctx, bucket, true, true)
	if err := cache.Init(); err != nil {
		log.Printf("httpcache: warning failed to init S3 cache: %v; falling back to in-memory cache",
			err)
		return httpcache.NewMemoryCache()
	}

	return cache
}

func newCachedTransport(cache httpcache.Cache, rt http.RoundTripper,
	maxAge time.Duration) *httpcache.Transport {

	hc := httpcache.NewTransport(cache)
	// we have to inject our own header overrides here in order to override
	// server responses that might indicate caching shouldn't be done
	hc.Transport = &HeaderOverrideTransport{
		wrappedRT: rt,
		Response: func(resp *http.Response) error {
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Del("Cache-Control")
			resp.Header.Set("Cache-Control",
				fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second)))
			return nil
		},
	}

	return hc
}

// HeaderOverrideTransport lets callers rewrite requests before they are sent
// and responses before they are handed back.
type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	// Underlying RoundTripper (e.g. default transport or another decorator)
	wrappedRT http.RoundTripper
}

// RoundTrip applies Request and Response hooks around the underlying transport.
func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so we don't stomp on the caller's original
	req2 := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(req2)
	}

	rt := t.wrappedRT
	if rt == nil {
		rt = http.DefaultTransport
	}
	resp, err := rt.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.Response != nil {
		if err := t.Response(resp); err != nil {
			resp.Body.Close()
			return nil, err
		}
	}
	return resp, nil
}
