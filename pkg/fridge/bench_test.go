package fridge_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/kvfridge/fridge/pkg/fridge"
)

func BenchmarkPutGet(b *testing.B) {
	s := fridge.NewStore(fridge.Options{Buckets: fridge.DefaultBuckets})
	if err := s.Init(0); err != nil {
		b.Fatalf("Init: %v", err)
	}
	defer func() { _, _ = s.Destroy(0) }()

	const val = "benchmark-value"

	var buf bytes.Buffer

	b.ResetTimer()

	for i := range b.N {
		key := uint32(i)

		if err := s.Put(key, strings.NewReader(val), len(val), fridge.Nonblock); err != nil {
			b.Fatalf("Put: %v", err)
		}

		buf.Reset()

		if err := s.Get(context.Background(), key, &buf, len(val), fridge.Nonblock); err != nil {
			b.Fatalf("Get: %v", err)
		}
	}
}

// BenchmarkHotPotato times a fixed-worker-count relay race over a single
// key, matching Test_HotPotato_OneWinnerPerPut's shape but as a
// throughput benchmark rather than a correctness check.
func BenchmarkHotPotato(b *testing.B) {
	const workers = 8

	for i := 0; i < b.N; i++ {
		s := fridge.NewStore(fridge.Options{Buckets: fridge.DefaultBuckets})
		if err := s.Init(0); err != nil {
			b.Fatalf("Init: %v", err)
		}

		const val = "hot potato"
		if err := s.Put(0xbae, strings.NewReader(val), len(val), fridge.Nonblock); err != nil {
			b.Fatalf("Put: %v", err)
		}

		done := make(chan struct{}, workers)

		for range workers {
			go func() {
				defer func() { done <- struct{}{} }()

				for {
					var buf bytes.Buffer

					err := s.Get(context.Background(), 0xbae, &buf, 64, fridge.Nonblock)
					if err == nil {
						_ = s.Put(0xbae, strings.NewReader(buf.String()), buf.Len(), fridge.Nonblock)
						return
					}
				}
			}()
		}

		for range workers {
			<-done
		}

		_, _ = s.Destroy(0)
	}
}
