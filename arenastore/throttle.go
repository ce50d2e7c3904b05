package arenastore

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttled wraps a BlobStore with a byte-rate limit on writes, so snapshot
// uploads cannot saturate a link shared with latency-sensitive traffic.
type Throttled struct {
	inner   BlobStore
	limiter *rate.Limiter
}

// NewThrottled wraps inner with a write limit of bytesPerSec, allowing
// bursts up to burst bytes.
func NewThrottled(inner BlobStore, bytesPerSec float64, burst int) *Throttled {
	return &Throttled{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(bytesPerSec), burst),
	}
}

// Put implements BlobStore. It blocks until the limiter grants len(data)
// bytes or ctx is done. Blobs larger than the burst are granted in
// burst-sized installments.
func (t *Throttled) Put(ctx context.Context, name string, data []byte) error {
	remaining := len(data)
	for remaining > 0 {
		n := remaining
		if n > t.limiter.Burst() {
			n = t.limiter.Burst()
		}
		if err := t.limiter.WaitN(ctx, n); err != nil {
			return err
		}
		remaining -= n
	}
	return t.inner.Put(ctx, name, data)
}

// Open implements BlobStore.
func (t *Throttled) Open(ctx context.Context, name string) (Blob, error) {
	return t.inner.Open(ctx, name)
}

// Delete implements BlobStore.
func (t *Throttled) Delete(ctx context.Context, name string) error {
	return t.inner.Delete(ctx, name)
}

// List implements BlobStore.
func (t *Throttled) List(ctx context.Context, prefix string) ([]string, error) {
	return t.inner.List(ctx, prefix)
}
