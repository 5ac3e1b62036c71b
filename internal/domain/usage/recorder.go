package usage

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kinai9661/AIPro/internal/domain/generation"
)

// DefaultQueueSize bounds the number of usage records waiting to be written.
const DefaultQueueSize = 256

// AsyncRecorder moves usage writes off the generation path. Records are queued
// on a bounded channel and written by a single worker. A full queue drops the
// record and logs it; Generate never waits on the repository.
type AsyncRecorder struct {
	svc   *Service
	queue chan pendingRecord
	done  chan struct{}
	log   zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

type pendingRecord struct {
	ctx     context.Context
	req     generation.GenerationRequest
	resp    *generation.GenerationResponse
	elapsed time.Duration
}

// NewAsyncRecorder starts the writer goroutine. Call Close to drain it.
func NewAsyncRecorder(svc *Service, size int, log zerolog.Logger) *AsyncRecorder {
	if size <= 0 {
		size = DefaultQueueSize
	}
	r := &AsyncRecorder{
		svc:   svc,
		queue: make(chan pendingRecord, size),
		done:  make(chan struct{}),
		log:   log.With().Str("component", "usage-recorder").Logger(),
	}
	go r.run()
	return r
}

func (r *AsyncRecorder) run() {
	defer close(r.done)
	for rec := range r.queue {
		r.svc.RecordGeneration(rec.ctx, rec.req, rec.resp, rec.elapsed)
	}
}

// RecordGeneration enqueues resp for the writer.
func (r *AsyncRecorder) RecordGeneration(ctx context.Context, req generation.GenerationRequest, resp *generation.GenerationResponse, elapsed time.Duration) {
	if resp == nil {
		return
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		r.log.Warn().Str("generation_id", resp.Metadata.GenerationID).Msg("usage recorder closed, dropping record")
		return
	}

	select {
	case r.queue <- pendingRecord{ctx: context.WithoutCancel(ctx), req: req, resp: resp, elapsed: elapsed}:
	default:
		r.log.Warn().Str("generation_id", resp.Metadata.GenerationID).Msg("usage queue full, dropping record")
	}
}

// Close stops accepting records and waits until the queued ones are written.
func (r *AsyncRecorder) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()
	<-r.done
}
