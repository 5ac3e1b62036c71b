package usage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinai9661/AIPro/internal/domain/generation"
)

// blockingRepo holds every Create until release is closed.
type blockingRepo struct {
	release chan struct{}

	mu      sync.Mutex
	records []Record
}

func (b *blockingRepo) Create(_ context.Context, record *Record) error {
	<-b.release
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = append(b.records, *record)
	return nil
}

func (b *blockingRepo) SummarizeByModel(context.Context, time.Time) ([]ModelSummary, error) {
	return nil, nil
}

func (b *blockingRepo) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.records)
}

func generated(id string) *generation.GenerationResponse {
	return &generation.GenerationResponse{
		Success:  true,
		Results:  make([]generation.GenerationResult, 1),
		Metadata: generation.Metadata{GenerationID: id},
	}
}

func TestAsyncRecorder_DoesNotWaitOnRepository(t *testing.T) {
	repo := &blockingRepo{release: make(chan struct{})}
	recorder := NewAsyncRecorder(NewService(repo, zerolog.Nop()), 4, zerolog.Nop())

	returned := make(chan struct{})
	go func() {
		recorder.RecordGeneration(context.Background(), generation.GenerationRequest{Model: generation.ModelFlux}, generated("01A"), time.Second)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("RecordGeneration blocked on a slow repository")
	}
	assert.Zero(t, repo.count())

	close(repo.release)
	recorder.Close()
	require.Equal(t, 1, repo.count())
	assert.Equal(t, "01A", repo.records[0].GenerationID)
	assert.Equal(t, "flux", repo.records[0].Model)
}

func TestAsyncRecorder_DropsWhenQueueFull(t *testing.T) {
	repo := &blockingRepo{release: make(chan struct{})}
	recorder := NewAsyncRecorder(NewService(repo, zerolog.Nop()), 1, zerolog.Nop())

	ctx := context.Background()
	// The worker takes the first record and blocks; the second fills the queue.
	recorder.RecordGeneration(ctx, generation.GenerationRequest{}, generated("01A"), 0)
	require.Eventually(t, func() bool { return len(recorder.queue) == 0 }, time.Second, 5*time.Millisecond)
	recorder.RecordGeneration(ctx, generation.GenerationRequest{}, generated("01B"), 0)
	recorder.RecordGeneration(ctx, generation.GenerationRequest{}, generated("01C"), 0)

	close(repo.release)
	recorder.Close()
	assert.Equal(t, 2, repo.count())
}

func TestAsyncRecorder_CloseDrainsAndRejectsLateRecords(t *testing.T) {
	repo := &fakeRepo{}
	recorder := NewAsyncRecorder(NewService(repo, zerolog.Nop()), 0, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	recorder.RecordGeneration(ctx, generation.GenerationRequest{}, generated("01A"), 0)
	recorder.RecordGeneration(ctx, generation.GenerationRequest{}, nil, 0)
	cancel()

	recorder.Close()
	require.Len(t, repo.records, 1)
	assert.Equal(t, "01A", repo.records[0].GenerationID)

	assert.NotPanics(t, func() {
		recorder.RecordGeneration(context.Background(), generation.GenerationRequest{}, generated("01B"), 0)
		recorder.Close()
	})
	assert.Len(t, repo.records, 1)
}
