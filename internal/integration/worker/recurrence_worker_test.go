package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/itissulav/Kharcha/internal/domain/entity"
)

type stubCatchUp struct {
	calls atomic.Int32
	err   error
}

func (s *stubCatchUp) Execute(context.Context) (*entity.CatchUpSummary, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return &entity.CatchUpSummary{}, nil
}

type stubBackfills struct {
	calls     atomic.Int32
	batchSize int
}

func (s *stubBackfills) Execute(_ context.Context, batchSize int) (*entity.BackfillSummary, error) {
	s.calls.Add(1)
	s.batchSize = batchSize
	return &entity.BackfillSummary{}, nil
}

func TestRecurrenceWorker_ProcessNow(t *testing.T) {
	tests := []struct {
		name          string
		catchUpErr    error
		wantBackfills int32
	}{
		{name: "runs catch-up then backfills", wantBackfills: 1},
		{name: "catch-up failure still retries backfills", catchUpErr: errors.New("boom"), wantBackfills: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catchUp := &stubCatchUp{err: tt.catchUpErr}
			backfills := &stubBackfills{}
			w := NewRecurrenceWorker(catchUp, backfills, RecurrenceWorkerConfig{BatchSize: 7})

			w.ProcessNow(context.Background())

			assert.Equal(t, int32(1), catchUp.calls.Load())
			assert.Equal(t, tt.wantBackfills, backfills.calls.Load())
			assert.Equal(t, 7, backfills.batchSize)
		})
	}
}

func TestRecurrenceWorker_StartStopsOnCancel(t *testing.T) {
	catchUp := &stubCatchUp{}
	backfills := &stubBackfills{}
	w := NewRecurrenceWorker(catchUp, backfills, RecurrenceWorkerConfig{Interval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return catchUp.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

func TestNewRecurrenceWorker_Defaults(t *testing.T) {
	w := NewRecurrenceWorker(&stubCatchUp{}, &stubBackfills{}, RecurrenceWorkerConfig{})

	assert.Equal(t, time.Hour, w.interval)
	assert.Equal(t, 20, w.batchSize)
}
