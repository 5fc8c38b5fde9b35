package queue

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/bullyguard/bullyguard/internal/api/metrics"
	"github.com/bullyguard/bullyguard/internal/core/ports"
)

const defaultWorkers = 2

var ErrPoolStopped = errors.New("render pool stopped")

type renderJob struct {
	ctx  context.Context
	w    io.Writer
	text string
	done chan error
}

// RenderPool bounds how many word clouds are drawn at once. It implements
// ports.WordCloudRenderer; callers block until a worker has finished their
// image.
type RenderPool struct {
	jobs    chan renderJob
	stopped chan struct{}
	workers int
	next    ports.WordCloudRenderer
	log     zerolog.Logger
}

// NewRenderPool creates a pool of numWorkers renderers in front of next.
// If numWorkers <= 0, defaultWorkers is used.
func NewRenderPool(numWorkers int, next ports.WordCloudRenderer, log zerolog.Logger) *RenderPool {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &RenderPool{
		// unbuffered: a job is accepted only by a worker that will finish it
		jobs:    make(chan renderJob),
		stopped: make(chan struct{}),
		workers: numWorkers,
		next:    next,
		log:     log,
	}
}

// Start launches the workers. They exit once ctx is cancelled and the job in
// hand, if any, is done; later Render calls return ErrPoolStopped.
func (p *RenderPool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		go p.runWorker(ctx, i)
	}
	go func() {
		<-ctx.Done()
		close(p.stopped)
	}()
}

// Render waits for a free worker and then for the image. A caller whose ctx
// ends while queued gets ctx.Err() without the job running. Once a worker has
// taken the job, Render waits for it so w is never written after return.
func (p *RenderPool) Render(ctx context.Context, w io.Writer, text string) error {
	job := renderJob{ctx: ctx, w: w, text: text, done: make(chan error, 1)}

	metrics.WordCloudQueueWaiting.Inc()
	select {
	case p.jobs <- job:
		metrics.WordCloudQueueWaiting.Dec()
	case <-ctx.Done():
		metrics.WordCloudQueueWaiting.Dec()
		return ctx.Err()
	case <-p.stopped:
		metrics.WordCloudQueueWaiting.Dec()
		return ErrPoolStopped
	}
	return <-job.done
}

func (p *RenderPool) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-p.jobs:
			err := p.next.Render(job.ctx, job.w, job.text)
			if err != nil {
				p.log.Error().Err(err).
					Str("worker_id", strconv.Itoa(id)).
					Msg("word cloud render failed")
			}
			job.done <- err
		}
	}
}
