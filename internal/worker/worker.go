package worker

import (
	"context"
	"sync"

	"github.com/ecoplate/go-ecoplate/internal/models"
)

// ProcessFunc handles one listing pulled off the pool.
type ProcessFunc func(ctx context.Context, l *models.Listing) error

// Pool fans imported listings out to a fixed number of workers over a
// bounded channel. Submit blocks once the buffer is full.
type Pool struct {
	numWorkers int
	jobs       chan *models.Listing
	processor  ProcessFunc
	wg         sync.WaitGroup
}

func NewPool(numWorkers int, bufferSize int, processor ProcessFunc) *Pool {
	return &Pool{
		numWorkers: numWorkers,
		jobs:       make(chan *models.Listing, bufferSize),
		processor:  processor,
	}
}

func (p *Pool) Start(ctx context.Context) {
	for i := 1; i <= p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case l, ok := <-p.jobs:
			if !ok {
				return
			}
			p.processor(ctx, l)
		}
	}
}

func (p *Pool) Submit(l *models.Listing) {
	p.jobs <- l
}

func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
