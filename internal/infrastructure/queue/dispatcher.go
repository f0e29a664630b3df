package queue

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Task is a unit of background work. Key selects the worker shard; tasks
// sharing a key run in submission order.
type Task struct {
	Key string
	Run func(ctx context.Context) error
}

// Dispatcher routes tasks to a fixed set of workers using consistent hashing
// on the task key. Audit entries for one user always land on the same worker,
// so their file ordering matches submission order.
type Dispatcher struct {
	workers []chan Task
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan Task, numWorkers),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan Task, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled or
// their channel is closed.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Submit sends a task to the worker responsible for its key. The call is
// non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Submit(task Task) {
	d.workers[d.shardIndex(task.Key)] <- task
}

// Close stops accepting tasks and waits for queued work to drain.
func (d *Dispatcher) Close() {
	for _, ch := range d.workers {
		close(ch)
	}
	d.wg.Wait()
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan Task) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-ch:
			if !ok {
				return
			}
			if err := task.Run(ctx); err != nil {
				d.log.Error().Err(err).
					Str("key", task.Key).
					Int("worker_id", id).
					Msg("background task failed")
			}
		}
	}
}
