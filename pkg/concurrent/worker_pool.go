package concurrent

import (
	"sync"
)

type JobFunc[T any, G any] func(job T) G

type indexedJob[T any] struct {
	seq int
	job T
}

type indexedResult[G any] struct {
	seq    int
	result G
}

// WorkerPool runs jobFunc on numWorkers goroutines. Every job keeps its submission sequence number so results
// can be collected in submission order regardless of which worker finished first.
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan indexedJob[T]
	results    chan indexedResult[G]
	wg         sync.WaitGroup
	submitted  int
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan indexedJob[T], jobQueueSize),
		results:    make(chan indexedResult[G], jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- indexedResult[G]{seq: job.seq, result: jobFunc(job.job)}
	}
}

func (wp *WorkerPool[T, G]) Start(jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(jobFunc)
	}
}

func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- indexedJob[T]{seq: wp.submitted, job: job}
	wp.submitted++
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

// CollectOrdered drains the results (after Wait) and returns them in submission order.
func (wp *WorkerPool[T, G]) CollectOrdered() []G {
	ordered := make([]G, wp.submitted)
	for res := range wp.results {
		ordered[res.seq] = res.result
	}
	return ordered
}

// Map runs jobFunc over jobs with numWorkers goroutines and returns the results in the order of jobs.
func Map[T any, G any](numWorkers int, jobs []T, jobFunc JobFunc[T, G]) []G {
	wp := NewWorkerPool[T, G](numWorkers, len(jobs))
	for _, job := range jobs {
		wp.AddJob(job)
	}
	wp.Close()
	wp.Start(jobFunc)
	wp.Wait()
	return wp.CollectOrdered()
}
