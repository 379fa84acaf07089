package genetic

import (
	"math/rand/v2"
	"runtime"
	"sync"
)

// WorkerPool evaluates candidate fitness in parallel
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a new worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		numWorkers: numWorkers,
	}
}

// Workers returns the configured number of workers
func (wp *WorkerPool) Workers() int {
	return wp.numWorkers
}

// evaluationJob pairs a candidate with the stream its placeholders draw from
type evaluationJob struct {
	candidate *Candidate
	rng       *rand.Rand
}

// EvaluateBatch scores every job and returns the fitness values in input order.
// Each job owns its stream, so the result does not depend on scheduling.
func (wp *WorkerPool) EvaluateBatch(evaluator *FitnessEvaluator, batch []evaluationJob) []float64 {
	numJobs := len(batch)
	if numJobs == 0 {
		return []float64{}
	}

	scores := make([]float64, numJobs)
	if wp.numWorkers == 1 {
		for i, job := range batch {
			scores[i] = evaluator.Evaluate(job.candidate, job.rng)
		}
		return scores
	}

	// Create channels for work distribution and result collection
	jobs := make(chan jobItem, numJobs)
	results := make(chan resultItem, numJobs)

	var wg sync.WaitGroup
	numActualWorkers := wp.numWorkers
	if numJobs < numActualWorkers {
		numActualWorkers = numJobs // Don't spawn more workers than jobs
	}

	for i := 0; i < numActualWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(jobs, results, evaluator)
		}()
	}

	for idx, job := range batch {
		jobs <- jobItem{index: idx, job: job}
	}
	close(jobs)

	// Wait for all workers to finish, then close results
	wg.Wait()
	close(results)

	for result := range results {
		scores[result.index] = result.fitness
	}

	return scores
}

// jobItem represents a single evaluation job
type jobItem struct {
	job   evaluationJob
	index int
}

// resultItem represents the result of an evaluation job
type resultItem struct {
	fitness float64
	index   int
}

// worker is the worker goroutine that processes evaluation jobs
func worker(jobs <-chan jobItem, results chan<- resultItem, evaluator *FitnessEvaluator) {
	for item := range jobs {
		results <- resultItem{
			index:   item.index,
			fitness: evaluator.Evaluate(item.job.candidate, item.job.rng),
		}
	}
}
