package gen

import (
	"context"
	"sync"

	"github.com/zonekit/zonekit/pkg/observability"
)

// Orchestrator schedules generation tasks onto a bounded worker pool.
// Tasks are independent: workers share nothing but read-only inputs, every
// submitted task resolves to exactly one Result, and a failing task never
// prevents the rest from completing.
type Orchestrator struct {
	runner  Runner
	log     *observability.Logger
	metrics *observability.Metrics
}

// NewOrchestrator creates an orchestrator driving tasks through runner.
// metrics may be nil.
func NewOrchestrator(runner Runner, log *observability.Logger, metrics *observability.Metrics) *Orchestrator {
	if runner == nil {
		runner = NewExecRunner()
	}
	return &Orchestrator{runner: runner, log: log, metrics: metrics}
}

// Run executes all tasks with at most maxWorkers running concurrently and
// returns one Result per task, in task order. maxWorkers of 1 produces the
// same result set as any larger value; only wall-clock time differs.
//
// Cancellation of ctx marks still-pending tasks Failed with ErrCanceled;
// results of already-finished tasks are retained.
func (o *Orchestrator) Run(ctx context.Context, tasks []*Task, maxWorkers int) []*Result {
	if len(tasks) == 0 {
		return nil
	}

	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	if maxWorkers > len(tasks) {
		maxWorkers = len(tasks)
	}

	type workItem struct {
		task  *Task
		index int
	}

	workCh := make(chan workItem, len(tasks))
	results := make([]*Result, len(tasks))
	var mu sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < maxWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for work := range workCh {
				result := o.runner.Run(ctx, work.task)
				o.observe(result)

				mu.Lock()
				results[work.index] = result
				mu.Unlock()
			}
		}()
	}

	for i, task := range tasks {
		workCh <- workItem{task: task, index: i}
	}
	close(workCh)

	wg.Wait()
	return results
}

func (o *Orchestrator) observe(result *Result) {
	if o.log != nil {
		entry := o.log.WithFields(map[string]interface{}{
			"zone":     result.Zone,
			"language": result.Language,
			"duration": result.Duration.String(),
		})
		if result.Success {
			entry.WithField("files", len(result.Files)).Info("generation task succeeded")
		} else {
			entry.WithField("error", result.Error).Warn("generation task failed")
		}
	}

	if o.metrics == nil {
		return
	}
	outcome := observability.OutcomeSuccess
	if !result.Success {
		outcome = observability.OutcomeFailure
	}
	o.metrics.GenerationsTotal.WithLabelValues(result.Zone, result.Language, outcome).Inc()
	o.metrics.GenerationDuration.WithLabelValues(result.Zone, result.Language).Observe(result.Duration.Seconds())
	if result.Success {
		o.metrics.GeneratedBytes.WithLabelValues(result.Zone, result.Language).Add(float64(result.Bytes))
	}
}
