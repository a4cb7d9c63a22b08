package gen

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRunner records invocations and returns canned results without
// touching the filesystem.
type stubRunner struct {
	mu       sync.Mutex
	calls    []string
	inflight int32
	peak     int32
	failKeys map[string]bool
	delay    time.Duration
}

func (s *stubRunner) Run(ctx context.Context, task *Task) *Result {
	cur := atomic.AddInt32(&s.inflight, 1)
	for {
		peak := atomic.LoadInt32(&s.peak)
		if cur <= peak || atomic.CompareAndSwapInt32(&s.peak, peak, cur) {
			break
		}
	}
	defer atomic.AddInt32(&s.inflight, -1)

	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	key := task.Zone + "/" + task.Language
	s.mu.Lock()
	s.calls = append(s.calls, key)
	s.mu.Unlock()

	result := &Result{Zone: task.Zone, Language: task.Language}
	if s.failKeys[key] {
		result.Status = StatusFailed
		result.Error = ErrToolFailed.Error()
	} else {
		result.Status = StatusSucceeded
		result.Success = true
		result.Files = []string{"client.ts"}
		result.Bytes = 42
	}
	return result
}

func makeTasks(zones []string, languages []string) []*Task {
	var tasks []*Task
	for _, z := range zones {
		for _, l := range languages {
			tasks = append(tasks, &Task{Zone: z, Language: l})
		}
	}
	return tasks
}

func TestOrchestratorOneResultPerTask(t *testing.T) {
	runner := &stubRunner{}
	o := NewOrchestrator(runner, nil, nil)

	tasks := makeTasks([]string{"public", "admin", "internal"}, []string{"typescript", "python"})
	results := o.Run(context.Background(), tasks, 4)

	require.Len(t, results, len(tasks))
	for i, result := range results {
		require.NotNil(t, result, "missing result for task %d", i)
		assert.Equal(t, tasks[i].Zone, result.Zone)
		assert.Equal(t, tasks[i].Language, result.Language)
	}
}

func TestOrchestratorPartialFailureIsolation(t *testing.T) {
	runner := &stubRunner{failKeys: map[string]bool{"admin/python": true}}
	o := NewOrchestrator(runner, nil, nil)

	tasks := makeTasks([]string{"public", "admin"}, []string{"typescript", "python"})
	results := o.Run(context.Background(), tasks, 2)

	var failed, succeeded int
	for _, result := range results {
		if result.Success {
			succeeded++
		} else {
			failed++
			assert.Equal(t, "admin/python", result.Key())
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 3, succeeded)
}

func TestOrchestratorWorkerCountInvariance(t *testing.T) {
	tasks := makeTasks([]string{"public", "admin", "internal", "partner"}, []string{"typescript", "python"})
	fail := map[string]bool{"internal/typescript": true, "partner/python": true}

	outcomes := func(workers int) []string {
		runner := &stubRunner{failKeys: fail}
		results := NewOrchestrator(runner, nil, nil).Run(context.Background(), tasks, workers)
		var keys []string
		for _, r := range results {
			keys = append(keys, fmt.Sprintf("%s=%v", r.Key(), r.Success))
		}
		sort.Strings(keys)
		return keys
	}

	assert.Equal(t, outcomes(1), outcomes(8))
}

func TestOrchestratorBoundsConcurrency(t *testing.T) {
	runner := &stubRunner{delay: 20 * time.Millisecond}
	o := NewOrchestrator(runner, nil, nil)

	tasks := makeTasks([]string{"a", "b", "c", "d", "e", "f"}, []string{"typescript"})
	o.Run(context.Background(), tasks, 2)

	assert.LessOrEqual(t, atomic.LoadInt32(&runner.peak), int32(2))
}

func TestOrchestratorSingleWorkerIsSequential(t *testing.T) {
	runner := &stubRunner{delay: 5 * time.Millisecond}
	o := NewOrchestrator(runner, nil, nil)

	tasks := makeTasks([]string{"a", "b", "c"}, []string{"typescript"})
	o.Run(context.Background(), tasks, 1)

	assert.Equal(t, int32(1), atomic.LoadInt32(&runner.peak))
	assert.Equal(t, []string{"a/typescript", "b/typescript", "c/typescript"}, runner.calls)
}

func TestOrchestratorEmptyTasks(t *testing.T) {
	o := NewOrchestrator(&stubRunner{}, nil, nil)
	assert.Nil(t, o.Run(context.Background(), nil, 4))
}

func TestOrchestratorZeroWorkersClamped(t *testing.T) {
	runner := &stubRunner{}
	o := NewOrchestrator(runner, nil, nil)

	tasks := makeTasks([]string{"public"}, []string{"typescript", "python"})
	results := o.Run(context.Background(), tasks, 0)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.Success)
	}
}

func TestOrchestratorCancellation(t *testing.T) {
	// A real runner observes the canceled context; pending tasks resolve
	// to failed results instead of vanishing.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tasks := makeTasks([]string{"public", "admin"}, []string{"typescript"})
	results := NewOrchestrator(NewExecRunner(), nil, nil).Run(ctx, tasks, 2)

	require.Len(t, results, 2)
	for _, r := range results {
		assert.False(t, r.Success)
		assert.Contains(t, r.Error, ErrCanceled.Error())
	}
}
