package jobs

import "fmt"

type job interface {
	Start() error
	Stop()
}

// JobManager starts and stops the scheduled jobs as one unit.
type JobManager struct {
	jobs  []job
	names []string
}

// NewJobManager returns an empty manager.
func NewJobManager() *JobManager {
	return &JobManager{}
}

// Add registers j under name and returns the manager for chaining.
func (jm *JobManager) Add(name string, j job) *JobManager {
	jm.jobs = append(jm.jobs, j)
	jm.names = append(jm.names, name)
	return jm
}

// StartAll starts the jobs in registration order. When one fails the jobs
// already started are stopped again.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.Start(); err != nil {
			for k := i - 1; k >= 0; k-- {
				jm.jobs[k].Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", jm.names[i], err)
		}
	}
	return nil
}

// StopAll stops the jobs in reverse order.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
	}
}
