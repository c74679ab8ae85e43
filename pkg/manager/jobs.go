package manager

import (
	"time"

	"github.com/kasuboski/episodez/pkg/machine"
)

type JobState string

const (
	JobIdle    JobState = "idle"
	JobRunning JobState = "running"
	JobDone    JobState = "done"
	JobError   JobState = "error"
)

func newJobMachine() *machine.StateMachine[JobState] {
	return machine.New(JobIdle,
		machine.From(JobIdle).To(JobRunning),
		machine.From(JobRunning).To(JobDone, JobError),
		machine.From(JobDone).To(JobRunning),
		machine.From(JobError).To(JobRunning),
	)
}

// JobStatus describes the latest scheduled download reconciliation
type JobStatus struct {
	State      JobState   `json:"state"`
	StartedAt  *time.Time `json:"startedAt,omitempty"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
	Entries    int        `json:"entries"`
	Needed     int        `json:"needed"`
	Error      string     `json:"error,omitempty"`
}

// DownloadJob returns the status of the scheduled download reconciliation
func (m *Manager) DownloadJob() JobStatus {
	m.jobMu.Lock()
	defer m.jobMu.Unlock()

	status := m.jobStatus
	status.State = m.job.Current()
	return status
}

func (m *Manager) setJobStatus(update func(*JobStatus)) {
	m.jobMu.Lock()
	defer m.jobMu.Unlock()
	update(&m.jobStatus)
}
