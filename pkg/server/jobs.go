package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/user/framegrid/pkg/progress"
)

// JobKind names the pipeline a job runs.
type JobKind string

const (
	KindSample JobKind = "sample"
	KindSplit  JobKind = "split"
)

// JobState is the lifecycle state of a job.
type JobState string

const (
	JobQueued  JobState = "queued"
	JobRunning JobState = "running"
	JobDone    JobState = "done"
	JobFailed  JobState = "failed"
)

// Job is one upload being processed. Results live in memory only.
type Job struct {
	ID        string
	Kind      JobKind
	InputName string
	Created   time.Time

	Progress *progress.Indicator
	Events   *SSEManager

	mu          sync.Mutex
	state       JobState
	err         string
	result      []byte
	contentType string
	filename    string
	done        chan struct{}
}

// JobStatus is the JSON view of a job.
type JobStatus struct {
	ID       string            `json:"id"`
	Kind     JobKind           `json:"kind"`
	Input    string            `json:"input"`
	State    JobState          `json:"state"`
	Progress progress.Snapshot `json:"progress"`
	Error    string            `json:"error,omitempty"`
	Result   string            `json:"result,omitempty"`
}

func newJob(kind JobKind, inputName string) *Job {
	events := NewSSEManager()
	return &Job{
		ID:        uuid.NewString(),
		Kind:      kind,
		InputName: inputName,
		Created:   time.Now(),
		Progress:  progress.New(events),
		Events:    events,
		state:     JobQueued,
		done:      make(chan struct{}),
	}
}

func (j *Job) setRunning() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.state = JobRunning
}

func (j *Job) succeed(data []byte, contentType, filename string) {
	j.mu.Lock()
	j.state = JobDone
	j.result = data
	j.contentType = contentType
	j.filename = filename
	j.mu.Unlock()
	j.finish()
}

func (j *Job) fail(err error) {
	j.mu.Lock()
	j.state = JobFailed
	j.err = err.Error()
	j.mu.Unlock()
	j.finish()
}

func (j *Job) finish() {
	close(j.done)
	j.Events.Close()
}

// Done is closed once the job has succeeded or failed.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Status returns the JSON view of the job.
func (j *Job) Status() JobStatus {
	j.mu.Lock()
	defer j.mu.Unlock()

	st := JobStatus{
		ID:       j.ID,
		Kind:     j.Kind,
		Input:    j.InputName,
		State:    j.state,
		Progress: j.Progress.Snapshot(),
		Error:    j.err,
	}
	if j.state == JobDone {
		st.Result = "/jobs/" + j.ID + "/result"
	}
	return st
}

// Result returns the output once the job is done.
func (j *Job) Result() (data []byte, contentType, filename string, ok bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.state != JobDone {
		return nil, "", "", false
	}
	return j.result, j.contentType, j.filename, true
}

// JobStore keeps jobs by ID.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewJobStore creates an empty store.
func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[string]*Job)}
}

// Add stores j under its ID.
func (s *JobStore) Add(j *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[j.ID] = j
}

// Get returns the job with the given ID.
func (s *JobStore) Get(id string) (*Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	return j, ok
}

// Len returns the number of stored jobs.
func (s *JobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}
