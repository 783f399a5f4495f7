package server

import (
	"time"
)

// start runs job in the background once a worker slot is free. The upload
// directory is removed when the run ends.
func (s *Server) start(job *Job, dir, path string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.deps.FileSystem.RemoveAll(dir)

		select {
		case s.slots <- struct{}{}:
		case <-s.baseCtx.Done():
			job.fail(s.baseCtx.Err())
			return
		}
		defer func() { <-s.slots }()

		job.setRunning()
		s.metrics.jobStarted()
		s.logger.Info("Job %s started: %s", job.ID, job.InputName)
		begin := time.Now()

		size, err := s.execute(job, path)

		elapsed := time.Since(begin).Seconds()
		if err != nil {
			s.logger.Error("Job %s failed: %s", job.ID, err)
			job.fail(err)
			s.metrics.jobFinished(job.Kind, JobFailed, elapsed, 0)
			return
		}
		s.logger.Info("Job %s finished", job.ID)
		s.metrics.jobFinished(job.Kind, JobDone, elapsed, size)
	}()
}

func (s *Server) execute(job *Job, path string) (int, error) {
	switch job.Kind {
	case KindSample:
		cfg := s.cfg.Sampler
		cfg.InputPath = path
		cfg.InputName = job.InputName
		cfg.OutputPath, cfg.HTMLPath, cfg.PreviewPath = "", "", ""

		result, err := s.deps.Sampler.Run(s.baseCtx, cfg, job.Progress)
		if err != nil {
			return 0, err
		}
		job.succeed(result.Document, "application/pdf", resultName(job.InputName, ".pdf"))
		return len(result.Document), nil

	default:
		cfg := s.cfg.Splitter
		cfg.InputPath = path
		cfg.InputName = job.InputName
		cfg.OutputPath = ""

		result, err := s.deps.Splitter.Run(s.baseCtx, cfg, job.Progress)
		if err != nil {
			return 0, err
		}
		job.succeed(result.Animation.Data, "image/gif", resultName(job.InputName, ".gif"))
		return len(result.Animation.Data), nil
	}
}
