package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Job: периодическая задача планировщика
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler: по горутине с тикером на каждую задачу.
// Одна задача не выполняется параллельно сама с собой: тик во время выполнения пропускается.
type Scheduler struct {
	jobs   []Job
	logger *slog.Logger

	once    sync.Once
	stop    chan struct{}
	cancel  context.CancelFunc
	loops   sync.WaitGroup
	running sync.WaitGroup
}

// New: конструктор; задачи с неположительным интервалом отбрасываются
func New(logger *slog.Logger, jobs ...Job) *Scheduler {
	valid := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if j.Interval <= 0 || j.Run == nil {
			logger.Warn("scheduler: job ignored", slog.String("job", j.Name), slog.Duration("interval", j.Interval))
			continue
		}
		valid = append(valid, j)
	}
	return &Scheduler{jobs: valid, logger: logger, stop: make(chan struct{})}
}

// Start запускает тикеры и сразу возвращает управление.
// Отмена ctx останавливает тикеры, но не прерывает уже выполняющуюся задачу: это делает Stop.
func (s *Scheduler) Start(ctx context.Context) {
	jobCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	s.logger.Info("scheduler started", slog.Int("jobs", len(s.jobs)))
	for _, j := range s.jobs {
		s.loops.Add(1)
		go s.loop(ctx, jobCtx, j)
	}
}

func (s *Scheduler) loop(ctx, jobCtx context.Context, j Job) {
	defer s.loops.Done()
	s.logger.Debug("scheduler job configured", slog.String("job", j.Name), slog.Duration("interval", j.Interval))

	t := time.NewTicker(j.Interval)
	defer t.Stop()

	var busy atomic.Bool
	for {
		select {
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		case <-t.C:
			if !busy.CompareAndSwap(false, true) {
				s.logger.Warn("tick skipped: previous run still in progress", slog.String("job", j.Name))
				continue
			}
			s.running.Add(1)
			go func() {
				defer s.running.Done()
				defer busy.Store(false)
				s.runOnce(jobCtx, j)
			}()
		}
	}
}

// runOnce: одна итерация задачи; ошибка и паника логируются, планировщик продолжает работу
func (s *Scheduler) runOnce(ctx context.Context, j Job) {
	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("tick: job panicked", slog.String("job", j.Name), slog.String("panic", fmt.Sprint(r)))
		}
	}()

	s.logger.Debug("tick: started", slog.String("job", j.Name))
	if err := j.Run(ctx); err != nil {
		s.logger.Error("tick: job failed", slog.String("job", j.Name), slog.String("err", err.Error()))
		return
	}
	s.logger.Debug("tick: completed", slog.String("job", j.Name), slog.Duration("duration", time.Since(started)))
}

// Stop останавливает тикеры и ждёт выполняющиеся задачи, пока не истечёт ctx.
// По истечении ctx контекст задач отменяется, Stop возвращает ctx.Err() не дожидаясь их.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.once.Do(func() { close(s.stop) })
	s.loops.Wait()

	done := make(chan struct{})
	go func() {
		s.running.Wait()
		close(done)
	}()

	defer func() {
		if s.cancel != nil {
			s.cancel()
		}
	}()

	select {
	case <-done:
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out, cancelling running jobs")
		return ctx.Err()
	}
}
