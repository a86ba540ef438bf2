package task

import (
	"context"
	"time"

	"go-hrdesk/internal/infrastructure/logger"
	"go-hrdesk/internal/pkg/chat/application/usecase"

	"github.com/robfig/cron"
)

const sweepJobName = "DegenerateConversationSweep"

// sweepTimeout bounds a single run so a slow store cannot stack runs up.
const sweepTimeout = 30 * time.Second

// SweepJob runs the degenerate-conversation sweep on a cron schedule.
type SweepJob struct {
	uc       *usecase.SweepDegenerateConversationsUseCase
	schedule string
	cron     *cron.Cron
	log      *logger.Logger
}

func NewSweepJob(uc *usecase.SweepDegenerateConversationsUseCase, schedule string, log *logger.Logger) *SweepJob {
	if log == nil {
		log = logger.Default()
	}
	return &SweepJob{uc: uc, schedule: schedule, cron: cron.New(), log: log}
}

func (j *SweepJob) Name() string {
	return sweepJobName
}

// Start registers the job and starts the scheduler. An invalid schedule is returned as an error.
func (j *SweepJob) Start() error {
	if err := j.cron.AddFunc(j.schedule, j.RunOnce); err != nil {
		j.log.Errorf(err, "could not schedule %s with %q", sweepJobName, j.schedule)
		return err
	}
	j.cron.Start()
	j.log.Infof("%s scheduled %q", sweepJobName, j.schedule)
	return nil
}

func (j *SweepJob) Stop() {
	j.cron.Stop()
}

// RunOnce performs one sweep; failures are logged and retried on the next tick.
func (j *SweepJob) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	found, err := j.uc.Execute(ctx)
	if err != nil {
		j.log.Error(err, "degenerate conversation sweep failed")
		return
	}
	if len(found) > 0 {
		j.log.Warnf("%s found %d direct conversations without exactly two members", sweepJobName, len(found))
	}
}
