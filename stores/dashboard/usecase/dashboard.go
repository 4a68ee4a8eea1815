package usecase

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/viney-shih/goroutines"
	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/base/log"
	"github.com/x-xyz/claimscore/base/metrics"
	"github.com/x-xyz/claimscore/base/ptr"
	"github.com/x-xyz/claimscore/domain"
	"github.com/x-xyz/claimscore/domain/dashboard"
	"github.com/x-xyz/claimscore/domain/enrichment"
	"github.com/x-xyz/claimscore/service/cache"
	"golang.org/x/xerrors"
)

const scheduleTimeout = 3 * time.Second

var met = metrics.New("dashboard")

type DashboardUseCaseCfg struct {
	Enrichment enrichment.UseCase
	// Runs keeps started runs, its ttl is how long a run can be polled
	Runs           cache.Service
	DefaultVariant string
	// Workers bounds the number of concurrent background runs
	Workers int
	Now     func() time.Time
}

type impl struct {
	enrichment     enrichment.UseCase
	runs           cache.Service
	defaultVariant string
	workerPool     *goroutines.Pool
	now            func() time.Time
}

func New(cfg *DashboardUseCaseCfg) dashboard.UseCase {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	im := &impl{
		enrichment:     cfg.Enrichment,
		runs:           cfg.Runs,
		defaultVariant: cfg.DefaultVariant,
		workerPool:     goroutines.NewPool(workers, goroutines.WithTaskQueueLength(64), goroutines.WithPreAllocWorkers(1)),
		now:            cfg.Now,
	}
	if im.now == nil {
		im.now = time.Now
	}
	return im
}

func (im *impl) Variants() []string {
	return im.enrichment.Variants()
}

func (im *impl) DefaultVariant() string {
	return im.defaultVariant
}

func (im *impl) variant(v string) string {
	if v == "" {
		return im.defaultVariant
	}
	return v
}

func (im *impl) Run(c ctx.Ctx, variant string) (*enrichment.Result, error) {
	return im.enrichment.Run(c, im.variant(variant))
}

func (im *impl) Start(c ctx.Ctx, variant string) (*enrichment.Result, error) {
	variant = im.variant(variant)
	if !im.known(variant) {
		return nil, xerrors.Errorf("unknown variant %q: %w", variant, domain.ErrBadParamInput)
	}

	pending := &enrichment.Result{
		RunId:     uuid.New(),
		Variant:   variant,
		State:     enrichment.StatePending,
		StartedAt: im.now(),
	}
	if err := im.runs.Set(c, pending.RunId.String(), pending); err != nil {
		c.WithField("err", err).Error("runs.Set failed")
		return nil, err
	}

	// the run outlives the request which started it
	bg := ctx.WithFields(ctx.Detach(c), log.Fields{"runId": pending.RunId.String()})
	err := im.workerPool.ScheduleWithTimeout(scheduleTimeout, func() {
		im.track(bg, pending)
	})
	if err != nil {
		c.WithFields(log.Fields{
			"runId": pending.RunId.String(),
			"err":   err,
		}).Error("failed to ScheduleWithTimeout")
		met.BumpSum("schedule.failure", 1)
		failed := *pending
		failed.State = enrichment.StateFailed
		failed.Reason = err.Error()
		failed.FinishedAt = ptr.Time(im.now())
		if err := im.runs.Set(c, failed.RunId.String(), &failed); err != nil {
			c.WithField("err", err).Error("runs.Set failed")
		}
		return &failed, nil
	}
	met.BumpSum("run.started", 1, "variant", variant)
	return pending, nil
}

// track runs the pipeline and replaces the pending entry with the outcome
func (im *impl) track(c ctx.Ctx, pending *enrichment.Result) {
	res, err := im.enrichment.Run(c, pending.Variant)
	if res == nil {
		failed := *pending
		failed.State = enrichment.StateFailed
		if err != nil {
			failed.Reason = err.Error()
		}
		res = &failed
	}
	if res.FinishedAt == nil {
		res.FinishedAt = ptr.Time(im.now())
	}
	res.RunId = pending.RunId
	res.StartedAt = pending.StartedAt
	if err := im.runs.Set(c, res.RunId.String(), res); err != nil {
		c.WithFields(log.Fields{
			"rows": len(res.Rows),
			"err":  err,
		}).Error("runs.Set failed")
		met.BumpSum("store.failure", 1, "variant", res.Variant)
		im.storeFailed(c, res, xerrors.Errorf("failed to store run result: %w", err))
		return
	}
	c.WithField("state", res.State).Info("run tracked")
}

// storeFailed replaces the pending entry with a Failed result carrying no
// rows, so pollers never wait for the ttl
func (im *impl) storeFailed(c ctx.Ctx, res *enrichment.Result, cause error) {
	failed := &enrichment.Result{
		RunId:      res.RunId,
		Variant:    res.Variant,
		State:      enrichment.StateFailed,
		Reason:     cause.Error(),
		Degraded:   res.Degraded,
		StartedAt:  res.StartedAt,
		FinishedAt: res.FinishedAt,
	}
	if err := im.runs.Set(c, failed.RunId.String(), failed); err != nil {
		c.WithField("err", err).Error("runs.Set failed")
	}
}

func (im *impl) Get(c ctx.Ctx, runId uuid.UUID) (*enrichment.Result, error) {
	res := &enrichment.Result{}
	if err := im.runs.Get(c, runId.String(), res); errors.Is(err, cache.ErrNotFound) {
		return nil, xerrors.Errorf("run %s: %w", runId, domain.ErrNotFound)
	} else if err != nil {
		c.WithFields(log.Fields{
			"runId": runId.String(),
			"err":   err,
		}).Error("runs.Get failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) known(variant string) bool {
	for _, v := range im.enrichment.Variants() {
		if v == variant {
			return true
		}
	}
	return false
}
