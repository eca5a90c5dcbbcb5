package services

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	portsrepo "github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/ports/repositories"
	portssvc "github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/ports/services"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/middleware"
	"golang.org/x/sync/errgroup"
)

// OrchestratorConfig sizes the polling loop and its worker pool.
type OrchestratorConfig struct {
	BatchSize    int
	PollInterval time.Duration
}

// tickJob is one document dispatched to the worker pool within a tick.
type tickJob struct {
	documentID string
	wg         *sync.WaitGroup
	failures   *atomic.Int64
}

// Orchestrator polls for pending documents on a fixed interval and fans each
// batch out to a long-lived pool of workers. Ticks never overlap: a tick waits
// for its whole batch before the next fires.
type Orchestrator struct {
	docRepo    portsrepo.DocumentRepositoryFacade
	duplicates portssvc.DuplicateSvcFacade
	processor  portssvc.ProcessingSvcFacade
	cfg        OrchestratorConfig
	jobs       chan tickJob
}

// NewOrchestrator creates the batch orchestrator.
func NewOrchestrator(
	docRepo portsrepo.DocumentRepositoryFacade,
	duplicates portssvc.DuplicateSvcFacade,
	processor portssvc.ProcessingSvcFacade,
	cfg OrchestratorConfig,
) *Orchestrator {
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}
	return &Orchestrator{
		docRepo:    docRepo,
		duplicates: duplicates,
		processor:  processor,
		cfg:        cfg,
		jobs:       make(chan tickJob, cfg.BatchSize),
	}
}

// Run starts the worker pool and the polling loop, blocking until the context
// is cancelled. Workers outlive individual ticks.
func (o *Orchestrator) Run(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)
	for i := 0; i < o.cfg.BatchSize; i++ {
		group.Go(func() error {
			o.worker(groupCtx)
			return nil
		})
	}

	group.Go(func() error {
		ticker := time.NewTicker(o.cfg.PollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-groupCtx.Done():
				return nil
			case <-ticker.C:
				o.RunTick(groupCtx)
			}
		}
	})

	<-groupCtx.Done()
	err := group.Wait()
	middleware.GetLoggerFromCtx(ctx).Info("Orchestrator stopped")
	return err
}

func (o *Orchestrator) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-o.jobs:
			if !ok {
				return
			}
			o.handle(ctx, job)
			job.wg.Done()
		}
	}
}

// RunTick selects one batch and dispatches it, blocking until every document
// of the batch finished. Known filename duplicates are classified here and
// never dispatched.
func (o *Orchestrator) RunTick(ctx context.Context) {
	logger := middleware.GetLoggerFromCtx(ctx)

	docs, err := o.docRepo.ListPendingDocuments(ctx, domain.StatusUploaded, o.cfg.BatchSize)
	if err != nil {
		logger.Error("Failed to list uploaded documents", slog.String("error", err.Error()))
		return
	}
	if len(docs) == 0 {
		// Nothing freshly uploaded; pick up documents stuck in PROCESSING from
		// an earlier crash.
		docs, err = o.docRepo.ListPendingDocuments(ctx, domain.StatusProcessing, o.cfg.BatchSize)
		if err != nil {
			logger.Error("Failed to list stuck documents", slog.String("error", err.Error()))
			return
		}
	}
	if len(docs) == 0 {
		return
	}

	var wg sync.WaitGroup
	var failures atomic.Int64
	dispatched := 0
	duplicatesFound := 0
	for _, doc := range docs {
		original, err := o.duplicates.FindTechnicalDuplicate(ctx, doc)
		if err != nil {
			logger.Error("Technical duplicate check failed",
				slog.String("document_id", doc.DocumentID), slog.String("error", err.Error()))
		} else if original != nil {
			if err := o.duplicates.ResolveDuplicate(ctx, doc, *original); err != nil {
				logger.Error("Failed to resolve technical duplicate",
					slog.String("document_id", doc.DocumentID), slog.String("error", err.Error()))
			} else {
				duplicatesFound++
			}
			continue
		}

		wg.Add(1)
		job := tickJob{documentID: doc.DocumentID, wg: &wg, failures: &failures}
		select {
		case o.jobs <- job:
			dispatched++
		case <-ctx.Done():
			wg.Done()
			wg.Wait()
			return
		}
	}
	wg.Wait()

	logger.Info("Batch tick completed",
		slog.Int("selected", len(docs)),
		slog.Int("dispatched", dispatched),
		slog.Int("technical_duplicates", duplicatesFound),
		slog.Int64("failures", failures.Load()))
}

// handle runs one document and converts any surfaced error into a rejection so
// a single failure never aborts the tick.
func (o *Orchestrator) handle(ctx context.Context, job tickJob) {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("document_id", job.documentID))

	err := o.processor.ProcessDocument(ctx, job.documentID)
	if err == nil {
		return
	}
	if ctx.Err() != nil {
		return
	}
	job.failures.Add(1)
	logger.Error("Document processing failed", slog.String("error", err.Error()))

	doc, loadErr := o.docRepo.FindDocumentByID(ctx, job.documentID)
	if loadErr != nil {
		logger.Error("Failed to reload document after failure", slog.String("error", loadErr.Error()))
		return
	}
	if doc.Status.IsTerminal() {
		return
	}
	if rejectErr := o.docRepo.UpdateDocumentStatus(ctx, job.documentID, domain.StatusRejected, err.Error()); rejectErr != nil {
		logger.Error("Failed to reject document after failure", slog.String("error", rejectErr.Error()))
	}
}
