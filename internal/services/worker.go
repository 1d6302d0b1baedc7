package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"ats-screener/internal/models"
	"ats-screener/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueScreening(screeningID uuid.UUID)
}

type worker struct {
	screeningRepo repositories.ScreeningRepository
	jobRepo       repositories.JobRepository
	docRepo       repositories.DocumentRepository
	storage       StorageService
	screener      ScreenerService
	queue         chan uuid.UUID
	concurrency   int
	wg            sync.WaitGroup
	stopChan      chan struct{}
}

func NewWorker(
	screeningRepo repositories.ScreeningRepository,
	jobRepo repositories.JobRepository,
	docRepo repositories.DocumentRepository,
	storage StorageService,
	screener ScreenerService,
	concurrency int,
) Worker {
	return &worker{
		screeningRepo: screeningRepo,
		jobRepo:       jobRepo,
		docRepo:       docRepo,
		storage:       storage,
		screener:      screener,
		queue:         make(chan uuid.UUID, 100),
		concurrency:   concurrency,
		stopChan:      make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting screening worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processScreenings(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollQueuedScreenings(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueScreening implements Worker.
func (w *worker) EnqueueScreening(screeningID uuid.UUID) {
	select {
	case w.queue <- screeningID:
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue screening %s\n", screeningID)
	}
}

func (w *worker) processScreenings(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case screeningID := <-w.queue:
			log.Printf("👷 Worker #%d processing screening %s\n", workerID, screeningID)
			if err := w.process(ctx, screeningID); err != nil {
				log.Printf("❌ Worker #%d failed screening %s: %v\n", workerID, screeningID, err)
			} else {
				log.Printf("✅ Worker #%d completed screening %s\n", workerID, screeningID)
			}
		}
	}
}

func (w *worker) process(ctx context.Context, screeningID uuid.UUID) error {
	if err := w.screeningRepo.UpdateStatus(screeningID, models.StatusProcessing); err != nil {
		return err
	}

	screening, err := w.screeningRepo.FindByID(screeningID)
	if err != nil {
		w.screeningRepo.UpdateError(screeningID, err.Error())
		return err
	}

	jobText := screening.JobDescription
	if screening.JobID != nil {
		job, err := w.jobRepo.FindByID(*screening.JobID)
		if err != nil {
			w.screeningRepo.UpdateError(screeningID, err.Error())
			return err
		}
		jobText = job.Description
	}

	doc, err := w.docRepo.FindByID(screening.ResumeDocumentID)
	if err != nil {
		w.screeningRepo.UpdateError(screeningID, err.Error())
		return err
	}

	content, err := w.storage.ReadFile(doc.Filename)
	if err != nil {
		w.screeningRepo.UpdateError(screeningID, err.Error())
		return err
	}

	result, err := w.screener.Screen(ctx, screeningID, jobText, content, doc.OriginalFileName)
	if err != nil {
		w.screeningRepo.UpdateError(screeningID, err.Error())
		return err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		w.screeningRepo.UpdateError(screeningID, err.Error())
		return err
	}

	return w.screeningRepo.UpdateResult(screeningID, result.ATSScore, result.FitVerdict, string(payload))
}

func (w *worker) pollQueuedScreenings(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			queued, err := w.screeningRepo.FindQueued(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch queued screenings: %v\n", err)
				continue
			}

			for _, screening := range queued {
				w.EnqueueScreening(screening.ID)
			}
		}
	}
}
