package worker

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/SupportBot/internal/chatbot"
	"github.com/akolanti/SupportBot/internal/config"
	"github.com/akolanti/SupportBot/internal/domain/jobModel"
	"github.com/akolanti/SupportBot/internal/job"
	"github.com/akolanti/SupportBot/internal/metrics"
	"github.com/akolanti/SupportBot/pkg/logger_i"
)

var (
	_jobService        *job.Service
	stopWorkerChannel  chan bool
	workerWaitGroup    *sync.WaitGroup
	dispatcherChannel  chan bool
	currentWorkerCount int64
	logger             = logger_i.NewLogger("WorkerPool")
	_chatbotService    chatbot.Service
	minWorkerCount     = config.MinWorkerCount
	idleWorkerTimeout  = config.IdleWorkerTimeout
)

func InitServices(jobService *job.Service, chatbotService chatbot.Service) {
	_jobService = jobService
	_chatbotService = chatbotService
	dispatcherChannel = jobService.DispatcherChannel
}

func InitWorkerPool(stopWorkerChan chan bool, waitGroup *sync.WaitGroup) {
	stopWorkerChannel = stopWorkerChan
	workerWaitGroup = waitGroup
	logger.Info("Initializing worker pool")
	go dispatcher()
}

func dispatcher() {
	signals, stop := dispatcherChannel, stopWorkerChannel
	createWorker()
	logger.Info("Dispatcher started")
	for {
		select {
		case _, ok := <-signals:
			if !ok {
				return
			}
			if atomic.LoadInt64(&currentWorkerCount) < config.MaxWorkerCount {
				logger.Info("Creating new worker", "WorkerCount", atomic.LoadInt64(&currentWorkerCount))
				createWorker()
			}
		case <-stop:
			return
		}
	}
}

func createWorker() {
	workerWaitGroup.Add(1)
	atomic.AddInt64(&currentWorkerCount, 1)
	metrics.IncrementActiveWorkerCount()
	go worker(_jobService.JobChannel, stopWorkerChannel, workerWaitGroup)
	logger.Debug("Created new worker")
}

func worker(jobs <-chan jobModel.Job, stop <-chan bool, group *sync.WaitGroup) {
	idle := time.NewTimer(idleWorkerTimeout)
	defer idle.Stop()
	for {
		select {
		case currentJob := <-jobs:
			metrics.DecrementJobsInQueue()
			executeJob(currentJob)
			idle.Reset(idleWorkerTimeout)

		case <-stop:
			atomic.AddInt64(&currentWorkerCount, -1)
			removeWorker(group, "Stop worker signal received")
			return

		case <-idle.C:
			// retire idle workers but always keep the minimum running
			if tryRetire() {
				removeWorker(group, "Idle worker timeout")
				return
			}
			idle.Reset(idleWorkerTimeout)
		}
	}
}

func tryRetire() bool {
	for {
		count := atomic.LoadInt64(&currentWorkerCount)
		if count <= atomic.LoadInt64(&minWorkerCount) {
			return false
		}
		if atomic.CompareAndSwapInt64(&currentWorkerCount, count, count-1) {
			return true
		}
	}
}
