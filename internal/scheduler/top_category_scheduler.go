package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/shopzone-io/shopzone-backend/internal/app/service"
	"github.com/shopzone-io/shopzone-backend/pkg/logger"
)

// TopCategoryScheduler periodically recomputes category purchase rankings
type TopCategoryScheduler struct {
	cron           *cron.Cron
	catalogService service.CatalogService
}

func NewTopCategoryScheduler(catalogService service.CatalogService) *TopCategoryScheduler {
	return &TopCategoryScheduler{
		cron:           cron.New(),
		catalogService: catalogService,
	}
}

// Start schedules the hourly ranking recompute
func (s *TopCategoryScheduler) Start() error {
	_, err := s.cron.AddFunc("0 * * * *", func() {
		logger.Info("Starting scheduled top category refresh", nil)

		if err := s.catalogService.RefreshTopCategories(); err != nil {
			logger.Error("Failed to refresh top categories from scheduler", err)
			return
		}

		logger.Info("Successfully refreshed top categories from scheduler", nil)
	})
	if err != nil {
		logger.Error("Failed to add cron job for top category refresh", err)
		return err
	}

	s.cron.Start()
	logger.Info("Top category scheduler started successfully (hourly)", nil)

	return nil
}

// Stop stops the scheduler
func (s *TopCategoryScheduler) Stop() {
	logger.Info("Stopping top category scheduler...", nil)
	s.cron.Stop()
	logger.Info("Top category scheduler stopped", nil)
}
