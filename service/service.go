package service

import (
	"tariffsync/config"
	"tariffsync/pkg/logger"
	"tariffsync/pkg/sheets"
	"tariffsync/storage"
)

type IServiceManager interface {
	Tariff() TariffService
	Report() ReportService
}

type service struct {
	tariffService TariffService
	reportService ReportService
}

func New(stg storage.IStorage, api TariffAPI, gateway sheets.Gateway, cfg config.Config, log logger.ILogger) IServiceManager {
	return &service{
		tariffService: NewTariffService(stg, api, log),
		reportService: NewReportService(stg, gateway, cfg, log),
	}
}

func (s *service) Tariff() TariffService {
	return s.tariffService
}

func (s *service) Report() ReportService {
	return s.reportService
}
