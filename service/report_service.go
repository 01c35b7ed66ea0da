package application

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"inspection_service/domain"
)

// ReportService backs the admin and superadmin read-only views. It only
// counts; the records are produced and mutated elsewhere.
type ReportService struct {
	store  domain.AccommodationStore
	tracer trace.Tracer
}

func NewReportService(store domain.AccommodationStore, tracer trace.Tracer) *ReportService {
	return &ReportService{
		store:  store,
		tracer: tracer,
	}
}

var reportStatuses = []string{
	domain.StatusPending,
	domain.StatusPendingLegacy,
	domain.StatusApproved,
	domain.StatusDeclined,
	domain.StatusApprovedAttachment,
}

func (service *ReportService) Summary(ctx context.Context) (*domain.ReportSummary, error) {
	ctx, span := service.tracer.Start(ctx, "ReportService.Summary")
	defer span.End()

	summary := &domain.ReportSummary{
		ByStatus:       map[string]int64{},
		ByMunicipality: map[string]map[string]int64{},
	}

	total, err := service.store.CountByStatus(ctx, "", "")
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	summary.Total = total

	for _, status := range reportStatuses {
		count, err := service.store.CountByStatus(ctx, "", status)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		summary.ByStatus[status] = count
	}

	for _, municipality := range domain.Municipalities() {
		perStatus := map[string]int64{}
		for _, status := range reportStatuses {
			count, err := service.store.CountByStatus(ctx, municipality, status)
			if err != nil {
				span.SetStatus(codes.Error, err.Error())
				return nil, err
			}
			perStatus[status] = count
		}
		summary.ByMunicipality[municipality] = perStatus
	}

	// Both pending dialects count as pending for the overview numbers.
	summary.PendingOverall = summary.ByStatus[domain.StatusPending] + summary.ByStatus[domain.StatusPendingLegacy]
	summary.ApprovedOverall = summary.ByStatus[domain.StatusApproved] + summary.ByStatus[domain.StatusApprovedAttachment]
	summary.DeclinedOverall = summary.ByStatus[domain.StatusDeclined]

	return summary, nil
}
