package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	application "inspection_service/service"
)

type ReportHandler struct {
	service *application.ReportService
	tracer  trace.Tracer
}

func NewReportHandler(service *application.ReportService, tracer trace.Tracer) *ReportHandler {
	return &ReportHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *ReportHandler) Init(router *mux.Router) {
	router.HandleFunc("/reports/summary", handler.Summary).Methods("GET")
}

func (handler *ReportHandler) Summary(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ReportHandler.Summary")
	defer span.End()

	summary, err := handler.service.Summary(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writer.WriteHeader(http.StatusInternalServerError)
		return
	}
	jsonResponse(summary, writer)
}
