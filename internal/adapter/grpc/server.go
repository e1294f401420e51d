package grpc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/fipify-backend/internal/domain"
	"github.com/simaogato/fipify-backend/internal/usecase/lookup"
	"github.com/simaogato/fipify-backend/internal/usecase/report"
)

// Server implements the VehicleReportService gRPC server
type Server struct {
	LookupService *lookup.LookupService
	ReportService *report.ReportService
	Logger        *zap.Logger
}

// NewServer creates a new gRPC server instance
func NewServer(lookupService *lookup.LookupService, reportService *report.ReportService, logger *zap.Logger) *Server {
	return &Server{
		LookupService: lookupService,
		ReportService: reportService,
		Logger:        logger,
	}
}

// ListBrands handles the ListBrands RPC
func (s *Server) ListBrands(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	items, err := s.LookupService.ListBrands(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return catalogResponse(items)
}

// ListModels handles the ListModels RPC
// Request: {brandCode}
func (s *Server) ListModels(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	items, err := s.LookupService.ListModels(ctx, stringField(req, "brandCode"))
	if err != nil {
		return nil, mapError(err)
	}
	return catalogResponse(items)
}

// ListYears handles the ListYears RPC
// Request: {brandCode, modelCode}
func (s *Server) ListYears(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	items, err := s.LookupService.ListYears(ctx, stringField(req, "brandCode"), stringField(req, "modelCode"))
	if err != nil {
		return nil, mapError(err)
	}
	return catalogResponse(items)
}

// LookupVehicle handles the LookupVehicle RPC
// Request: {brandCode, modelCode, yearCode}. Response: {record}
func (s *Server) LookupVehicle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sel := lookup.VehicleSelection{
		BrandCode: stringField(req, "brandCode"),
		ModelCode: stringField(req, "modelCode"),
		YearCode:  stringField(req, "yearCode"),
	}

	record, err := s.LookupService.Lookup(ctx, sel)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]interface{}{"record": recordToMap(record)})
}

// GetComparisons handles the GetComparisons RPC
// Request: {recordId}. Response: {comparisons: [...]}
func (s *Server) GetComparisons(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := recordID(req)
	if err != nil {
		return nil, err
	}

	entries, err := s.LookupService.Comparisons(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	list := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		list = append(list, map[string]interface{}{
			"brand":               e.Brand,
			"model":               e.Model,
			"relativeDifference":  e.RelativeDifference.String(),
			"formattedDifference": domain.FormatSignedPercent(domain.FractionToPercent(e.RelativeDifference)),
			"derivedValue":        e.DerivedValue.StringFixed(2),
			"formattedValue":      domain.FormatCurrency(e.DerivedValue),
		})
	}

	return newStruct(map[string]interface{}{"comparisons": list})
}

// GenerateReport handles the GenerateReport RPC
// Request: {recordId}. Response: {fileName, contentType, pageCount, content (base64)}
func (s *Server) GenerateReport(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := recordID(req)
	if err != nil {
		return nil, err
	}

	doc, err := s.ReportService.GenerateReport(ctx, id)
	if err != nil {
		if errors.Is(err, report.ErrReportUnavailable) {
			s.Logger.Error("report generation failed", zap.String("record_id", id.String()), zap.Error(err))
		}
		return nil, mapError(err)
	}

	return newStruct(map[string]interface{}{
		"fileName":    doc.FileName,
		"contentType": doc.ContentType,
		"pageCount":   doc.PageCount,
		"content":     doc.Content,
	})
}

// recordToMap converts a domain record to its wire shape; amounts travel as decimal strings
func recordToMap(r *domain.ValuationRecord) map[string]interface{} {
	return map[string]interface{}{
		"id":                     r.ID.String(),
		"brand":                  r.Brand,
		"model":                  r.Model,
		"modelYear":              r.ModelYear,
		"fuelType":               r.FuelType,
		"referenceCode":          r.ReferenceCode,
		"referenceMonth":         r.ReferenceMonth,
		"currentValue":           r.CurrentValue.StringFixed(2),
		"formattedValue":         r.FormattedValue(),
		"annualDepreciationRate": r.AnnualDepreciationRate.String(),
		"classification":         domain.ClassifyDepreciation(r.AnnualDepreciationRate).Label(),
		"valorizationScore":      domain.ValorizationScore(r.AnnualDepreciationRate),
		"createdAt":              r.CreatedAt.Format(time.RFC3339),
	}
}

func catalogResponse(items []domain.CatalogItem) (*structpb.Struct, error) {
	list := make([]interface{}, 0, len(items))
	for _, item := range items {
		list = append(list, map[string]interface{}{"code": item.Code, "name": item.Name})
	}
	return newStruct(map[string]interface{}{"items": list})
}

func newStruct(fields map[string]interface{}) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

func stringField(req *structpb.Struct, name string) string {
	return strings.TrimSpace(req.GetFields()[name].GetStringValue())
}

func recordID(req *structpb.Struct) (uuid.UUID, error) {
	id, err := uuid.Parse(stringField(req, "recordId"))
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid recordId format: %v", err)
	}
	return id, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, report.ErrReportUnavailable):
		return status.Error(codes.Internal, report.ErrReportUnavailable.Error())
	case errors.Is(err, domain.ErrRecordNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidRecord):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrSourceUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
