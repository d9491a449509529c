package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/internal/calculator"
	"github.com/mmynk/billsplit/internal/metrics"
	"github.com/mmynk/billsplit/internal/middleware"
	api "github.com/mmynk/billsplit/pkg/api"
	"github.com/mmynk/billsplit/pkg/api/apiconnect"
)

// SplitService implements the Connect SplitService
type SplitService struct {
	apiconnect.UnimplementedSplitServiceHandler
	metrics *metrics.SplitMetrics
}

// NewSplitService creates a new SplitService. m may be nil.
func NewSplitService(m *metrics.SplitMetrics) *SplitService {
	return &SplitService{metrics: m}
}

// CalculateSplit handles bill split calculation
func (s *SplitService) CalculateSplit(ctx context.Context, req *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	summary, err := s.compute(ctx, req.Msg.Bill)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.CalculateSplitResponse{
		Summary: toAPISummary(summary),
	}), nil
}

// ExportSummary calculates the split and renders it as shareable text.
func (s *SplitService) ExportSummary(ctx context.Context, req *connect.Request[api.ExportSummaryRequest]) (*connect.Response[api.ExportSummaryResponse], error) {
	summary, err := s.compute(ctx, req.Msg.Bill)
	if err != nil {
		return nil, err
	}

	text := calculator.FormatSummary(summary)
	s.metrics.ObserveExport()

	return connect.NewResponse(&api.ExportSummaryResponse{
		Summary: toAPISummary(summary),
		Text:    text,
	}), nil
}

// compute validates the bill and runs the split engine.
func (s *SplitService) compute(ctx context.Context, bill *api.Bill) (*calculator.BillSummary, error) {
	requestID := middleware.GetRequestID(ctx)

	input, err := ValidateBill(bill)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			slog.Info("Bill validation failed", "request_id", requestID, "errors", verr.Messages)
			s.metrics.ObserveCalculation("unknown", metrics.ResultInvalid, 0)
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		slog.Error("Bill validation errored", "request_id", requestID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return s.split(ctx, input)
}

// split runs the engine on validated input. Engine errors surface as
// CodeInvalidArgument.
func (s *SplitService) split(ctx context.Context, input calculator.BillInput) (*calculator.BillSummary, error) {
	requestID := middleware.GetRequestID(ctx)
	mode := calculator.SelectMode(input.Participants)
	slog.Debug("Calculating split",
		"request_id", requestID,
		"total_amount", input.TotalAmount,
		"tax", input.Tax.String(),
		"tip", input.Tip.String(),
		"participants", len(input.Participants),
		"mode", mode,
	)

	summary, err := calculator.ComputeSplit(input)
	if err != nil {
		slog.Error("ComputeSplit failed", "request_id", requestID, "error", err)
		s.metrics.ObserveCalculation(string(mode), metrics.ResultError, len(input.Participants))
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	for _, r := range summary.Results {
		slog.Debug("Participant share",
			"request_id", requestID,
			"participant", r.Participant.Name,
			"base_share", r.BaseShare,
			"tip_share", r.TipShare,
			"total_due", r.TotalDue,
		)
	}
	s.metrics.ObserveCalculation(string(summary.Mode), metrics.ResultOK, len(summary.Results))

	return summary, nil
}

func toAPISummary(summary *calculator.BillSummary) *api.BillSummary {
	results := make([]*api.ParticipantShare, len(summary.Results))
	for i, r := range summary.Results {
		results[i] = &api.ParticipantShare{
			Participant: &api.Participant{
				ID:           r.Participant.ID,
				Name:         r.Participant.Name,
				CustomAmount: r.Participant.CustomAmount,
			},
			BaseShare: r.BaseShare,
			TipShare:  r.TipShare,
			TotalDue:  r.TotalDue,
		}
	}

	return &api.BillSummary{
		Subtotal: summary.Subtotal,
		Tax:      summary.Tax,
		Tip:      summary.Tip,
		Total:    summary.Total,
		Mode:     string(summary.Mode),
		Results:  results,
	}
}
