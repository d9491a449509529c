// Package apiconnect wires the billsplit.v1.SplitService to Connect handlers
// and clients.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	api "github.com/mmynk/billsplit/pkg/api"
)

const (
	// SplitServiceName is the fully-qualified name of the SplitService service.
	SplitServiceName = "billsplit.v1.SplitService"
)

const (
	// SplitServiceCalculateSplitProcedure is the path of the SplitService's CalculateSplit RPC.
	SplitServiceCalculateSplitProcedure = "/billsplit.v1.SplitService/CalculateSplit"
	// SplitServiceExportSummaryProcedure is the path of the SplitService's ExportSummary RPC.
	SplitServiceExportSummaryProcedure = "/billsplit.v1.SplitService/ExportSummary"
)

// SplitServiceHandler is implemented by the server side of the SplitService.
type SplitServiceHandler interface {
	CalculateSplit(context.Context, *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error)
	ExportSummary(context.Context, *connect.Request[api.ExportSummaryRequest]) (*connect.Response[api.ExportSummaryResponse], error)
}

// SplitServiceClient is a client for the SplitService.
type SplitServiceClient interface {
	CalculateSplit(context.Context, *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error)
	ExportSummary(context.Context, *connect.Request[api.ExportSummaryRequest]) (*connect.Response[api.ExportSummaryResponse], error)
}

// NewSplitServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewSplitServiceHandler(svc SplitServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	calculateSplitHandler := connect.NewUnaryHandler(
		SplitServiceCalculateSplitProcedure,
		svc.CalculateSplit,
		opts...,
	)
	exportSummaryHandler := connect.NewUnaryHandler(
		SplitServiceExportSummaryProcedure,
		svc.ExportSummary,
		opts...,
	)

	return "/" + SplitServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SplitServiceCalculateSplitProcedure:
			calculateSplitHandler.ServeHTTP(w, r)
		case SplitServiceExportSummaryProcedure:
			exportSummaryHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// NewSplitServiceClient constructs a client for the SplitService at baseURL.
func NewSplitServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SplitServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)

	return &splitServiceClient{
		calculateSplit: connect.NewClient[api.CalculateSplitRequest, api.CalculateSplitResponse](
			httpClient,
			baseURL+SplitServiceCalculateSplitProcedure,
			opts...,
		),
		exportSummary: connect.NewClient[api.ExportSummaryRequest, api.ExportSummaryResponse](
			httpClient,
			baseURL+SplitServiceExportSummaryProcedure,
			opts...,
		),
	}
}

type splitServiceClient struct {
	calculateSplit *connect.Client[api.CalculateSplitRequest, api.CalculateSplitResponse]
	exportSummary  *connect.Client[api.ExportSummaryRequest, api.ExportSummaryResponse]
}

func (c *splitServiceClient) CalculateSplit(ctx context.Context, req *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	return c.calculateSplit.CallUnary(ctx, req)
}

func (c *splitServiceClient) ExportSummary(ctx context.Context, req *connect.Request[api.ExportSummaryRequest]) (*connect.Response[api.ExportSummaryResponse], error) {
	return c.exportSummary.CallUnary(ctx, req)
}

// UnimplementedSplitServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSplitServiceHandler struct{}

func (UnimplementedSplitServiceHandler) CalculateSplit(context.Context, *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.SplitService.CalculateSplit is not implemented"))
}

func (UnimplementedSplitServiceHandler) ExportSummary(context.Context, *connect.Request[api.ExportSummaryRequest]) (*connect.Response[api.ExportSummaryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.SplitService.ExportSummary is not implemented"))
}
