package api

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/florakit/herbarium/pkg/flora"
	"github.com/florakit/herbarium/pkg/kit"
)

// Shared request/response types used by both HTTP and MCP transports.

// ErrNotFound is returned by the get endpoint for unknown record ids.
// It is the only errors-as-values case in the catalog surface.
var ErrNotFound = errors.New("species not found")

type listResponse struct {
	Items   []*flora.SpeciesRecord `json:"items"`
	Filters flora.FiltersSummary   `json:"filters"`
}

type filtersResponse struct {
	Filters flora.FiltersSummary `json:"filters"`
}

type classifyLeafResponse struct {
	Input    string `json:"input"`
	Category string `json:"category,omitempty"`
	Subtype  string `json:"subtype,omitempty"`
}

type getSpeciesReq struct {
	ID string
}

type classifyLeafReq struct {
	Text string
}

// endpoints is the transport-shared action set. Both the HTTP router
// and the MCP tools dispatch through the same instrumented endpoints.
type endpoints struct {
	listSpecies  kit.Endpoint
	getSpecies   kit.Endpoint
	listFilters  kit.Endpoint
	classifyLeaf kit.Endpoint
}

func newEndpoints(cat *flora.Catalog) endpoints {
	return endpoints{
		listSpecies:  kit.Chain(logEndpoint("list_species"))(listSpeciesEndpoint(cat)),
		getSpecies:   kit.Chain(logEndpoint("get_species"))(getSpeciesEndpoint(cat)),
		listFilters:  kit.Chain(logEndpoint("list_filters"))(listFiltersEndpoint(cat)),
		classifyLeaf: kit.Chain(logEndpoint("classify_leaf"))(classifyLeafEndpoint()),
	}
}

// logEndpoint emits one log line per invocation, tagged with the
// transport and request id carried in the context.
func logEndpoint(name string) kit.Middleware {
	return func(next kit.Endpoint) kit.Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			start := time.Now()
			resp, err := next(ctx, request)

			attrs := []any{
				"endpoint", name,
				"transport", kit.Transport(ctx),
				"duration", time.Since(start),
			}
			if id := kit.RequestID(ctx); id != "" {
				attrs = append(attrs, "request_id", id)
			}
			if err != nil {
				slog.Warn("endpoint failed", append(attrs, "error", err)...)
			} else {
				slog.Debug("endpoint served", attrs...)
			}
			return resp, err
		}
	}
}

func listSpeciesEndpoint(cat *flora.Catalog) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		items, filters := cat.ListAll()
		return listResponse{Items: items, Filters: filters}, nil
	}
}

func getSpeciesEndpoint(cat *flora.Catalog) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*getSpeciesReq)
		rec, ok := cat.GetByID(req.ID)
		if !ok {
			return nil, ErrNotFound
		}
		return rec, nil
	}
}

func listFiltersEndpoint(cat *flora.Catalog) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		_, filters := cat.ListAll()
		return filtersResponse{Filters: filters}, nil
	}
}

func classifyLeafEndpoint() kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*classifyLeafReq)
		c := flora.ClassifyLeaf(req.Text)
		return classifyLeafResponse{
			Input:    req.Text,
			Category: c.Category,
			Subtype:  c.Subtype,
		}, nil
	}
}
