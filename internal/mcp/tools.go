package mcp

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/matyjas/nq-mcp/internal/common"
	"github.com/matyjas/nq-mcp/internal/openaq"
)

// ClientFactory hands out one OpenAQ client per invocation.
type ClientFactory interface {
	NewClient() (*openaq.Client, error)
}

// Tool is one entry in the static tool table.
type Tool interface {
	Name() string
	Definition() mcp.Tool
	Handler(factory ClientFactory, logger *common.Logger) server.ToolHandlerFunc
}

// toolSpec ties a tool's input type I to a request Q and the result record T.
type toolSpec[I, Q, T any] struct {
	name        string
	title       string
	description string
	toRequest   func(I) Q
	execute     func(*openaq.Client, context.Context, Q) (openaq.Response[T], error)
}

func (s toolSpec[I, Q, T]) Name() string { return s.name }

func (s toolSpec[I, Q, T]) Definition() mcp.Tool {
	return mcp.NewTool(s.name,
		mcp.WithDescription(s.description),
		mcp.WithTitleAnnotation(s.title),
		mcp.WithInputSchema[I](),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handler builds the request, obtains a fresh client and reduces the
// response to text. Credential and transport failures abort the call.
func (s toolSpec[I, Q, T]) Handler(factory ClientFactory, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in, err := bindInput[I](request)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		client, err := factory.NewClient()
		if err != nil {
			return nil, errors.Wrap(err, s.name)
		}

		resp, err := s.execute(client, ctx, s.toRequest(in))
		if err != nil {
			return nil, errors.Wrap(err, s.name)
		}

		return mcp.NewToolResultText(reduce(loggerFrom(ctx, logger), s.name, resp)), nil
	}
}

var registry = []Tool{
	toolSpec[CountriesListInput, openaq.ListCountriesRequest, openaq.Country]{
		name:        "countries_in_open_aq",
		title:       "List countries",
		description: "Lists Countries in the Open Air Quality data set",
		toRequest:   CountriesListRequest,
		execute:     (*openaq.Client).ListCountries,
	},
	toolSpec[CountryDetailsInput, openaq.GetCountryRequest, openaq.Country]{
		name:        "country_in_open_aq",
		title:       "Get country",
		description: "Details Air Quality of a Country in the Open Air Quality data set",
		toRequest:   CountryDetailsRequest,
		execute:     (*openaq.Client).GetCountry,
	},
	toolSpec[LocationsListInput, openaq.ListLocationsRequest, openaq.Location]{
		name:        "locations_in_open_aq",
		title:       "List locations",
		description: "Lists Locations in the Open Air Quality data set",
		toRequest:   LocationsListRequest,
		execute:     (*openaq.Client).ListLocations,
	},
	toolSpec[LocationLatestInput, openaq.LocationLatestRequest, openaq.Latest]{
		name:        "latest_measurements_for_location",
		title:       "Latest measurements",
		description: "Latest Open Air Quality Measurements for a Location",
		toRequest:   LocationLatestRequest,
		execute:     (*openaq.Client).LocationLatest,
	},
}

// Tools returns the tool table in registration order.
func Tools() []Tool {
	out := make([]Tool, len(registry))
	copy(out, registry)
	return out
}

// RegisterTools adds every tool to s and returns how many were registered.
func RegisterTools(s *server.MCPServer, factory ClientFactory, logger *common.Logger) int {
	entries := make([]server.ServerTool, 0, len(registry))
	for _, t := range registry {
		entries = append(entries, server.ServerTool{
			Tool:    t.Definition(),
			Handler: t.Handler(factory, logger),
		})
	}
	s.AddTools(entries...)
	return len(entries)
}

// CountriesListRequest maps countries_in_open_aq arguments to a request.
// Only page is forwarded.
func CountriesListRequest(in CountriesListInput) openaq.ListCountriesRequest {
	return openaq.ListCountriesRequest{
		Query: openaq.CountriesQuery{Page: in.Page},
	}
}

// CountryDetailsRequest maps country_in_open_aq arguments to a request.
func CountryDetailsRequest(in CountryDetailsInput) openaq.GetCountryRequest {
	return openaq.GetCountryRequest{CountriesID: in.CountriesID}
}

// LocationsListRequest maps locations_in_open_aq arguments to a request.
// Page and the country filter are forwarded; other filters stay absent.
func LocationsListRequest(in LocationsListInput) openaq.ListLocationsRequest {
	return openaq.ListLocationsRequest{
		Query: openaq.LocationsQuery{
			Page:        in.Page,
			CountriesID: in.CountriesID,
		},
	}
}

// LocationLatestRequest maps latest_measurements_for_location arguments to
// a request. The page size is always LatestLimit.
func LocationLatestRequest(in LocationLatestInput) openaq.LocationLatestRequest {
	limit := openaq.LatestLimit
	return openaq.LocationLatestRequest{
		LocationsID: in.LocationsID,
		Query: openaq.LatestQuery{
			Limit: &limit,
			Page:  in.Page,
		},
	}
}
