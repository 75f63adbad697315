package mcp

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
	"github.com/oceanglide/gliderfetch/glider"
)

var validate = validator.New()

func InitTools() []server.ServerTool {
	tools := []server.ServerTool{}

	tools = append(tools, newServerTool(SearchGliders()))
	tools = append(tools, newServerTool(FetchGliderData()))

	return tools
}

func SearchGliders() (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"search_gliders",
			mcp.WithDescription("Search an ERDDAP server for glider datasets within geographic and time bounds"),
			mcp.WithNumber("min_lat", mcp.Required(), mcp.Description("Southernmost latitude (-90 to 90)")),
			mcp.WithNumber("max_lat", mcp.Required(), mcp.Description("Northernmost latitude (-90 to 90)")),
			mcp.WithNumber("min_lon", mcp.Required(), mcp.Description("Westernmost longitude (-180 to 180)")),
			mcp.WithNumber("max_lon", mcp.Required(), mcp.Description("Easternmost longitude (-180 to 180)")),
			mcp.WithString("min_time", mcp.Required(), mcp.Description("Start time, e.g. 2020-01-01")),
			mcp.WithString("max_time", mcp.Required(), mcp.Description("End time, e.g. 2020-02-01")),
			mcp.WithBoolean("delayed", mcp.Description("Include delayed-mode datasets")),
			mcp.WithString("server", mcp.Description("ERDDAP server URL (defaults to the IOOS glider DAC)")),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			type ToolArguments struct {
				MinLat  float64 `json:"min_lat" validate:"gte=-90,lte=90"`
				MaxLat  float64 `json:"max_lat" validate:"gte=-90,lte=90"`
				MinLon  float64 `json:"min_lon" validate:"gte=-180,lte=180"`
				MaxLon  float64 `json:"max_lon" validate:"gte=-180,lte=180"`
				MinTime string  `json:"min_time" validate:"required"`
				MaxTime string  `json:"max_time" validate:"required"`
				Delayed bool    `json:"delayed" validate:"omitempty"`
				Server  string  `json:"server" validate:"omitempty,url"`
			}
			var args ToolArguments
			if err := mapstructure.Decode(req.Params.Arguments, &args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if err := validate.StructCtx(ctx, args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			fetcher, err := glider.NewFetcher(args.Server)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			catalog, err := fetcher.Query(glider.Bounds{
				MinLat:  args.MinLat,
				MaxLat:  args.MaxLat,
				MinLon:  args.MinLon,
				MaxLon:  args.MaxLon,
				MinTime: args.MinTime,
				MaxTime: args.MaxTime,
			}, args.Delayed)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			type CatalogInfo struct {
				Title       string `json:"title"`
				Institution string `json:"institution"`
				DatasetID   string `json:"dataset_id"`
				InfoURL     string `json:"info_url,omitempty"`
			}

			out := make([]CatalogInfo, 0, len(catalog))
			for _, e := range catalog {
				out = append(out, CatalogInfo{
					Title:       e.Title,
					Institution: e.Institution,
					DatasetID:   e.DatasetID,
					InfoURL:     e.InfoURL,
				})
			}

			b, err := json.Marshal(out)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			return mcp.NewToolResultText(string(b)), nil
		}
}

func FetchGliderData() (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"fetch_glider_data",
			mcp.WithDescription("Download one glider dataset as CSV with canonical column names"),
			mcp.WithString("dataset_id", mcp.Required(), mcp.Description("ERDDAP dataset id")),
			mcp.WithString("server", mcp.Description("ERDDAP server URL (defaults to the IOOS glider DAC)")),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			type ToolArguments struct {
				DatasetID string `json:"dataset_id" validate:"required"`
				Server    string `json:"server" validate:"omitempty,url"`
			}
			var args ToolArguments
			if err := mapstructure.Decode(req.Params.Arguments, &args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if err := validate.StructCtx(ctx, args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			fetcher, err := glider.NewFetcher(args.Server)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			fetcher.SetDatasetID(args.DatasetID)

			tbl, err := fetcher.Fetch()
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var buf bytes.Buffer
			if err := tbl.WriteCSV(&buf); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			return mcp.NewToolResultText(buf.String()), nil
		}
}
