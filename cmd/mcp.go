package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/tsingjyujing/vireview/analytics"
	"github.com/tsingjyujing/vireview/controller"
)

type NormalizeOutput struct {
	Results []controller.NormalizedReview `json:"results" jsonschema:"one normalized review per input, in input order"`
}

type RestaurantInput struct {
	ID string `json:"id" jsonschema:"the restaurant ID"`
}

type RestaurantOutput struct {
	Report *analytics.Report `json:"report" jsonschema:"the sentiment report of the restaurant"`
}

type SearchInput struct {
	Query string `json:"query" jsonschema:"part of the restaurant name, accents are optional"`
	Count int    `json:"n" jsonschema:"the number of results to return"`
}

type SearchOutput struct {
	Results []controller.RestaurantItem `json:"results" jsonschema:"the matching restaurants"`
}

type VireviewMCP struct {
	client   *http.Client
	endpoint url.URL
	token    string
}

func (v VireviewMCP) GetUrl(relativePath string, parameters map[string]string) (*url.URL, error) {
	u, err := url.Parse(relativePath)
	if err != nil {
		return nil, err
	}
	u = v.endpoint.ResolveReference(u)
	if parameters != nil {
		q := u.Query()
		for k, v := range parameters {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}
	return u, nil
}

// call sends a request to the API and decodes the JSON response into out.
// Error responses carry their message in the "status" field.
func (v VireviewMCP) call(ctx context.Context, method, path string, parameters map[string]string, body any, out any) error {
	u, err := v.GetUrl(path, parameters)
	if err != nil {
		return err
	}
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}
	request, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if v.token != "" {
		request.Header.Set("Authorization", "Bearer "+v.token)
	}
	resp, err := v.client.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		var failure map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&failure); err == nil && failure["status"] != "" {
			return fmt.Errorf("%s: %s", resp.Status, failure["status"])
		}
		return fmt.Errorf("request failed: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (v VireviewMCP) NormalizeReviews(ctx context.Context, req *mcp.CallToolRequest, input controller.ReviewsRequest) (*mcp.CallToolResult, NormalizeOutput, error) {
	var results []controller.NormalizedReview
	if err := v.call(ctx, http.MethodPost, "/api/v1/normalize", nil, input, &results); err != nil {
		return nil, NormalizeOutput{}, err
	}
	return nil, NormalizeOutput{Results: results}, nil
}

func (v VireviewMCP) ClassifyReviews(ctx context.Context, req *mcp.CallToolRequest, input controller.ReviewsRequest) (*mcp.CallToolResult, controller.ClassifyResponse, error) {
	var response controller.ClassifyResponse
	if err := v.call(ctx, http.MethodPost, "/api/v1/classify", nil, input, &response); err != nil {
		return nil, controller.ClassifyResponse{}, err
	}
	return nil, response, nil
}

func (v VireviewMCP) RestaurantInfo(ctx context.Context, req *mcp.CallToolRequest, input RestaurantInput) (*mcp.CallToolResult, RestaurantOutput, error) {
	var report analytics.Report
	if err := v.call(ctx, http.MethodGet, "/api/v1/restaurant/"+url.PathEscape(input.ID), nil, nil, &report); err != nil {
		return nil, RestaurantOutput{}, err
	}
	return nil, RestaurantOutput{Report: &report}, nil
}

func (v VireviewMCP) SearchRestaurants(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	parameters := map[string]string{"q": input.Query}
	if input.Count > 0 {
		parameters["n"] = strconv.Itoa(input.Count)
	}
	var results []controller.RestaurantItem
	if err := v.call(ctx, http.MethodGet, "/api/v1/restaurant/search", parameters, nil, &results); err != nil {
		return nil, SearchOutput{}, err
	}
	return nil, SearchOutput{Results: results}, nil
}

func NewMcpCommand() *cobra.Command {
	var vireviewEndpoint string
	var token string

	mcpCommand := &cobra.Command{
		Use:   "mcp",
		Short: "Starting MCP server",
		Run: func(cmd *cobra.Command, args []string) {
			parsedURL, err := url.Parse(vireviewEndpoint)
			if err != nil {
				logger.Fatalf("Invalid Vireview endpoint URL: %v", err)
			}
			v := VireviewMCP{
				client:   http.DefaultClient,
				endpoint: *parsedURL,
				token:    token,
			}
			server := mcp.NewServer(&mcp.Implementation{Name: "vireview-mcp", Title: "MCP server for Vietnamese restaurant review sentiment", Version: "v1.0.0"}, nil)
			mcp.AddTool(server, &mcp.Tool{Name: "normalize_reviews", Description: "Normalize raw Vietnamese reviews into the token stream used for classification"}, v.NormalizeReviews)
			mcp.AddTool(server, &mcp.Tool{Name: "classify_reviews", Description: "Label raw Vietnamese reviews as positive or negative"}, v.ClassifyReviews)
			mcp.AddTool(server, &mcp.Tool{Name: "restaurant_info", Description: "Get the sentiment report of a restaurant by ID"}, v.RestaurantInfo)
			mcp.AddTool(server, &mcp.Tool{Name: "search_restaurants", Description: "Find restaurant IDs by name, use it before restaurant_info"}, v.SearchRestaurants)
			if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
				logger.Fatal(err)
			}
		},
	}
	mcpCommand.Flags().StringVarP(
		&vireviewEndpoint,
		"endpoint",
		"e", "http://localhost:8080",
		"Vireview server endpoint URL",
	)
	mcpCommand.Flags().StringVarP(&token, "token", "t", "", "Bearer token for the Vireview API")
	return mcpCommand
}
