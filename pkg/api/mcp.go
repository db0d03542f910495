package api

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/florakit/herbarium/pkg/flora"
	"github.com/florakit/herbarium/pkg/kit"
)

// RegisterMCPTools registers the catalog MCP tools on the server. The
// tools run the same instrumented endpoints as the HTTP routes.
func RegisterMCPTools(srv *server.MCPServer, cat *flora.Catalog) {
	eps := newEndpoints(cat)

	listTool := mcp.NewTool("list_species",
		mcp.WithDescription("List all plant species records with the filters summary (leaf categories, fruit types, chip icons)."),
	)
	kit.RegisterMCPTool(srv, listTool, eps.listSpecies, nil)

	getTool := mcp.NewTool("get_species",
		mcp.WithDescription("Fetch one plant species record by its slug id (e.g. santalum-album)."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Slug id of the species")),
	)
	kit.RegisterMCPTool(srv, getTool, eps.getSpecies,
		func(req mcp.CallToolRequest) (any, error) {
			id, _ := req.GetArguments()["id"].(string)
			return &getSpeciesReq{ID: id}, nil
		})

	classifyTool := mcp.NewTool("classify_leaf",
		mcp.WithDescription("Classify a free-text leaf description into its top-level category (Simple, Pinnately compound, Palmately compound) and optional subtype."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Raw leaf-type description")),
	)
	kit.RegisterMCPTool(srv, classifyTool, eps.classifyLeaf,
		func(req mcp.CallToolRequest) (any, error) {
			text, _ := req.GetArguments()["text"].(string)
			return &classifyLeafReq{Text: text}, nil
		})
}
