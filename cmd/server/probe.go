// CLAUDE:SUMMARY CLI subcommand that connects to a running server over MCP/QUIC and exercises the catalog tools.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/florakit/herbarium/pkg/mcpquic"
)

func cmdProbe(args []string) {
	fs := flag.NewFlagSet("probe", flag.ExitOnError)
	addr := fs.String("addr", "localhost:8430", "server address")
	id := fs.String("id", "", "call get_species with this slug")
	leaf := fs.String("leaf", "", "call classify_leaf with this text")
	fs.Parse(args)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := mcpquic.NewClient(*addr, nil)
	if err := c.Connect(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "connect %s: %v\n", *addr, err)
		os.Exit(1)
	}
	defer c.Close()

	tools, err := c.ListTools(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list tools: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Tools:")
	for _, t := range tools.Tools {
		fmt.Printf("  %s\n", t.Name)
	}

	switch {
	case *id != "":
		printToolResult(ctx, c, "get_species", map[string]any{"id": *id})
	case *leaf != "":
		printToolResult(ctx, c, "classify_leaf", map[string]any{"text": *leaf})
	}
}

func printToolResult(ctx context.Context, c *mcpquic.Client, name string, args map[string]any) {
	res, err := c.CallTool(ctx, name, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "call %s: %v\n", name, err)
		os.Exit(1)
	}
	for _, content := range res.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			fmt.Println(tc.Text)
		}
	}
}
