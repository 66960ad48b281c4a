// Package server exposes the bridge as MCP tools over stdio, so MCP
// clients can read and write Google Docs through Markdown.
package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/docs/v1"

	"github.com/docbridge/docbridge/internal/docmd"
	"github.com/docbridge/docbridge/internal/gdocs"
	"github.com/docbridge/docbridge/internal/history"
)

// Docs is the slice of the gdocs client the tools use.
type Docs interface {
	Open(ctx context.Context, documentID string) (*docs.Document, error)
	Apply(ctx context.Context, documentID string, reqs []*docs.Request) error
	Create(ctx context.Context, title string) (string, error)
	List(ctx context.Context, query string, pageSize int64) ([]gdocs.File, error)
}

type Server struct {
	docs     Docs
	history  *history.Store // nil disables the audit log
	log      *log.Logger
	pageSize int64
}

func New(d Docs, hist *history.Store, logger *log.Logger, pageSize int64) *Server {
	if pageSize <= 0 {
		pageSize = 25
	}
	return &Server{docs: d, history: hist, log: logger, pageSize: pageSize}
}

// Run serves MCP over stdio until ctx is cancelled or the client hangs
// up.
func (s *Server) Run(ctx context.Context, version string) error {
	srv := mcp.NewServer(&mcp.Implementation{Name: "docbridge", Version: version}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "docs_read",
		Description: "Read a Google Doc and return its content as Markdown",
	}, s.read)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "docs_append",
		Description: "Append Markdown content to the end of a Google Doc",
	}, s.append)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "docs_insert",
		Description: "Insert Markdown content into a Google Doc at a given index",
	}, s.insert)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "docs_create",
		Description: "Create a new Google Doc, optionally with initial Markdown content",
	}, s.create)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "docs_list",
		Description: "List Google Docs visible to the account, newest first",
	}, s.list)

	s.log.Info("mcp server ready", "tools", 5)
	return srv.Run(ctx, &mcp.StdioTransport{})
}

type readArgs struct {
	DocumentID string `json:"document_id" jsonschema:"the Google Docs document id"`
}

func (s *Server) read(ctx context.Context, _ *mcp.CallToolRequest, args readArgs) (*mcp.CallToolResult, any, error) {
	doc, err := s.docs.Open(ctx, args.DocumentID)
	if err != nil {
		return nil, nil, err
	}
	return textResult(docmd.FromDocument(doc)), nil, nil
}

type appendArgs struct {
	DocumentID string `json:"document_id" jsonschema:"the Google Docs document id"`
	Markdown   string `json:"markdown" jsonschema:"the Markdown content to append"`
}

func (s *Server) append(ctx context.Context, _ *mcp.CallToolRequest, args appendArgs) (*mcp.CallToolResult, any, error) {
	doc, err := s.docs.Open(ctx, args.DocumentID)
	if err != nil {
		return nil, nil, err
	}
	return s.write(ctx, "docs_append", args.DocumentID, args.Markdown, gdocs.EndIndex(doc))
}

type insertArgs struct {
	DocumentID string `json:"document_id" jsonschema:"the Google Docs document id"`
	Markdown   string `json:"markdown" jsonschema:"the Markdown content to insert"`
	Index      int64  `json:"index,omitempty" jsonschema:"UTF-16 offset to insert at; defaults to 1, the start of the body"`
}

func (s *Server) insert(ctx context.Context, _ *mcp.CallToolRequest, args insertArgs) (*mcp.CallToolResult, any, error) {
	index := args.Index
	if index < 1 {
		index = 1
	}
	return s.write(ctx, "docs_insert", args.DocumentID, args.Markdown, index)
}

// write compiles and applies one batch. The compiled requests assume all
// earlier requests have landed, so they go out in a single BatchUpdate.
func (s *Server) write(ctx context.Context, tool, documentID, md string, index int64) (*mcp.CallToolResult, any, error) {
	reqs, end := docmd.Compile(md, index)
	if len(reqs) == 0 {
		return textResult("nothing to insert"), nil, nil
	}
	if err := s.docs.Apply(ctx, documentID, reqs); err != nil {
		return nil, nil, err
	}
	s.record(ctx, tool, documentID, len(reqs), end)
	s.log.Info("applied batch", "tool", tool, "doc", documentID, "requests", len(reqs), "end", end)
	return textResult(fmt.Sprintf("applied %d requests; content ends at index %d", len(reqs), end)), nil, nil
}

type createArgs struct {
	Title    string `json:"title" jsonschema:"title of the new document"`
	Markdown string `json:"markdown,omitempty" jsonschema:"optional initial Markdown content"`
}

func (s *Server) create(ctx context.Context, _ *mcp.CallToolRequest, args createArgs) (*mcp.CallToolResult, any, error) {
	id, err := s.docs.Create(ctx, args.Title)
	if err != nil {
		return nil, nil, err
	}
	if args.Markdown != "" {
		reqs, end := docmd.Compile(args.Markdown, 1)
		if len(reqs) > 0 {
			if err := s.docs.Apply(ctx, id, reqs); err != nil {
				return nil, nil, fmt.Errorf("document %s created but initial content failed: %w", id, err)
			}
			s.record(ctx, "docs_create", id, len(reqs), end)
		}
	}
	s.log.Info("created document", "doc", id, "title", args.Title)
	return textResult(fmt.Sprintf("created document %s", id)), nil, nil
}

type listArgs struct {
	Query string `json:"query,omitempty" jsonschema:"optional name filter"`
}

func (s *Server) list(ctx context.Context, _ *mcp.CallToolRequest, args listArgs) (*mcp.CallToolResult, any, error) {
	files, err := s.docs.List(ctx, args.Query, s.pageSize)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return textResult("no documents found"), nil, nil
	}
	var sb strings.Builder
	for _, f := range files {
		fmt.Fprintf(&sb, "%s\t%s\t%s\n", f.ID, f.Modified, f.Name)
	}
	return textResult(sb.String()), nil, nil
}

// record is best effort: a failed audit write never fails the edit that
// already landed.
func (s *Server) record(ctx context.Context, tool, documentID string, requests int, end int64) {
	if s.history == nil {
		return
	}
	err := s.history.Record(ctx, &history.Entry{
		DocumentID: documentID,
		Tool:       tool,
		Requests:   requests,
		EndIndex:   end,
	})
	if err != nil {
		s.log.Warn("history record failed", "error", err)
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
