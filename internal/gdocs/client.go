// Package gdocs wraps the Google Docs and Drive services behind the
// handful of calls the bridge needs.
package gdocs

import (
	"context"
	"fmt"
	"strings"

	"github.com/docbridge/docbridge/internal/config"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
)

type Client struct {
	docs  *docs.Service
	drive *drive.Service
}

// File is one Docs file from a Drive listing.
type File struct {
	ID       string
	Name     string
	Modified string
}

func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	opts, err := clientOptions(ctx, cfg)
	if err != nil {
		return nil, err
	}
	docsSvc, err := docs.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create docs service: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Client{docs: docsSvc, drive: driveSvc}, nil
}

// Open fetches the full document tree.
func (c *Client) Open(ctx context.Context, documentID string) (*docs.Document, error) {
	doc, err := c.docs.Documents.Get(documentID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", documentID, err)
	}
	return doc, nil
}

// Apply submits one compiled request batch. The batch must run in order
// and as a unit: a partial application would leave the offsets of the
// remaining requests pointing at the wrong places, so nothing here
// retries or splits. BatchUpdate itself is atomic on the server side.
func (c *Client) Apply(ctx context.Context, documentID string, reqs []*docs.Request) error {
	if len(reqs) == 0 {
		return nil
	}
	_, err := c.docs.Documents.BatchUpdate(documentID, &docs.BatchUpdateDocumentRequest{
		Requests: reqs,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("batch update %s: %w", documentID, err)
	}
	return nil
}

// Create makes a new empty document and returns its id.
func (c *Client) Create(ctx context.Context, title string) (string, error) {
	doc, err := c.docs.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}
	return doc.DocumentId, nil
}

// List returns Docs files visible to the account, newest first,
// optionally filtered by a name substring.
func (c *Client) List(ctx context.Context, query string, pageSize int64) ([]File, error) {
	res, err := c.drive.Files.List().
		Q(listQuery(query)).
		PageSize(pageSize).
		OrderBy("modifiedTime desc").
		Fields("files(id,name,modifiedTime)").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	files := make([]File, 0, len(res.Files))
	for _, f := range res.Files {
		files = append(files, File{ID: f.Id, Name: f.Name, Modified: f.ModifiedTime})
	}
	return files, nil
}

func listQuery(name string) string {
	q := "mimeType='application/vnd.google-apps.document' and trashed=false"
	if name != "" {
		escaped := strings.ReplaceAll(strings.ReplaceAll(name, `\`, `\\`), "'", `\'`)
		q += fmt.Sprintf(" and name contains '%s'", escaped)
	}
	return q
}

// EndIndex returns the insertion point for appending to a document: one
// position before the immutable newline the body segment always ends
// with. An empty or missing body appends at the start.
func EndIndex(doc *docs.Document) int64 {
	if doc == nil || doc.Body == nil || len(doc.Body.Content) == 0 {
		return 1
	}
	last := doc.Body.Content[len(doc.Body.Content)-1]
	if last == nil || last.EndIndex <= 1 {
		return 1
	}
	return last.EndIndex - 1
}
