package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jomei/notionapi"

	"github.com/cloud30/cloud30-sales-api/config"
)

// ActivityEntry is one row of the workspace database log.
type ActivityEntry struct {
	Title     string    `json:"title"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// WorkspaceLogInterface defines the secondary document log. It is
// read/append only and never participates in reconciliation; callers treat
// failures as non-fatal.
type WorkspaceLogInterface interface {
	// LogActivity appends one entry to the workspace database.
	LogActivity(ctx context.Context, title, detail string) error

	// RecentActivity returns the newest entries, most recent first.
	RecentActivity(ctx context.Context, limit int) ([]ActivityEntry, error)
}

// NotionService implements WorkspaceLogInterface against a Notion database.
type NotionService struct {
	client     *notionapi.Client
	databaseID notionapi.DatabaseID
	logger     *slog.Logger
}

var workspaceLogInstance WorkspaceLogInterface

// InitNotionService builds the Notion client from configuration and installs
// it as the process-wide workspace log.
func InitNotionService(cfg *config.Config, logger *slog.Logger) WorkspaceLogInterface {
	workspaceLogInstance = &NotionService{
		client:     notionapi.NewClient(notionapi.Token(cfg.NotionToken)),
		databaseID: notionapi.DatabaseID(cfg.NotionDatabaseID),
		logger:     logger.With("component", "notion"),
	}
	return workspaceLogInstance
}

// GetWorkspaceLog returns the initialized workspace log instance.
func GetWorkspaceLog() WorkspaceLogInterface {
	return workspaceLogInstance
}

// SetWorkspaceLog sets the workspace log instance (primarily for testing).
func SetWorkspaceLog(log WorkspaceLogInterface) {
	workspaceLogInstance = log
}

// LogActivity appends a page to the configured database with a Name title
// and a Detail rich-text property.
func (s *NotionService) LogActivity(ctx context.Context, title, detail string) error {
	_, err := s.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: s.databaseID,
		},
		Properties: notionapi.Properties{
			"Name": notionapi.TitleProperty{
				Title: []notionapi.RichText{
					{Text: &notionapi.Text{Content: title}},
				},
			},
			"Detail": notionapi.RichTextProperty{
				RichText: []notionapi.RichText{
					{Text: &notionapi.Text{Content: detail}},
				},
			},
		},
	})
	if err != nil {
		return upstream("notion", err)
	}
	return nil
}

// RecentActivity queries the database, newest pages first.
func (s *NotionService) RecentActivity(ctx context.Context, limit int) ([]ActivityEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	resp, err := s.client.Database.Query(ctx, s.databaseID, &notionapi.DatabaseQueryRequest{
		PageSize: limit,
		Sorts: []notionapi.SortObject{
			{Timestamp: notionapi.TimestampCreated, Direction: notionapi.SortOrderDESC},
		},
	})
	if err != nil {
		return nil, upstream("notion", err)
	}

	entries := make([]ActivityEntry, 0, len(resp.Results))
	for _, page := range resp.Results {
		entries = append(entries, ActivityEntry{
			Title:     plainText(page.Properties["Name"]),
			Detail:    plainText(page.Properties["Detail"]),
			CreatedAt: page.CreatedTime,
		})
	}
	return entries, nil
}

func plainText(prop notionapi.Property) string {
	var parts []notionapi.RichText
	switch p := prop.(type) {
	case *notionapi.TitleProperty:
		parts = p.Title
	case *notionapi.RichTextProperty:
		parts = p.RichText
	default:
		return ""
	}
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(part.PlainText)
	}
	return b.String()
}
