package publicfiles

import (
	"path/filepath"
	"strings"
	"time"

	dtos "github.com/Open-Source-Life/AxolotlIndex/DTOs"
	"github.com/Open-Source-Life/AxolotlIndex/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const readDirectoryError = "Failed to read directory"

// Diagnostics produces the host snapshot attached to paginated listings.
type Diagnostics interface {
	Snapshot(dir string) dtos.SystemInfo
}

type PublicFilesService struct {
	publicDir   string
	wsHub       *WebSocketHub
	diagnostics Diagnostics
	debug       bool
}

func NewPublicFilesService(publicDir string, wsHub *WebSocketHub, diagnostics Diagnostics) *PublicFilesService {
	return &PublicFilesService{
		publicDir:   publicDir,
		wsHub:       wsHub,
		diagnostics: diagnostics,
	}
}

// EnableDebug makes error responses carry the underlying error text.
func (p *PublicFilesService) EnableDebug() {
	p.debug = true
}

// ListItems returns every folder and allow-listed file, folders first and
// each group ordered by name. requestID is echoed in error responses; an
// empty one is replaced by a fresh uuid.
func (p *PublicFilesService) ListItems(requestID string) (*dtos.ListResponse, *dtos.ErrorResponse) {
	scan, items, err := p.collect("", NameAscendingFoldersFirst)
	if err != nil {
		return nil, p.errorResponse(err, requestID, false)
	}

	out := make([]dtos.ListItem, 0, len(items))
	for _, entry := range items {
		out = append(out, p.toListItem(entry))
	}

	return &dtos.ListResponse{
		Success:    true,
		Items:      out,
		TotalCount: scan.total(),
		Path:       p.publicDir,
	}, nil
}

// ListItemsPaginated filters by search, orders by priority and recency and
// returns the requested page together with statistics over the whole
// filtered set.
func (p *PublicFilesService) ListItemsPaginated(query dtos.ListQuery) (*dtos.PaginatedResponse, *dtos.ErrorResponse) {
	search := strings.TrimSpace(query.Search)
	policy := PriorityThenRecency

	scan, items, err := p.collect(search, policy)
	if err != nil {
		return nil, p.errorResponse(err, query.RequestID, true)
	}

	page := Paginate(len(items), query.Page, query.ItemsPerPage)
	paged := page.Slice(items)

	out := make([]dtos.DetailedItem, 0, len(paged))
	for _, entry := range paged {
		out = append(out, p.toDetailedItem(entry))
	}

	resp := &dtos.PaginatedResponse{
		Success: true,
		Items:   out,
		Pagination: dtos.Pagination{
			CurrentPage:  page.CurrentPage,
			TotalPages:   page.TotalPages,
			ItemsPerPage: page.ItemsPerPage,
			TotalItems:   page.TotalItems,
			ShowingFrom:  page.ShowingFrom(),
			ShowingTo:    page.ShowingTo(),
			HasPrevious:  page.HasPrevious(),
			HasNext:      page.HasNext(),
			PreviousPage: page.PreviousPage(),
			NextPage:     page.NextPage(),
		},
		Statistics: statisticsFor(scan, len(paged)),
		Filters: dtos.Filters{
			Search:       search,
			Page:         page.CurrentPage,
			ItemsPerPage: page.ItemsPerPage,
		},
		Path:      p.publicDir,
		Timestamp: time.Now().Unix(),
		SortedBy:  policy.String(),
	}

	if p.diagnostics != nil {
		info := p.diagnostics.Snapshot(p.publicDir)
		resp.SystemInfo = &info
	}

	return resp, nil
}

func (p *PublicFilesService) collect(search string, policy SortPolicy) (scanResult, []Entry, error) {
	created, err := p.ensurePublicDir()
	if err != nil {
		return scanResult{}, nil, err
	}
	if created {
		log.Info().Str("path", p.publicDir).Msg("Created public directory")
		p.notifyWebSocket("directory_created", map[string]interface{}{
			"path":       p.publicDir,
			"created_at": time.Now().Unix(),
		})
	}

	scan, err := scanDirectory(p.publicDir, search)
	if err != nil {
		return scanResult{}, nil, err
	}

	return scan, orderEntries(scan, policy), nil
}

func statisticsFor(scan scanResult, displayed int) dtos.Statistics {
	images := 0
	for _, file := range scan.files {
		if file.IsImage {
			images++
		}
	}

	return dtos.Statistics{
		TotalItems:     scan.total(),
		TotalFiles:     len(scan.files),
		TotalFolders:   len(scan.folders),
		TotalImages:    images,
		DisplayedItems: displayed,
	}
}

func (p *PublicFilesService) toListItem(entry Entry) dtos.ListItem {
	item := dtos.ListItem{
		Name:     entry.Name,
		Type:     entry.Kind.String(),
		Modified: entry.ModifiedAt.Format(timeLayout),
	}

	if entry.IsDir() {
		item.Icon = folderIcon
		item.Size = folderSize
		return item
	}

	size := entry.SizeBytes
	image := entry.IsImage
	item.Extension = entry.Extension
	item.Icon = fileIcon(entry.Extension)
	item.Size = utils.FormatFileSize(size)
	item.SizeBytes = &size
	item.Path = filepath.Join(p.publicDir, entry.Name)
	item.IsImage = &image
	return item
}

func (p *PublicFilesService) toDetailedItem(entry Entry) dtos.DetailedItem {
	item := dtos.DetailedItem{
		Name:              entry.Name,
		Type:              entry.Kind.String(),
		Modified:          entry.ModifiedAt.Format(timeLayout),
		ModifiedTimestamp: entry.ModifiedAt.Unix(),
		Created:           entry.CreatedAt.Format(timeLayout),
		CreatedTimestamp:  entry.CreatedAt.Unix(),
		Path:              filepath.Join(p.publicDir, entry.Name),
		IsImage:           entry.IsImage,
		Priority:          entry.SortPriority,
	}

	if entry.IsDir() {
		item.Icon = folderIcon
		item.Size = folderSize
		return item
	}

	size := entry.SizeBytes
	item.Extension = entry.Extension
	item.Icon = detailedFileIcon(entry.Extension)
	item.Size = utils.FormatFileSize(size)
	item.SizeBytes = &size
	return item
}

func (p *PublicFilesService) errorResponse(err error, requestID string, withTimestamp bool) *dtos.ErrorResponse {
	if requestID == "" {
		requestID = uuid.New().String()
	}
	log.Error().Err(err).Str("request_id", requestID).Str("path", p.publicDir).Msg("Listing failed")

	resp := &dtos.ErrorResponse{
		Success:   false,
		Error:     readDirectoryError,
		RequestID: requestID,
	}
	if withTimestamp {
		resp.Timestamp = time.Now().Unix()
	}
	if p.debug {
		resp.Debug = ptrString(err.Error())
	}
	return resp
}

func (p *PublicFilesService) notifyWebSocket(eventType string, data interface{}) {
	if p.wsHub != nil {
		msg := dtos.WebSocketMessage{
			EventType: eventType,
			Data:      data,
			Timestamp: time.Now().Unix(),
		}
		p.wsHub.Broadcast(msg)
	}
}

func ptrString(s string) *string {
	return &s
}
