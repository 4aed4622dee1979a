package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

// ListEntriesQuery reads a page of the audit log. Non-officer callers are
// pinned to their own entries regardless of the requested actor filter.
type ListEntriesQuery struct {
	CallerSID       string
	CallerIsOfficer bool
	ActorID         string
	Action          string
	EntityType      string
	EntityID        string
	Page            int
	PageSize        int
}

type EntryView struct {
	Seq           uint64 `json:"seq"`
	ActorID       string `json:"actor_id"`
	Action        string `json:"action"`
	EntityType    string `json:"entity_type"`
	EntityID      string `json:"entity_id"`
	IP            string `json:"ip"`
	Device        string `json:"device"`
	Timestamp     string `json:"timestamp"`
	PayloadDigest string `json:"payload_digest"`
	PrevHash      string `json:"prev_hash"`
	EntryHash     string `json:"entry_hash"`
}

type ListEntriesResult struct {
	Entries []EntryView
	Total   int64
}

type ListEntriesUseCase struct {
	entries audit.Repository
	logger  logger.Interface
}

func NewListEntriesUseCase(entries audit.Repository, logger logger.Interface) *ListEntriesUseCase {
	return &ListEntriesUseCase{
		entries: entries,
		logger:  logger,
	}
}

func (uc *ListEntriesUseCase) Execute(ctx context.Context, query ListEntriesQuery) (*ListEntriesResult, error) {
	if query.CallerSID == "" {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}

	filter := audit.ListFilter{
		Page:       query.Page,
		PageSize:   query.PageSize,
		ActorID:    query.ActorID,
		Action:     query.Action,
		EntityType: query.EntityType,
		EntityID:   query.EntityID,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	if !query.CallerIsOfficer {
		filter.ActorID = query.CallerSID
	}

	entries, total, err := uc.entries.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list audit entries", "error", err)
		return nil, apperrors.NewInternalError("failed to list audit entries")
	}

	views := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, EntryView{
			Seq:           e.Seq(),
			ActorID:       e.ActorID(),
			Action:        e.Action(),
			EntityType:    e.EntityType(),
			EntityID:      e.EntityID(),
			IP:            e.IP(),
			Device:        e.Device(),
			Timestamp:     e.Timestamp().Format(time.RFC3339),
			PayloadDigest: e.PayloadDigest(),
			PrevHash:      e.PrevHash(),
			EntryHash:     e.EntryHash(),
		})
	}

	return &ListEntriesResult{Entries: views, Total: total}, nil
}
