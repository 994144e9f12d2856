package requireddoc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thecodejesters/visaadmin/internal/audit"
	"github.com/thecodejesters/visaadmin/internal/cache"
	"github.com/thecodejesters/visaadmin/internal/identity"
	"github.com/thecodejesters/visaadmin/internal/models"
	"github.com/thecodejesters/visaadmin/internal/validation"
)

const (
	listCacheKey = "required_documents:list"
	listGenKey   = "required_documents:gen"
	resourceType = "required_document"
)

type ListCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Incr(ctx context.Context, key string) error
}

type Service struct {
	store    Store
	cache    ListCache
	recorder audit.Recorder
}

func NewService(store Store, c ListCache, recorder audit.Recorder) *Service {
	return &Service{store: store, cache: c, recorder: recorder}
}

func (s *Service) List(ctx context.Context) ([]models.RequiredDocument, error) {
	key, cached := s.listKey(ctx)
	if cached {
		var docs []models.RequiredDocument
		switch err := s.cache.Get(ctx, key, &docs); {
		case err == nil:
			return docs, nil
		case !errors.Is(err, cache.ErrMiss):
			slog.Warn("required document cache read failed", "error", err)
		}
	}

	docs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if cached {
		if err := s.cache.Set(ctx, key, docs); err != nil {
			slog.Warn("required document cache write failed", "error", err)
		}
	}
	return docs, nil
}

// listKey returns the list key for the current generation; mutations bump it.
func (s *Service) listKey(ctx context.Context) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	var gen int64
	switch err := s.cache.Get(ctx, listGenKey, &gen); {
	case err == nil, errors.Is(err, cache.ErrMiss):
		return fmt.Sprintf("%s:%d", listCacheKey, gen), true
	default:
		slog.Warn("required document cache read failed", "error", err)
		return "", false
	}
}

func (s *Service) Get(ctx context.Context, id int64) (*models.RequiredDocument, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in models.RequiredDocumentInput) (*models.RequiredDocument, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := checkRules(in.ValidationRules); err != nil {
		return nil, err
	}

	doc, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.changed(ctx, audit.ActionCreate, doc.ID, map[string]any{
		"permit_type":   doc.PermitType,
		"document_name": doc.DocumentName,
	})
	return doc, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch models.RequiredDocumentPatch) (*models.RequiredDocument, error) {
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}
	if err := checkRules(patch.ValidationRules); err != nil {
		return nil, err
	}

	doc, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.changed(ctx, audit.ActionUpdate, id, map[string]any{"patch": patch})
	return doc, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.changed(ctx, audit.ActionDelete, id, nil)
	return nil
}

func (s *Service) Clone(ctx context.Context, id int64) (*models.RequiredDocument, error) {
	src, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	doc, err := s.store.Create(ctx, src.Input())
	if err != nil {
		return nil, err
	}
	s.changed(ctx, audit.ActionClone, doc.ID, map[string]any{"source_id": id})
	return doc, nil
}

func (s *Service) changed(ctx context.Context, action string, id int64, details map[string]any) {
	if s.cache != nil {
		if err := s.cache.Incr(ctx, listGenKey); err != nil {
			slog.Warn("required document cache invalidation failed", "error", err)
		}
	}
	if s.recorder == nil {
		return
	}
	err := s.recorder.Record(ctx, audit.Entry{
		ActorEmail:   identity.EmailFromContext(ctx),
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   &id,
		Details:      details,
	})
	if err != nil {
		slog.Error("failed to record audit entry", "action", action, "resource_id", id, "error", err)
	}
}

// checkRules accepts an absent value or any JSON object; the content is not interpreted.
func checkRules(raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	trimmed := bytes.TrimSpace(raw)
	if !json.Valid(trimmed) || len(trimmed) == 0 || trimmed[0] != '{' {
		return &validation.Error{Fields: []string{"validation_rules must be a JSON object"}}
	}
	return nil
}
