package permitrule

import (
	"context"
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
	listCacheKey = "permit_rules:list"
	listGenKey   = "permit_rules:gen"
	resourceType = "permit_rule"
)

// ListCache stores the serialized rule list between mutations.
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

// NewService wires a store with an optional list cache and audit recorder.
func NewService(store Store, c ListCache, recorder audit.Recorder) *Service {
	return &Service{store: store, cache: c, recorder: recorder}
}

func (s *Service) List(ctx context.Context) ([]models.PermitRule, error) {
	key, cached := s.listKey(ctx)
	if cached {
		var rules []models.PermitRule
		err := s.cache.Get(ctx, key, &rules)
		if err == nil {
			return rules, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			slog.Warn("permit rule cache read failed", "error", err)
		}
	}

	rules, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	if cached {
		if err := s.cache.Set(ctx, key, rules); err != nil {
			slog.Warn("permit rule cache write failed", "error", err)
		}
	}
	return rules, nil
}

// listKey names the cached list for the current generation. Every mutation
// advances the generation, and a list stored under an older one is never read.
func (s *Service) listKey(ctx context.Context) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	var gen int64
	if err := s.cache.Get(ctx, listGenKey, &gen); err != nil && !errors.Is(err, cache.ErrMiss) {
		slog.Warn("permit rule cache read failed", "error", err)
		return "", false
	}
	return fmt.Sprintf("%s:%d", listCacheKey, gen), true
}

func (s *Service) Get(ctx context.Context, id int64) (*models.PermitRule, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in models.PermitRuleInput) (*models.PermitRule, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	rule, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.changed(ctx, audit.ActionCreate, rule.ID, map[string]any{"permit_type": rule.PermitType, "title": rule.Title})
	return rule, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch models.PermitRulePatch) (*models.PermitRule, error) {
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}
	rule, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.changed(ctx, audit.ActionUpdate, id, map[string]any{"patch": patch})
	return rule, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.changed(ctx, audit.ActionDelete, id, nil)
	return nil
}

// Clone copies rule id into a new row with a fresh id and timestamp.
func (s *Service) Clone(ctx context.Context, id int64) (*models.PermitRule, error) {
	src, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rule, err := s.store.Create(ctx, src.Input())
	if err != nil {
		return nil, err
	}
	s.changed(ctx, audit.ActionClone, rule.ID, map[string]any{"source_id": id})
	return rule, nil
}

func (s *Service) changed(ctx context.Context, action string, id int64, details map[string]any) {
	if s.cache != nil {
		if err := s.cache.Incr(ctx, listGenKey); err != nil {
			slog.Warn("permit rule cache invalidation failed", "error", err)
		}
	}
	if s.recorder == nil {
		return
	}
	entry := audit.Entry{
		ActorEmail:   identity.EmailFromContext(ctx),
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   &id,
		Details:      details,
	}
	if err := s.recorder.Record(ctx, entry); err != nil {
		slog.Error("failed to record audit entry", "action", action, "resource_id", id, "error", err)
	}
}
