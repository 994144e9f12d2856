package api

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/thecodejesters/visaadmin/internal/models"
	"github.com/thecodejesters/visaadmin/internal/permitrule"
	"github.com/thecodejesters/visaadmin/internal/requireddoc"
)

// clock hands out strictly increasing timestamps so updated_at always moves.
type clock struct {
	mu   sync.Mutex
	last time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := time.Now().UTC().Truncate(time.Microsecond)
	if !t.After(c.last) {
		t = c.last.Add(time.Microsecond)
	}
	c.last = t
	return t
}

type ruleStore struct {
	mu     sync.Mutex
	clock  clock
	nextID int64
	rows   map[int64]models.PermitRule
}

func newRuleStore() *ruleStore {
	return &ruleStore{nextID: 1, rows: map[int64]models.PermitRule{}}
}

func (s *ruleStore) List(ctx context.Context) ([]models.PermitRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.PermitRule{}
	for _, r := range s.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *ruleStore) Get(ctx context.Context, id int64) (*models.PermitRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[id]
	if !ok {
		return nil, permitrule.ErrNotFound
	}
	return &r, nil
}

func (s *ruleStore) Create(ctx context.Context, in models.PermitRuleInput) (*models.PermitRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := models.PermitRule{
		ID:         s.nextID,
		PermitType: in.PermitType,
		Title:      in.Title,
		Rule:       in.Rule,
		Category:   in.Category,
		IsRequired: in.IsRequired,
		UpdatedAt:  s.clock.now(),
	}
	s.nextID++
	s.rows[r.ID] = r
	return &r, nil
}

func (s *ruleStore) Update(ctx context.Context, id int64, p models.PermitRulePatch) (*models.PermitRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[id]
	if !ok {
		return nil, permitrule.ErrNotFound
	}
	if p.PermitType != nil {
		r.PermitType = *p.PermitType
	}
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Rule != nil {
		r.Rule = *p.Rule
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.IsRequired != nil {
		r.IsRequired = *p.IsRequired
	}
	r.UpdatedAt = s.clock.now()
	s.rows[id] = r
	return &r, nil
}

func (s *ruleStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
	return nil
}

type docStore struct {
	mu     sync.Mutex
	clock  clock
	nextID int64
	rows   map[int64]models.RequiredDocument
}

func newDocStore() *docStore {
	return &docStore{nextID: 1, rows: map[int64]models.RequiredDocument{}}
}

func (s *docStore) List(ctx context.Context) ([]models.RequiredDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.RequiredDocument{}
	for _, d := range s.rows {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *docStore) Get(ctx context.Context, id int64) (*models.RequiredDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.rows[id]
	if !ok {
		return nil, requireddoc.ErrNotFound
	}
	return &d, nil
}

func (s *docStore) Create(ctx context.Context, in models.RequiredDocumentInput) (*models.RequiredDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rules := in.ValidationRules
	if len(rules) == 0 {
		rules = models.EmptyRules
	}
	d := models.RequiredDocument{
		ID:              s.nextID,
		PermitType:      in.PermitType,
		DocumentName:    in.DocumentName,
		RequiredFor:     in.RequiredFor,
		IsMandatory:     in.IsMandatory,
		Condition:       in.Condition,
		Description:     in.Description,
		SortOrder:       in.SortOrder,
		IsActive:        in.IsActive,
		ValidationRules: rules,
		UpdatedAt:       s.clock.now(),
	}
	s.nextID++
	s.rows[d.ID] = d
	return &d, nil
}

func (s *docStore) Update(ctx context.Context, id int64, p models.RequiredDocumentPatch) (*models.RequiredDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.rows[id]
	if !ok {
		return nil, requireddoc.ErrNotFound
	}
	if p.PermitType != nil {
		d.PermitType = *p.PermitType
	}
	if p.DocumentName != nil {
		d.DocumentName = *p.DocumentName
	}
	if p.RequiredFor != nil {
		d.RequiredFor = *p.RequiredFor
	}
	if p.IsMandatory != nil {
		d.IsMandatory = *p.IsMandatory
	}
	if p.Condition.Set {
		d.Condition = p.Condition.Value
	}
	if p.Description.Set {
		d.Description = p.Description.Value
	}
	if p.SortOrder != nil {
		d.SortOrder = *p.SortOrder
	}
	if p.IsActive != nil {
		d.IsActive = *p.IsActive
	}
	if len(p.ValidationRules) > 0 {
		d.ValidationRules = p.ValidationRules
	}
	d.UpdatedAt = s.clock.now()
	s.rows[id] = d
	return &d, nil
}

func (s *docStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
	return nil
}
