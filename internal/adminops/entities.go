package adminops

import (
	"context"

	"github.com/thecodejesters/visaadmin/internal/models"
)

type PermitRules struct {
	res resource[models.PermitRule, models.PermitRuleInput, models.PermitRulePatch]
}

func NewPermitRules(d Doer) *PermitRules {
	return &PermitRules{res: resource[models.PermitRule, models.PermitRuleInput, models.PermitRulePatch]{
		doer:  d,
		path:  "/api/permit-rules",
		name:  "permit rule",
		strip: models.PermitRule.Input,
	}}
}

// GetAll returns rules newest first, or an empty slice if the call failed.
func (p *PermitRules) GetAll(ctx context.Context) []models.PermitRule {
	return p.res.getAll(ctx)
}

func (p *PermitRules) GetByID(ctx context.Context, id int64) (*models.PermitRule, error) {
	return p.res.getByID(ctx, id)
}

func (p *PermitRules) Create(ctx context.Context, in models.PermitRuleInput) *models.PermitRule {
	return p.res.create(ctx, in)
}

func (p *PermitRules) Update(ctx context.Context, id int64, patch models.PermitRulePatch) *models.PermitRule {
	return p.res.update(ctx, id, patch)
}

func (p *PermitRules) Delete(ctx context.Context, id int64) bool {
	return p.res.delete(ctx, id)
}

func (p *PermitRules) Clone(ctx context.Context, id int64) (*models.PermitRule, error) {
	return p.res.clone(ctx, id)
}

type RequiredDocuments struct {
	res resource[models.RequiredDocument, models.RequiredDocumentInput, models.RequiredDocumentPatch]
}

func NewRequiredDocuments(d Doer) *RequiredDocuments {
	return &RequiredDocuments{res: resource[models.RequiredDocument, models.RequiredDocumentInput, models.RequiredDocumentPatch]{
		doer:  d,
		path:  "/api/required-documents",
		name:  "required document",
		strip: models.RequiredDocument.Input,
	}}
}

// GetAll returns documents by ascending sort_order then descending id, or an
// empty slice if the call failed.
func (r *RequiredDocuments) GetAll(ctx context.Context) []models.RequiredDocument {
	return r.res.getAll(ctx)
}

func (r *RequiredDocuments) GetByID(ctx context.Context, id int64) (*models.RequiredDocument, error) {
	return r.res.getByID(ctx, id)
}

func (r *RequiredDocuments) Create(ctx context.Context, in models.RequiredDocumentInput) *models.RequiredDocument {
	return r.res.create(ctx, in)
}

func (r *RequiredDocuments) Update(ctx context.Context, id int64, patch models.RequiredDocumentPatch) *models.RequiredDocument {
	return r.res.update(ctx, id, patch)
}

func (r *RequiredDocuments) Delete(ctx context.Context, id int64) bool {
	return r.res.delete(ctx, id)
}

func (r *RequiredDocuments) Clone(ctx context.Context, id int64) (*models.RequiredDocument, error) {
	return r.res.clone(ctx, id)
}
