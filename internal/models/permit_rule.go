package models

import "time"

type PermitRule struct {
	ID         int64     `json:"id" db:"id"`
	PermitType string    `json:"permit_type" db:"permit_type"`
	Title      string    `json:"title" db:"title"`
	Rule       string    `json:"rule" db:"rule"`
	Category   string    `json:"category" db:"category"`
	IsRequired bool      `json:"is_required" db:"is_required"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// PermitRuleInput is a permit rule without its store-assigned fields.
type PermitRuleInput struct {
	PermitType string `json:"permit_type" validate:"required"`
	Title      string `json:"title" validate:"required"`
	Rule       string `json:"rule" validate:"required"`
	Category   string `json:"category" validate:"required"`
	IsRequired bool   `json:"is_required"`
}

// PermitRulePatch carries the fields of a partial update; nil fields are left unchanged.
type PermitRulePatch struct {
	PermitType *string `json:"permit_type,omitempty" validate:"omitnil,min=1"`
	Title      *string `json:"title,omitempty" validate:"omitnil,min=1"`
	Rule       *string `json:"rule,omitempty" validate:"omitnil,min=1"`
	Category   *string `json:"category,omitempty" validate:"omitnil,min=1"`
	IsRequired *bool   `json:"is_required,omitempty"`
}

// Input strips the id and updated_at of r.
func (r PermitRule) Input() PermitRuleInput {
	return PermitRuleInput{
		PermitType: r.PermitType,
		Title:      r.Title,
		Rule:       r.Rule,
		Category:   r.Category,
		IsRequired: r.IsRequired,
	}
}
