package models

import (
	"encoding/json"
	"time"
)

type RequiredFor string

const (
	RequiredForEmployee RequiredFor = "employee"
	RequiredForEmployer RequiredFor = "employer"
	RequiredForBoth     RequiredFor = "both"
)

type RequiredDocument struct {
	ID              int64           `json:"id" db:"id"`
	PermitType      string          `json:"permit_type" db:"permit_type"`
	DocumentName    string          `json:"document_name" db:"document_name"`
	RequiredFor     RequiredFor     `json:"required_for" db:"required_for"`
	IsMandatory     bool            `json:"is_mandatory" db:"is_mandatory"`
	Condition       *string         `json:"condition" db:"condition"`
	Description     *string         `json:"description" db:"description"`
	SortOrder       int             `json:"sort_order" db:"sort_order"`
	IsActive        bool            `json:"is_active" db:"is_active"`
	ValidationRules json.RawMessage `json:"validation_rules" db:"validation_rules"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

type RequiredDocumentInput struct {
	PermitType      string          `json:"permit_type" validate:"required"`
	DocumentName    string          `json:"document_name" validate:"required"`
	RequiredFor     RequiredFor     `json:"required_for" validate:"required,oneof=employee employer both"`
	IsMandatory     bool            `json:"is_mandatory"`
	Condition       *string         `json:"condition,omitempty"`
	Description     *string         `json:"description,omitempty"`
	SortOrder       int             `json:"sort_order"`
	IsActive        bool            `json:"is_active"`
	ValidationRules json.RawMessage `json:"validation_rules,omitempty"`
}

// RequiredDocumentPatch carries a partial update. Condition and Description
// distinguish "absent" from an explicit null, which clears the column.
type RequiredDocumentPatch struct {
	PermitType      *string         `json:"permit_type,omitempty" validate:"omitnil,min=1"`
	DocumentName    *string         `json:"document_name,omitempty" validate:"omitnil,min=1"`
	RequiredFor     *RequiredFor    `json:"required_for,omitempty" validate:"omitnil,oneof=employee employer both"`
	IsMandatory     *bool           `json:"is_mandatory,omitempty"`
	Condition       OptionalString  `json:"condition,omitzero"`
	Description     OptionalString  `json:"description,omitzero"`
	SortOrder       *int            `json:"sort_order,omitempty"`
	IsActive        *bool           `json:"is_active,omitempty"`
	ValidationRules json.RawMessage `json:"validation_rules,omitempty"`
}

func (d RequiredDocument) Input() RequiredDocumentInput {
	return RequiredDocumentInput{
		PermitType:      d.PermitType,
		DocumentName:    d.DocumentName,
		RequiredFor:     d.RequiredFor,
		IsMandatory:     d.IsMandatory,
		Condition:       d.Condition,
		Description:     d.Description,
		SortOrder:       d.SortOrder,
		IsActive:        d.IsActive,
		ValidationRules: d.ValidationRules,
	}
}

// EmptyRules is stored when a document is created without validation rules.
var EmptyRules = json.RawMessage(`{}`)
