package requireddoc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thecodejesters/visaadmin/internal/models"
)

var ErrNotFound = errors.New("required document not found")

type Store interface {
	List(ctx context.Context) ([]models.RequiredDocument, error)
	Get(ctx context.Context, id int64) (*models.RequiredDocument, error)
	Create(ctx context.Context, in models.RequiredDocumentInput) (*models.RequiredDocument, error)
	Update(ctx context.Context, id int64, patch models.RequiredDocumentPatch) (*models.RequiredDocument, error)
	Delete(ctx context.Context, id int64) error
}

const columns = `id, permit_type, document_name, required_for, is_mandatory, condition,
	description, sort_order, is_active, validation_rules, updated_at`

// listQuery orders documents by sort_order, newest first within the same position.
const listQuery = "SELECT " + columns + " FROM required_documents ORDER BY sort_order ASC, id DESC"

type PgStore struct {
	db *pgxpool.Pool
}

func NewPgStore(db *pgxpool.Pool) *PgStore {
	return &PgStore{db: db}
}

func (s *PgStore) List(ctx context.Context) ([]models.RequiredDocument, error) {
	rows, err := s.db.Query(ctx, listQuery)
	if err != nil {
		return nil, fmt.Errorf("list required documents: %w", err)
	}
	defer rows.Close()

	docs := []models.RequiredDocument{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan required document: %w", err)
		}
		docs = append(docs, *d)
	}
	return docs, rows.Err()
}

func (s *PgStore) Get(ctx context.Context, id int64) (*models.RequiredDocument, error) {
	d, err := scanDocument(s.db.QueryRow(ctx,
		"SELECT "+columns+" FROM required_documents WHERE id = $1", id))
	if err != nil {
		return nil, notFound(err, "get required document")
	}
	return d, nil
}

func (s *PgStore) Create(ctx context.Context, in models.RequiredDocumentInput) (*models.RequiredDocument, error) {
	rules := in.ValidationRules
	if len(rules) == 0 {
		rules = models.EmptyRules
	}

	d, err := scanDocument(s.db.QueryRow(ctx,
		`INSERT INTO required_documents
		   (permit_type, document_name, required_for, is_mandatory, condition,
		    description, sort_order, is_active, validation_rules)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+columns,
		in.PermitType, in.DocumentName, string(in.RequiredFor), in.IsMandatory, in.Condition,
		in.Description, in.SortOrder, in.IsActive, rules,
	))
	if err != nil {
		return nil, fmt.Errorf("insert required document: %w", err)
	}
	return d, nil
}

func (s *PgStore) Update(ctx context.Context, id int64, patch models.RequiredDocumentPatch) (*models.RequiredDocument, error) {
	sets, args := updateSet(patch)
	args = append(args, id)

	query := fmt.Sprintf("UPDATE required_documents SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), columns)

	d, err := scanDocument(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, notFound(err, "update required document")
	}
	return d, nil
}

func (s *PgStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.Exec(ctx, "DELETE FROM required_documents WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete required document: %w", err)
	}
	return nil
}

// updateSet builds the SET list for a patch. An explicit null condition or
// description clears the column.
func updateSet(p models.RequiredDocumentPatch) ([]string, []any) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.PermitType != nil {
		add("permit_type", *p.PermitType)
	}
	if p.DocumentName != nil {
		add("document_name", *p.DocumentName)
	}
	if p.RequiredFor != nil {
		add("required_for", string(*p.RequiredFor))
	}
	if p.IsMandatory != nil {
		add("is_mandatory", *p.IsMandatory)
	}
	if p.Condition.Set {
		add("condition", p.Condition.Value)
	}
	if p.Description.Set {
		add("description", p.Description.Value)
	}
	if p.SortOrder != nil {
		add("sort_order", *p.SortOrder)
	}
	if p.IsActive != nil {
		add("is_active", *p.IsActive)
	}
	if len(p.ValidationRules) > 0 {
		add("validation_rules", p.ValidationRules)
	}
	sets = append(sets, "updated_at = now()")
	return sets, args
}

func scanDocument(row pgx.Row) (*models.RequiredDocument, error) {
	var d models.RequiredDocument
	var requiredFor string
	err := row.Scan(&d.ID, &d.PermitType, &d.DocumentName, &requiredFor, &d.IsMandatory, &d.Condition,
		&d.Description, &d.SortOrder, &d.IsActive, &d.ValidationRules, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.RequiredFor = models.RequiredFor(requiredFor)
	return &d, nil
}

func notFound(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
