package permitrule

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thecodejesters/visaadmin/internal/models"
)

var ErrNotFound = errors.New("permit rule not found")

type Store interface {
	List(ctx context.Context) ([]models.PermitRule, error)
	Get(ctx context.Context, id int64) (*models.PermitRule, error)
	Create(ctx context.Context, in models.PermitRuleInput) (*models.PermitRule, error)
	Update(ctx context.Context, id int64, patch models.PermitRulePatch) (*models.PermitRule, error)
	Delete(ctx context.Context, id int64) error
}

const columns = "id, permit_type, title, rule, category, is_required, updated_at"

const listQuery = "SELECT " + columns + " FROM permit_rules ORDER BY id DESC"

type PgStore struct {
	db *pgxpool.Pool
}

func NewPgStore(db *pgxpool.Pool) *PgStore {
	return &PgStore{db: db}
}

func (s *PgStore) List(ctx context.Context) ([]models.PermitRule, error) {
	rows, err := s.db.Query(ctx, listQuery)
	if err != nil {
		return nil, fmt.Errorf("list permit rules: %w", err)
	}
	defer rows.Close()

	rules := []models.PermitRule{}
	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan permit rule: %w", err)
		}
		rules = append(rules, *r)
	}
	return rules, rows.Err()
}

func (s *PgStore) Get(ctx context.Context, id int64) (*models.PermitRule, error) {
	r, err := scanRule(s.db.QueryRow(ctx, "SELECT "+columns+" FROM permit_rules WHERE id = $1", id))
	if err != nil {
		return nil, notFound(err, "get permit rule")
	}
	return r, nil
}

func (s *PgStore) Create(ctx context.Context, in models.PermitRuleInput) (*models.PermitRule, error) {
	r, err := scanRule(s.db.QueryRow(ctx,
		`INSERT INTO permit_rules (permit_type, title, rule, category, is_required)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+columns,
		in.PermitType, in.Title, in.Rule, in.Category, in.IsRequired,
	))
	if err != nil {
		return nil, fmt.Errorf("insert permit rule: %w", err)
	}
	return r, nil
}

func (s *PgStore) Update(ctx context.Context, id int64, patch models.PermitRulePatch) (*models.PermitRule, error) {
	sets, args := updateSet(patch)
	args = append(args, id)

	query := fmt.Sprintf("UPDATE permit_rules SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), columns)

	r, err := scanRule(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, notFound(err, "update permit rule")
	}
	return r, nil
}

// Delete does not report whether a row was removed.
func (s *PgStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.Exec(ctx, "DELETE FROM permit_rules WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete permit rule: %w", err)
	}
	return nil
}

// updateSet builds the SET list for the fields present in patch. updated_at is
// always refreshed, so an empty patch still touches the row.
func updateSet(p models.PermitRulePatch) ([]string, []any) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.PermitType != nil {
		add("permit_type", *p.PermitType)
	}
	if p.Title != nil {
		add("title", *p.Title)
	}
	if p.Rule != nil {
		add("rule", *p.Rule)
	}
	if p.Category != nil {
		add("category", *p.Category)
	}
	if p.IsRequired != nil {
		add("is_required", *p.IsRequired)
	}
	sets = append(sets, "updated_at = now()")
	return sets, args
}

func scanRule(row pgx.Row) (*models.PermitRule, error) {
	var r models.PermitRule
	if err := row.Scan(&r.ID, &r.PermitType, &r.Title, &r.Rule, &r.Category, &r.IsRequired, &r.UpdatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

func notFound(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
