// Package adminops exposes typed admin operations on top of the failover API
// client. Bulk reads degrade to an empty slice, mutations to nil or false, so
// call sites only check for the sentinel; the cause is logged.
package adminops

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/thecodejesters/visaadmin/internal/apiclient"
)

// ErrCloneFailed is returned by Clone when the source was read but the copy
// could not be created.
var ErrCloneFailed = errors.New("clone: create failed")

// Doer is satisfied by *apiclient.Client.
type Doer interface {
	Do(ctx context.Context, req apiclient.Request, out any) error
}

// resource implements the operations shared by both entities. T is the stored
// entity, In its create payload and P its partial update payload.
type resource[T, In, P any] struct {
	doer  Doer
	path  string
	name  string
	strip func(T) In
}

func (r resource[T, In, P]) getAll(ctx context.Context) []T {
	var out []T
	if err := r.doer.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: r.path}, &out); err != nil {
		slog.Error("list "+r.name+"s failed", "error", err)
		return []T{}
	}
	if out == nil {
		out = []T{}
	}
	return out
}

func (r resource[T, In, P]) getByID(ctx context.Context, id int64) (*T, error) {
	var out T
	if err := r.doer.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: r.itemPath(id)}, &out); err != nil {
		return nil, fmt.Errorf("get %s %d: %w", r.name, id, err)
	}
	return &out, nil
}

func (r resource[T, In, P]) create(ctx context.Context, in In) *T {
	var out T
	if err := r.doer.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: r.path, Body: in}, &out); err != nil {
		slog.Error("create "+r.name+" failed", "error", err)
		return nil
	}
	return &out
}

func (r resource[T, In, P]) update(ctx context.Context, id int64, patch P) *T {
	var out T
	if err := r.doer.Do(ctx, apiclient.Request{Method: http.MethodPut, Path: r.itemPath(id), Body: patch}, &out); err != nil {
		slog.Error("update "+r.name+" failed", "id", id, "error", err)
		return nil
	}
	return &out
}

func (r resource[T, In, P]) delete(ctx context.Context, id int64) bool {
	if err := r.doer.Do(ctx, apiclient.Request{Method: http.MethodDelete, Path: r.itemPath(id)}, nil); err != nil {
		slog.Error("delete "+r.name+" failed", "id", id, "error", err)
		return false
	}
	return true
}

// clone reads the source and creates a copy without its id and updated_at.
// The two calls are not transactional; a failed create leaves nothing behind.
func (r resource[T, In, P]) clone(ctx context.Context, id int64) (*T, error) {
	src, err := r.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	created := r.create(ctx, r.strip(*src))
	if created == nil {
		return nil, fmt.Errorf("%s %d: %w", r.name, id, ErrCloneFailed)
	}
	return created, nil
}

func (r resource[T, In, P]) itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", r.path, id)
}
