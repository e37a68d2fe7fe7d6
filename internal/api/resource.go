package api

import (
	"context"
	"net/url"
)

// Resource is a typed gateway for one remote collection exposing the four
// verbs the collection controller depends on. T is the entity shape, C the
// create field set, and U the partial update field set (pointer fields with
// omitempty, so omitted fields are left untouched server-side).
type Resource[T, C, U any] struct {
	client *Client
	path   string
	name   string
}

// NewResource creates a typed resource gateway. path is the collection route
// under the API base, e.g. "/patients"; name appears in error messages.
func NewResource[T, C, U any](client *Client, path, name string) *Resource[T, C, U] {
	return &Resource[T, C, U]{client: client, path: path, name: name}
}

// List fetches the full collection in server order.
func (r *Resource[T, C, U]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.client.do(ctx, "list "+r.name, "GET", r.path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create submits a new record and returns the server's canonical copy.
func (r *Resource[T, C, U]) Create(ctx context.Context, fields C) (*T, error) {
	var out T
	if err := r.client.do(ctx, "create "+r.name, "POST", r.path, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update submits a partial field set and returns the updated record.
func (r *Resource[T, C, U]) Update(ctx context.Context, id string, fields U) (*T, error) {
	var out T
	if err := r.client.do(ctx, "update "+r.name, "PUT", r.path+"/"+url.PathEscape(id), fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a record.
func (r *Resource[T, C, U]) Delete(ctx context.Context, id string) error {
	return r.client.do(ctx, "delete "+r.name, "DELETE", r.path+"/"+url.PathEscape(id), nil, nil)
}
