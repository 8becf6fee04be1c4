package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ngocminh/silvershop/internal/model"
	"github.com/ngocminh/silvershop/internal/repository"
)

type fakeRoleStore struct {
	roles map[string]model.Role
}

func (f *fakeRoleStore) Create(_ context.Context, role *model.Role) error {
	if _, ok := f.roles[role.Name]; ok {
		return repository.ErrDuplicate
	}
	role.ID = uint64(len(f.roles) + 1)
	f.roles[role.Name] = *role
	return nil
}

func (f *fakeRoleStore) GetByID(_ context.Context, id uint64) (model.Role, error) {
	for _, r := range f.roles {
		if r.ID == id {
			return r, nil
		}
	}
	return model.Role{}, repository.ErrNotFound
}

func (f *fakeRoleStore) List(_ context.Context) ([]model.Role, error) {
	var out []model.Role
	for _, r := range f.roles {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRoleStore) Update(_ context.Context, role *model.Role) error {
	return nil
}

func (f *fakeRoleStore) Delete(_ context.Context, id uint64) error {
	return nil
}

func TestRoleCreate(t *testing.T) {
	h := NewRoleHandler(&fakeRoleStore{roles: map[string]model.Role{}})

	c, rec := userTestContext(http.MethodPost, `{"name":"SUPPORT","description":"support staff"}`)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestRoleCreateDuplicateIsNotANotFound(t *testing.T) {
	store := &fakeRoleStore{roles: map[string]model.Role{
		"SUPPORT": {ID: 1, Name: "SUPPORT"},
	}}
	h := NewRoleHandler(store)

	c, rec := userTestContext(http.MethodPost, `{"name":"SUPPORT"}`)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "role already exists", body["error"])
}

func TestRoleCreateRequiresName(t *testing.T) {
	h := NewRoleHandler(&fakeRoleStore{roles: map[string]model.Role{}})

	c, rec := userTestContext(http.MethodPost, `{"description":"no name"}`)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
