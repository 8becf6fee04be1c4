package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/ngocminh/silvershop/internal/auth"
	"github.com/ngocminh/silvershop/internal/config"
	"github.com/ngocminh/silvershop/internal/middleware"
	"github.com/ngocminh/silvershop/internal/model"
	"github.com/ngocminh/silvershop/internal/repository"
)

type fakeUserStore struct {
	nextID uint64
	users  map[uint64]model.User
	dup    bool
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: map[uint64]model.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, u *model.User) error {
	if f.dup {
		return repository.ErrDuplicate
	}
	u.ID = f.nextID
	f.nextID++
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserStore) Update(_ context.Context, u *model.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func userTestContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserCreate(t *testing.T) {
	store := newFakeUserStore()
	h := NewUserHandler(config.Config{BcryptCost: 4}, store)

	c, rec := userTestContext(http.MethodPost,
		`{"username":"Minh ","email":"MINH@Example.com","password":"s3cret","full_name":"Ngoc Minh"}`)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	created := store.users[1]
	require.Equal(t, "Minh", created.Username)
	require.Equal(t, "minh@example.com", created.Email)
	require.NotEqual(t, "s3cret", created.PasswordHash)
	require.True(t, auth.VerifyPassword(created.PasswordHash, "s3cret"))
}

func TestUserCreateRejectsShortPassword(t *testing.T) {
	store := newFakeUserStore()
	h := NewUserHandler(config.Config{BcryptCost: 4}, store)

	c, rec := userTestContext(http.MethodPost,
		`{"username":"minh","email":"minh@example.com","password":"abc"}`)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, store.users)
}

func TestUserCreateDuplicate(t *testing.T) {
	store := newFakeUserStore()
	store.dup = true
	h := NewUserHandler(config.Config{BcryptCost: 4}, store)

	c, rec := userTestContext(http.MethodPost,
		`{"username":"minh","email":"minh@example.com","password":"s3cret"}`)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "user already exists", body["error"])
}

func TestUserMe(t *testing.T) {
	h := NewUserHandler(config.Config{}, newFakeUserStore())

	c, rec := userTestContext(http.MethodGet, "")
	c.Set(middleware.CtxUser, model.User{ID: 7, Username: "minh"})
	require.NoError(t, h.Me(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, uint64(7), body.ID)
	require.Equal(t, "minh", body.Username)
}

func TestUserMeWithoutAuthContext(t *testing.T) {
	h := NewUserHandler(config.Config{}, newFakeUserStore())

	c, rec := userTestContext(http.MethodGet, "")
	require.NoError(t, h.Me(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
