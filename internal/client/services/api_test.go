package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/cmsadmin/internal/client/client"
	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
	"github.com/dmitrijs2005/cmsadmin/internal/client/session"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// fakeAPI is an in-memory stand-in for the CMS backend.
type fakeAPI struct {
	mu           sync.Mutex
	access       string
	refresh      string
	generation   int
	refreshCalls atomic.Int32

	categories []models.Category
	contents   []models.Content

	lastQuery string
	lastForm  map[string]string
	lastFile  string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		refresh: "refresh-1",
		categories: []models.Category{
			{ID: "1", Name: "News"},
			{ID: "2", Name: "Sports"},
		},
		contents: []models.Content{
			{ID: 10, Title: "Opening", Category: "News"},
		},
	}
}

// expire invalidates the current access token without touching the
// refresh token.
func (f *fakeAPI) expire() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access = "revoked"
}

func (f *fakeAPI) revokeRefresh() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refresh = "revoked"
	f.access = "revoked"
}

func (f *fakeAPI) issue() string {
	f.generation++
	f.access = "access-" + strconv.Itoa(f.generation)
	return f.access
}

func reply[T any](w http.ResponseWriter, status int, v T) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.Envelope[T]{
		Success:        status < 300,
		ResponseObject: v,
		StatusCode:     status,
	})
}

func replyError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": msg, "statusCode": status})
}

func (f *fakeAPI) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		ok := f.access != "" && r.Header.Get("Authorization") == "Bearer "+f.access
		f.mu.Unlock()
		if !ok {
			replyError(w, http.StatusForbidden, "token expired")
			return
		}
		next(w, r)
	}
}

func (f *fakeAPI) readForm(r *http.Request) error {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		return err
	}
	form := map[string]string{}
	for k, v := range r.MultipartForm.Value {
		form[k] = v[0]
	}
	var file string
	if fh, ok := r.MultipartForm.File["photo"]; ok && len(fh) > 0 {
		fd, err := fh[0].Open()
		if err != nil {
			return err
		}
		defer fd.Close()
		data, _ := io.ReadAll(fd)
		file = fh[0].Filename + ":" + string(data)
	}

	f.mu.Lock()
	f.lastForm, f.lastFile = form, file
	f.mu.Unlock()
	return nil
}

func (f *fakeAPI) router() http.Handler {
	r := chi.NewRouter()

	r.Post(LoginEndpoint, func(w http.ResponseWriter, r *http.Request) {
		var creds models.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "secret" {
			replyError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		f.mu.Lock()
		res := models.AuthResult{
			User:         models.User{ID: 1, Name: "Admin", Email: creds.Email, Role: models.RoleAdmin},
			Token:        f.issue(),
			RefreshToken: f.refresh,
		}
		f.mu.Unlock()
		reply(w, http.StatusOK, res)
	})

	r.Post(RegisterEndpoint, func(w http.ResponseWriter, r *http.Request) {
		if err := f.readForm(r); err != nil {
			replyError(w, http.StatusBadRequest, err.Error())
			return
		}
		reply(w, http.StatusCreated, models.User{ID: 2})
	})

	r.Post(RefreshEndpoint, func(w http.ResponseWriter, r *http.Request) {
		f.refreshCalls.Add(1)
		var req models.RefreshRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		f.mu.Lock()
		defer f.mu.Unlock()
		if r.Header.Get("Authorization") != "" || req.RefreshToken != f.refresh {
			replyError(w, http.StatusUnauthorized, "invalid refresh token")
			return
		}
		reply(w, http.StatusOK, models.RefreshResult{Token: f.issue()})
	})

	r.Get(CategoriesEndpoint, f.authorized(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.lastQuery = r.URL.RawQuery
		page := models.CategoryPage{Page: 1, Limit: 10, Total: len(f.categories), Categories: append([]models.Category(nil), f.categories...)}
		f.mu.Unlock()
		reply(w, http.StatusOK, page)
	}))
	r.Post(CategoriesEndpoint, f.authorized(func(w http.ResponseWriter, r *http.Request) {
		var in models.CategoryInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.mu.Lock()
		c := models.Category{ID: strconv.Itoa(len(f.categories) + 1), Name: in.Name}
		f.categories = append(f.categories, c)
		f.mu.Unlock()
		reply(w, http.StatusCreated, c)
	}))
	r.Put(CategoriesEndpoint+"/{id}", f.authorized(func(w http.ResponseWriter, r *http.Request) {
		var in models.CategoryInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		id := chi.URLParam(r, "id")
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.categories {
			if f.categories[i].ID == id {
				f.categories[i].Name = in.Name
				reply(w, http.StatusOK, f.categories[i])
				return
			}
		}
		replyError(w, http.StatusNotFound, "category not found")
	}))
	r.Delete(CategoriesEndpoint+"/{id}", f.authorized(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.categories {
			if f.categories[i].ID == id {
				f.categories = append(f.categories[:i], f.categories[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		replyError(w, http.StatusNotFound, "category not found")
	}))

	r.Get(ContentEndpoint, f.authorized(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.lastQuery = r.URL.RawQuery
		page := models.ContentPage{Page: 1, Limit: 10, Total: len(f.contents), Contents: append([]models.Content(nil), f.contents...)}
		f.mu.Unlock()
		reply(w, http.StatusOK, page)
	}))
	r.Get(ContentEndpoint+"/{id}", f.authorized(func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, c := range f.contents {
			if c.ID == id {
				reply(w, http.StatusOK, c)
				return
			}
		}
		replyError(w, http.StatusNotFound, "content not found")
	}))
	r.Post(ContentEndpoint, f.authorized(func(w http.ResponseWriter, r *http.Request) {
		if err := f.readForm(r); err != nil {
			replyError(w, http.StatusBadRequest, err.Error())
			return
		}
		f.mu.Lock()
		c := models.Content{ID: int64(len(f.contents) + 10), Title: f.lastForm["title"], Body: f.lastForm["content"]}
		f.contents = append(f.contents, c)
		f.mu.Unlock()
		reply(w, http.StatusCreated, c)
	}))
	r.Put(ContentEndpoint+"/{id}", f.authorized(func(w http.ResponseWriter, r *http.Request) {
		var in models.ContentInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		reply(w, http.StatusOK, models.Content{ID: id, Title: in.Title, Subtitle: in.Subtitle, Body: in.Body})
	}))
	r.Put(ContentPhotoEndpoint+"/{id}", f.authorized(func(w http.ResponseWriter, r *http.Request) {
		if err := f.readForm(r); err != nil {
			replyError(w, http.StatusBadRequest, err.Error())
			return
		}
		id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		f.mu.Lock()
		photo := strings.SplitN(f.lastFile, ":", 2)[0]
		f.mu.Unlock()
		reply(w, http.StatusOK, models.Content{ID: id, Photo: photo})
	}))
	r.Delete(ContentEndpoint+"/{id}", f.authorized(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	return r
}

type countingNavigator struct {
	redirects atomic.Int32
	expired   atomic.Int32
}

func (n *countingNavigator) RedirectToLogin(context.Context) { n.redirects.Add(1) }
func (n *countingNavigator) SessionExpired(context.Context)  { n.expired.Add(1) }

type harness struct {
	api        *fakeAPI
	store      *session.MemoryStore
	nav        *countingNavigator
	client     *client.HTTPClient
	auth       AuthService
	categories CategoryService
	content    ContentService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	api := newFakeAPI()
	srv := httptest.NewServer(api.router())
	t.Cleanup(srv.Close)

	h := &harness{api: api, store: session.NewMemoryStore(), nav: &countingNavigator{}}
	c, err := client.New(client.Options{BaseURL: srv.URL, Navigator: h.nav}, h.store)
	require.NoError(t, err)

	h.client = c
	h.auth = NewAuthService(c, h.store, nil)
	c.UseRefresher(h.auth)
	h.categories = NewCategoryService(c, nil)
	h.content = NewContentService(c, nil)
	return h
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	_, err := h.auth.Login(context.Background(), models.Credentials{Email: "admin@example.com", Password: "secret"})
	require.NoError(t, err)
}
