package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/cmsadmin/internal/client/client"
	"github.com/dmitrijs2005/cmsadmin/internal/client/config"
	"github.com/dmitrijs2005/cmsadmin/internal/client/models"
	"github.com/dmitrijs2005/cmsadmin/internal/client/services"
	"github.com/dmitrijs2005/cmsadmin/internal/client/session"
	"github.com/dmitrijs2005/cmsadmin/internal/logging"
)

type App struct {
	config *config.Config
	logger logging.Logger

	db              *sql.DB
	authService     services.AuthService
	categoryService services.CategoryService
	contentService  services.ContentService

	reader *bufio.Reader
	out    io.Writer

	mu   sync.Mutex
	user *models.User
	// expiredShown is set when the session-expired notice has been printed
	// and not yet consumed by report.
	expiredShown bool
}

var _ client.Navigator = (*App)(nil)

// NewApp opens the session store named by the config and builds the API
// client and services on top of it.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	a := &App{
		config: c,
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}

	apiClient, err := client.New(client.Options{
		BaseURL:         c.APIBaseURL,
		Timeout:         c.RequestTimeout,
		RefreshStatuses: c.RefreshStatuses,
		AuthPaths:       c.AuthPaths,
		Logger:          logger,
		Navigator:       a,
	}, store)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.authService = services.NewAuthService(apiClient, store, logger)
	apiClient.UseRefresher(a.authService)
	a.categoryService = services.NewCategoryService(apiClient, logger)
	a.contentService = services.NewContentService(apiClient, logger)

	if a.user, err = a.authService.CurrentUser(ctx); err != nil {
		logger.Warn(ctx, "stored session is unreadable, starting logged out", "error", err)
		a.user = nil
	}
	return a, nil
}

func (a *App) openStore(ctx context.Context) (session.Store, error) {
	if a.config.InMemorySession() {
		return session.NewMemoryStore(), nil
	}

	db, err := session.OpenDatabase(ctx, a.config.SessionDSN)
	if err != nil {
		a.logger.Error(ctx, "error initializing session database", "dsn", a.config.SessionDSN, "error", err)
		return nil, err
	}
	a.db = db

	store, err := session.NewSQLiteStore(ctx, db, a.config.SessionPassphrase)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return store, nil
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) currentUser() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

func (a *App) setUser(u *models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = u
	if u != nil {
		a.expiredShown = false
	}
}

func (a *App) isLoggedIn() bool {
	return a.currentUser() != nil
}

func (a *App) isAdmin() bool {
	u := a.currentUser()
	return u != nil && u.Role.IsAdmin()
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
