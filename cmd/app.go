// ABOUTME: Shared wiring for commands: config, local store, session and backend client
// ABOUTME: Every command opens one app, uses it, and closes it before exiting

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/client"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/config"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/router"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/senderids"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/session"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/sms"
	"github.com/mash20-dot/nkwabiz-frontend-sub000/internal/store"
)

// app is the application context passed to command handlers
type app struct {
	cfg     *config.Config
	db      *store.SQLite
	session *session.Session
	client  *client.Client
	router  *router.Router
	senders *senderids.List
	sms     *sms.Workflow
}

// openApp loads config, opens local state and restores the session
func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newApp(cfg, slog.Default())
}

func newApp(cfg *config.Config, log *slog.Logger) (*app, error) {
	db, err := store.Open(store.DefaultPath(cfg.ConfigDir))
	if err != nil {
		return nil, fmt.Errorf("open local state: %w", err)
	}

	sess := session.New(db)
	if err := sess.Load(); err != nil {
		db.Close()
		return nil, fmt.Errorf("load session: %w", err)
	}

	opts := []client.Option{
		client.WithTimeout(cfg.HTTPTimeout),
		client.WithLogger(log),
	}
	if cfg.SOCKS5Proxy != "" {
		opts = append(opts, client.WithSOCKS5Proxy(cfg.SOCKS5Proxy))
	}
	c := client.New(cfg.APIURL, sess, opts...)

	senders := senderids.New(db)
	limits := sms.Limits{MaxRecipients: cfg.SMSMaxRecipients, UnitPrice: cfg.SMSUnitPrice}

	return &app{
		cfg:     cfg,
		db:      db,
		session: sess,
		client:  c,
		router:  router.New(db),
		senders: senders,
		sms:     sms.NewWorkflow(c, sess, senders, limits, cfg.CategoryCacheTTL),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}
