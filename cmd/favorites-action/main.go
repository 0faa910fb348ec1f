package main

import (
	"context"
	"net/http"
	"sync"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ybbus/jsonrpc"

	"github.com/code-payments/favorites-action/pkg/app"
	"github.com/code-payments/favorites-action/pkg/code/server/web/favorites"
	"github.com/code-payments/favorites-action/pkg/metrics"
	"github.com/code-payments/favorites-action/pkg/solana"
)

type favoritesActionApp struct {
	log *logrus.Entry

	metricsProvider *newrelic.Application
	server          *favorites.Server

	shutdownOnce sync.Once
	shutdownCh   chan struct{}
}

// Init implements app.App.Init
func (a *favoritesActionApp) Init(_ app.Config, metricsProvider *newrelic.Application) error {
	conf, err := favorites.LoadConfig(context.Background(), favorites.WithEnvConfigs())
	if err != nil {
		return errors.Wrap(err, "failed to load favorites action config")
	}

	rpc := solana.NewWithRPCOptions(conf.RpcEndpoint, &jsonrpc.RPCClientOpts{
		HTTPClient: &http.Client{Timeout: conf.RpcTimeout},
	})

	a.metricsProvider = metricsProvider
	a.server = favorites.NewFavoritesActionServer(conf, rpc)

	a.log.WithFields(logrus.Fields{
		"cluster":      conf.Cluster,
		"rpc_endpoint": conf.RpcEndpoint,
	}).Info("favorites action initialized")

	return nil
}

// RegisterWithHTTP implements app.App.RegisterWithHTTP
func (a *favoritesActionApp) RegisterWithHTTP(mux *http.ServeMux) {
	for pattern, handler := range a.server.GetHandlers() {
		mux.HandleFunc(pattern, metrics.WrapHandleFunc(a.metricsProvider, pattern, handler))
	}
}

// ShutdownChan implements app.App.ShutdownChan
func (a *favoritesActionApp) ShutdownChan() <-chan struct{} {
	return a.shutdownCh
}

// Stop implements app.App.Stop
func (a *favoritesActionApp) Stop() {
	a.shutdownOnce.Do(func() {
		close(a.shutdownCh)
	})
}

func main() {
	favoritesApp := &favoritesActionApp{
		log:        logrus.StandardLogger().WithField("type", "favorites-action"),
		shutdownCh: make(chan struct{}),
	}

	if err := app.Run(favoritesApp); err != nil {
		logrus.WithError(err).Fatal("error running service")
	}
}
