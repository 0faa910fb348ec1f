package favorites

import (
	"context"
	"crypto/ed25519"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"github.com/code-payments/favorites-action/pkg/actions"
	"github.com/code-payments/favorites-action/pkg/config"
	"github.com/code-payments/favorites-action/pkg/config/env"
	"github.com/code-payments/favorites-action/pkg/config/memory"
	"github.com/code-payments/favorites-action/pkg/config/wrapper"
	"github.com/code-payments/favorites-action/pkg/solana"
)

const (
	envConfigPrefix = "FAVORITES_ACTION_"

	ClusterConfigEnvName = envConfigPrefix + "CLUSTER"
	defaultCluster       = string(solana.ClusterDevnet)

	// Defaults to the public endpoint of the configured cluster
	RpcEndpointConfigEnvName = envConfigPrefix + "RPC_ENDPOINT"
	defaultRpcEndpoint       = ""

	RpcTimeoutConfigEnvName = envConfigPrefix + "RPC_TIMEOUT"
	defaultRpcTimeout       = solana.DefaultTimeout

	ProgramIdConfigEnvName = envConfigPrefix + "PROGRAM_ID"
	defaultProgramId       = "4Pm9xVzVsQJMmodRdANm28UapsES4Ffy13AKeSPuEtqy"

	IconPathConfigEnvName = envConfigPrefix + "ICON_PATH"
	defaultIconPath       = "/donate-sol.jpg"

	// Optional absolute URL the icon path is resolved against instead of the
	// incoming request
	BaseUrlConfigEnvName = envConfigPrefix + "BASE_URL"
	defaultBaseUrl       = ""

	ServeActionsJsonConfigEnvName = envConfigPrefix + "SERVE_ACTIONS_JSON"
	defaultServeActionsJson       = true
)

type conf struct {
	cluster          config.String
	rpcEndpoint      config.String
	rpcTimeout       config.Duration
	programId        config.String
	iconPath         config.String
	baseUrl          config.String
	serveActionsJson config.Bool
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			cluster:          env.NewStringConfig(ClusterConfigEnvName, defaultCluster),
			rpcEndpoint:      env.NewStringConfig(RpcEndpointConfigEnvName, defaultRpcEndpoint),
			rpcTimeout:       env.NewDurationConfig(RpcTimeoutConfigEnvName, defaultRpcTimeout),
			programId:        env.NewStringConfig(ProgramIdConfigEnvName, defaultProgramId),
			iconPath:         env.NewStringConfig(IconPathConfigEnvName, defaultIconPath),
			baseUrl:          env.NewStringConfig(BaseUrlConfigEnvName, defaultBaseUrl),
			serveActionsJson: env.NewBoolConfig(ServeActionsJsonConfigEnvName, defaultServeActionsJson),
		}
	}
}

type testOverrides struct {
	cluster            string
	programId          string
	baseUrl            string
	disableActionsJson bool
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	cluster := defaultCluster
	if len(overrides.cluster) > 0 {
		cluster = overrides.cluster
	}

	programId := defaultProgramId
	if len(overrides.programId) > 0 {
		programId = overrides.programId
	}

	return func() *conf {
		return &conf{
			cluster:          wrapper.NewStringConfig(memory.NewConfig(cluster), defaultCluster),
			rpcEndpoint:      wrapper.NewStringConfig(memory.NewConfig(nil), defaultRpcEndpoint),
			rpcTimeout:       wrapper.NewDurationConfig(memory.NewConfig(time.Second), defaultRpcTimeout),
			programId:        wrapper.NewStringConfig(memory.NewConfig(programId), defaultProgramId),
			iconPath:         wrapper.NewStringConfig(memory.NewConfig(defaultIconPath), defaultIconPath),
			baseUrl:          wrapper.NewStringConfig(memory.NewConfig(overrides.baseUrl), defaultBaseUrl),
			serveActionsJson: wrapper.NewBoolConfig(memory.NewConfig(!overrides.disableActionsJson), defaultServeActionsJson),
		}
	}
}

// Config is the resolved, validated configuration the server runs with.
type Config struct {
	Cluster      solana.Cluster
	BlockchainId actions.BlockchainId

	RpcEndpoint string
	RpcTimeout  time.Duration

	Program ed25519.PublicKey

	IconPath string
	BaseUrl  *url.URL

	ServeActionsJson bool
}

// LoadConfig resolves every value from provider once.
func LoadConfig(ctx context.Context, provider ConfigProvider) (*Config, error) {
	c := provider()

	cluster, err := solana.ClusterFromString(c.cluster.Get(ctx))
	if err != nil {
		return nil, err
	}

	blockchainId, err := actions.BlockchainIdFromCluster(cluster)
	if err != nil {
		return nil, err
	}

	rpcEndpoint := c.rpcEndpoint.Get(ctx)
	if len(rpcEndpoint) == 0 {
		rpcEndpoint = string(cluster.Environment())
	}

	rpcTimeout := c.rpcTimeout.Get(ctx)
	if rpcTimeout <= 0 {
		return nil, errors.Errorf("rpc timeout must be positive: %v", rpcTimeout)
	}

	program, err := solana.PublicKeyFromString(c.programId.Get(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "invalid program id")
	}

	iconPath := c.iconPath.Get(ctx)
	if len(iconPath) == 0 {
		return nil, errors.New("icon path is required")
	}
	if _, err := url.Parse(iconPath); err != nil {
		return nil, errors.Wrap(err, "invalid icon path")
	}

	var baseUrl *url.URL
	if raw := c.baseUrl.Get(ctx); len(raw) > 0 {
		baseUrl, err = url.Parse(raw)
		if err != nil {
			return nil, errors.Wrap(err, "invalid base url")
		}
		if baseUrl.Scheme != "http" && baseUrl.Scheme != "https" || len(baseUrl.Host) == 0 {
			return nil, errors.Errorf("base url must be an absolute http(s) url: %s", raw)
		}
	}

	return &Config{
		Cluster:      cluster,
		BlockchainId: blockchainId,

		RpcEndpoint: rpcEndpoint,
		RpcTimeout:  rpcTimeout,

		Program: program,

		IconPath: iconPath,
		BaseUrl:  baseUrl,

		ServeActionsJson: c.serveActionsJson.Get(ctx),
	}, nil
}
