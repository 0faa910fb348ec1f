package solana

import (
	"strings"

	"github.com/pkg/errors"
)

type Environment string

const (
	EnvironmentDev  Environment = "https://api.devnet.solana.com"
	EnvironmentTest Environment = "https://api.testnet.solana.com"
	EnvironmentProd Environment = "https://api.mainnet-beta.solana.com"
)

// Cluster names a public Solana network.
type Cluster string

const (
	ClusterDevnet  Cluster = "devnet"
	ClusterTestnet Cluster = "testnet"
	ClusterMainnet Cluster = "mainnet-beta"
)

var ErrUnknownCluster = errors.New("unknown cluster")

// ClusterFromString parses a cluster name. "mainnet" is accepted as an alias
// for mainnet-beta.
func ClusterFromString(value string) (Cluster, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(ClusterDevnet):
		return ClusterDevnet, nil
	case string(ClusterTestnet):
		return ClusterTestnet, nil
	case string(ClusterMainnet), "mainnet":
		return ClusterMainnet, nil
	}
	return "", errors.Wrap(ErrUnknownCluster, value)
}

// Environment returns the public RPC endpoint for the cluster.
func (c Cluster) Environment() Environment {
	switch c {
	case ClusterTestnet:
		return EnvironmentTest
	case ClusterMainnet:
		return EnvironmentProd
	default:
		return EnvironmentDev
	}
}
