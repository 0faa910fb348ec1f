package actions

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/code-payments/favorites-action/pkg/solana"
)

const (
	ActionVersion = "2.4"

	ActionVersionHeaderName  = "X-Action-Version"
	BlockchainIdsHeaderName  = "X-Blockchain-Ids"
	ContentTypeHeaderName    = "Content-Type"
	JsonContentTypeHeaderVal = "application/json"
)

// BlockchainId is a CAIP-2 chain identifier.
type BlockchainId string

const (
	BlockchainIdMainnet BlockchainId = "solana:5eykt4UsFv8P8NJdTREpY1vzqKqZKvdp"
	BlockchainIdDevnet  BlockchainId = "solana:EtWTRABZaYq6iMfeYKouRu166VU2xqa1"
	BlockchainIdTestnet BlockchainId = "solana:4uhcVJyU9pJkvQyS88uRDiswHXSCkY3z"
)

var ErrUnsupportedCluster = errors.New("cluster has no blockchain id")

func BlockchainIdFromCluster(cluster solana.Cluster) (BlockchainId, error) {
	switch cluster {
	case solana.ClusterMainnet:
		return BlockchainIdMainnet, nil
	case solana.ClusterDevnet:
		return BlockchainIdDevnet, nil
	case solana.ClusterTestnet:
		return BlockchainIdTestnet, nil
	}
	return "", errors.Wrap(ErrUnsupportedCluster, string(cluster))
}

// CorsHeaders allow any origin to preflight and call an action.
var CorsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET,POST,PUT,OPTIONS",
	"Access-Control-Allow-Headers": strings.Join([]string{
		"Content-Type",
		"Authorization",
		"Content-Encoding",
		"Accept-Encoding",
		"X-Accept-Action-Version",
		"X-Accept-Blockchain-Ids",
	}, ", "),
	"Access-Control-Expose-Headers": strings.Join([]string{
		ActionVersionHeaderName,
		BlockchainIdsHeaderName,
	}, ", "),
	ContentTypeHeaderName: JsonContentTypeHeaderVal,
}

// ApplyHeaders sets the CORS, chain and protocol version headers required on
// every action response.
func ApplyHeaders(h http.Header, blockchainIds ...BlockchainId) {
	for name, value := range CorsHeaders {
		h.Set(name, value)
	}

	ids := make([]string, len(blockchainIds))
	for i, id := range blockchainIds {
		ids[i] = string(id)
	}
	h.Set(BlockchainIdsHeaderName, strings.Join(ids, ","))
	h.Set(ActionVersionHeaderName, ActionVersion)
}
