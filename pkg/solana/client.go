package solana

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ybbus/jsonrpc"
)

const (
	// Reference: https://github.com/solana-labs/solana/blob/71e9958e061493d7545bd28d4ac7a85aaed6ffbb/client/src/rpc_custom_error.rs#L11
	rpcNodeUnhealthyCode = -32005

	// DefaultTimeout bounds a single RPC round trip when no HTTP client is
	// provided.
	DefaultTimeout = 10 * time.Second
)

type Commitment struct {
	Commitment string `json:"commitment"`
}

const (
	confirmationStatusFinalized = "finalized"
)

// CommitmentFinalized is the commitment every request is made at.
var CommitmentFinalized = Commitment{Commitment: confirmationStatusFinalized}

var (
	ErrRateLimited        = errors.New("rpc rate limited")
	ErrServiceUnavailable = errors.New("rpc service unavailable")
)

// Client provides an interaction with the Solana JSON RPC API.
//
// Reference: https://docs.solana.com/apps/jsonrpc-api
type Client interface {
	// GetLatestBlockhash returns the most recent blockhash at the client's
	// commitment. Every call results in an RPC round trip.
	GetLatestBlockhash() (Blockhash, error)
}

type client struct {
	log        *logrus.Entry
	client     jsonrpc.RPCClient
	commitment Commitment
}

// New returns a client using the specified endpoint and the default timeout.
func New(endpoint string) Client {
	return NewWithRPCOptions(endpoint, &jsonrpc.RPCClientOpts{
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	})
}

// NewWithRPCOptions returns a client configured with the specified RPC options.
func NewWithRPCOptions(endpoint string, opts *jsonrpc.RPCClientOpts) Client {
	return &client{
		log:        logrus.StandardLogger().WithField("type", "solana/client"),
		client:     jsonrpc.NewClientWithOpts(endpoint, opts),
		commitment: CommitmentFinalized,
	}
}

func (c *client) call(out interface{}, method string, params ...interface{}) error {
	err := c.client.CallFor(out, method, params...)
	if err == nil {
		return nil
	}

	return c.handleRpcError(method, err)
}

// handleRpcError collapses node side throttling and outages into sentinel
// errors. Anything else is returned as is.
func (c *client) handleRpcError(method string, err error) error {
	log := c.log.WithField("method", method)

	switch typed := err.(type) {
	case *jsonrpc.RPCError:
		if typed.Code == http.StatusTooManyRequests {
			log.Warn("rate limited")
			return errors.Wrap(ErrRateLimited, typed.Message)
		}
		if typed.Code >= http.StatusInternalServerError || typed.Code == rpcNodeUnhealthyCode {
			return errors.Wrap(ErrServiceUnavailable, typed.Message)
		}
	case *jsonrpc.HTTPError:
		if typed.Code == http.StatusTooManyRequests {
			log.Warn("rate limited")
			return errors.Wrap(ErrRateLimited, typed.Error())
		}
		if typed.Code >= http.StatusInternalServerError {
			return errors.Wrap(ErrServiceUnavailable, typed.Error())
		}
	}

	return err
}

func (c *client) GetLatestBlockhash() (hash Blockhash, err error) {
	type response struct {
		Value struct {
			Blockhash            string `json:"blockhash"`
			LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
		} `json:"value"`
	}

	// note: we have to wrap the commitment in an []interface{} otherwise the
	//       solana RPC node complains. Technically this is a violation of the
	//       JSON RPC v2.0 spec.
	var resp response
	if err := c.call(&resp, "getLatestBlockhash", []interface{}{c.commitment}); err != nil {
		return hash, errors.Wrap(err, "getLatestBlockhash() failed to send request")
	}

	hash, err = BlockhashFromString(resp.Value.Blockhash)
	if err != nil {
		return hash, errors.Wrap(err, "invalid blockhash in response")
	}

	return hash, nil
}
