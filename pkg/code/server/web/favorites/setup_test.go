package favorites

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/favorites-action/pkg/solana"
)

type fakeBlockhashProvider struct {
	mu        sync.Mutex
	blockhash solana.Blockhash
	err       error
	panicWith any
	calls     int
}

func newFakeBlockhashProvider() *fakeBlockhashProvider {
	var blockhash solana.Blockhash
	for i := range blockhash {
		blockhash[i] = byte(255 - i)
	}
	return &fakeBlockhashProvider{blockhash: blockhash}
}

func (p *fakeBlockhashProvider) GetLatestBlockhash() (solana.Blockhash, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls++
	if p.panicWith != nil {
		panic(p.panicWith)
	}
	if p.err != nil {
		return solana.Blockhash{}, p.err
	}
	return p.blockhash, nil
}

func (p *fakeBlockhashProvider) setError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *fakeBlockhashProvider) setPanic(v any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.panicWith = v
}

func (p *fakeBlockhashProvider) getCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type testEnv struct {
	conf        *Config
	server      *Server
	blockhashes *fakeBlockhashProvider
}

func setup(t *testing.T, overrides *testOverrides) *testEnv {
	conf, err := LoadConfig(context.Background(), withManualTestOverrides(overrides))
	require.NoError(t, err)

	blockhashes := newFakeBlockhashProvider()
	return &testEnv{
		conf:        conf,
		server:      NewFavoritesActionServer(conf, blockhashes),
		blockhashes: blockhashes,
	}
}

func assertActionHeaders(t *testing.T, h http.Header, expectedBlockchainId string) {
	assert.Equal(t, "*", h.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET,POST,PUT,OPTIONS", h.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization, Content-Encoding, Accept-Encoding, X-Accept-Action-Version, X-Accept-Blockchain-Ids", h.Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "X-Action-Version, X-Blockchain-Ids", h.Get("Access-Control-Expose-Headers"))
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	assert.Equal(t, expectedBlockchainId, h.Get("x-blockchain-ids"))
	assert.Equal(t, "2.4", h.Get("x-action-version"))
}

const devnetBlockchainId = "solana:EtWTRABZaYq6iMfeYKouRu166VU2xqa1"
