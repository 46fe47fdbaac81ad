// internal/providers/registry.go
package providers

import (
	"time"

	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/config"
	commonhttp "github.com/ChinmayNakwa/Financial-AI-System/internal/common/http"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/logger"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/models"
)

// Registry maps provider ids to their fetch capability. It is constructed
// once at startup and read-only afterwards; the retriever receives it by
// injection so tests can substitute doubles.
type Registry struct {
	providers map[models.ProviderID]Provider
	timeout   time.Duration
}

// NewRegistry wires the full catalog from configuration.
func NewRegistry(cfg *config.ProvidersConfig, log logger.Logger) *Registry {
	client := commonhttp.NewClient(cfg.GetTimeout())

	all := []Provider{
		NewYahooFinance(cfg.YahooFinance, client, log),
		NewPolygon(cfg.Polygon, client, log),
		NewFRED(cfg.FRED, client, log),
		NewNewsAPI(cfg.NewsAPI, client, log),
		NewTavily(cfg.Tavily, client, log),
		NewSECEdgar(cfg.SECEdgar, client, log),
		NewCoinDesk(cfg.CoinDesk, client, log),
	}

	return NewRegistryFromProviders(cfg.GetTimeout(), all...)
}

// NewRegistryFromProviders builds a registry over an explicit provider set.
// Tests use this to plug in stubs.
func NewRegistryFromProviders(timeout time.Duration, all ...Provider) *Registry {
	m := make(map[models.ProviderID]Provider, len(all))
	for _, p := range all {
		m[p.ID()] = p
	}
	return &Registry{providers: m, timeout: timeout}
}

// Get returns the provider for id, if the catalog has one.
func (r *Registry) Get(id models.ProviderID) (Provider, bool) {
	p, ok := r.providers[id]
	return p, ok
}

// FetchTimeout is the per-provider call budget.
func (r *Registry) FetchTimeout() time.Duration {
	return r.timeout
}

// Size returns the number of registered providers.
func (r *Registry) Size() int {
	return len(r.providers)
}
