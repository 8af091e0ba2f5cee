package remote

import (
	"time"

	"github.com/mstgnz/checkout/provider"
	"github.com/mstgnz/checkout/provider/webtopay"
)

// Register the bridge backed WebToPay provider with the default registry
func init() {
	provider.Register(webtopay.ProviderName, NewProvider)
}

// ConfigFields lists the configuration NewProvider reads
var ConfigFields = []provider.ConfigField{
	{
		Key:         "bridgeUrl",
		Required:    true,
		Type:        "url",
		Description: "Base URL of the bridge hosting the WebToPay library",
	},
	{
		Key:         "timeout",
		Type:        "duration",
		Description: "Timeout of a single bridge call",
		Default:     "20s",
	},
}

// NewProvider creates a WebToPay provider talking to the configured bridge
func NewProvider(config map[string]string) (provider.Provider, error) {
	resolved, err := provider.ValidateConfigFields(webtopay.ProviderName, config, ConfigFields)
	if err != nil {
		return nil, err
	}

	timeout, err := time.ParseDuration(resolved["timeout"])
	if err != nil {
		return nil, err
	}

	return webtopay.NewProvider(NewClient(resolved["bridgeUrl"], timeout)), nil
}
