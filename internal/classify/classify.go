// Package classify decides whether a requested symbol is an equity or a
// crypto asset. Classification happens once per request and is never
// re-derived mid-pipeline.
package classify

import (
	"strings"

	"ticker-pulse/internal/types"
)

// cryptoIDs maps well-known crypto symbols to the canonical asset ids the
// crypto quote provider understands.
var cryptoIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"USDT":  "tether",
	"BNB":   "binancecoin",
	"SOL":   "solana",
	"XRP":   "ripple",
	"ADA":   "cardano",
	"DOGE":  "dogecoin",
	"AVAX":  "avalanche-2",
	"DOT":   "polkadot",
	"MATIC": "matic-network",
	"LINK":  "chainlink",
	"LTC":   "litecoin",
	"SHIB":  "shiba-inu",
	"TRX":   "tron",
	"UNI":   "uniswap",
	"ATOM":  "cosmos",
	"XLM":   "stellar",
	"NEAR":  "near",
	"ALGO":  "algorand",
}

// cryptoNames maps canonical ids back to display names used when building
// news queries.
var cryptoNames = map[string]string{
	"bitcoin":       "Bitcoin",
	"ethereum":      "Ethereum",
	"tether":        "Tether",
	"binancecoin":   "BNB",
	"solana":        "Solana",
	"ripple":        "XRP",
	"cardano":       "Cardano",
	"dogecoin":      "Dogecoin",
	"avalanche-2":   "Avalanche",
	"polkadot":      "Polkadot",
	"matic-network": "Polygon",
	"chainlink":     "Chainlink",
	"litecoin":      "Litecoin",
	"shiba-inu":     "Shiba Inu",
	"tron":          "TRON",
	"uniswap":       "Uniswap",
	"cosmos":        "Cosmos",
	"stellar":       "Stellar",
	"near":          "NEAR",
	"algorand":      "Algorand",
}

// Classify returns the classification for a symbol. An explicit true hint
// forces Crypto; otherwise membership in the known-crypto set decides.
// Pure and total: every input produces a result.
func Classify(symbol string, isCryptoHint *bool) types.Classification {
	if isCryptoHint != nil && *isCryptoHint {
		return types.Crypto
	}
	if _, ok := cryptoIDs[strings.ToUpper(strings.TrimSpace(symbol))]; ok {
		return types.Crypto
	}
	return types.Equity
}

// CanonicalID resolves a crypto symbol to the provider's asset id. Unknown
// symbols fall back to their lower-cased form, which the provider treats
// as an id directly.
func CanonicalID(symbol string) string {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	if id, ok := cryptoIDs[sym]; ok {
		return id
	}
	return strings.ToLower(strings.TrimSpace(symbol))
}

// CanonicalName returns a display name for a canonical id, or the id
// itself when unknown.
func CanonicalName(canonicalID string) string {
	if name, ok := cryptoNames[canonicalID]; ok {
		return name
	}
	return canonicalID
}
