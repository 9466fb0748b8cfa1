// Package symbol resolves user-facing coin tokens into canonical Binance
// spot pairs (BASE+QUOTE, no separator).
package symbol

import "strings"

var knownQuotes = []string{"USDT", "USDC", "FDUSD", "TUSD", "BTC", "ETH", "BNB"}

// Resolve normalizes a token into a canonical pair. A bare base asset gets
// the given quote appended ("btc" -> "BTCUSDT"). Returns "" for empty input.
func Resolve(raw, quote string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "/", "")
	quote = strings.ToUpper(strings.TrimSpace(quote))
	if quote == "" {
		quote = "USDT"
	}
	for _, q := range knownQuotes {
		if strings.HasSuffix(s, q) && len(s) > len(q) {
			return s
		}
	}
	return s + quote
}

// Base strips the quote suffix from a canonical pair ("BTCUSDT" -> "BTC").
func Base(pair string) string {
	s := strings.ToUpper(strings.TrimSpace(pair))
	for _, q := range knownQuotes {
		if strings.HasSuffix(s, q) && len(s) > len(q) {
			return s[:len(s)-len(q)]
		}
	}
	return s
}

// ResolveList resolves and deduplicates a symbol list, keeping first-seen order.
func ResolveList(raw []string, quote string) []string {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		pair := Resolve(s, quote)
		if pair == "" {
			continue
		}
		if _, ok := seen[pair]; ok {
			continue
		}
		seen[pair] = struct{}{}
		out = append(out, pair)
	}
	return out
}
