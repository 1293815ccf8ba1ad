package plusvalia

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// coingeckoIDs maps ticker symbols to CoinGecko coin ids. Symbols not
// listed here are passed through lowercased, which works for many coins.
var coingeckoIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"ADA":   "cardano",
	"DOT":   "polkadot",
	"SOL":   "solana",
	"XRP":   "ripple",
	"LTC":   "litecoin",
	"BCH":   "bitcoin-cash",
	"LINK":  "chainlink",
	"MATIC": "matic-network",
	"AVAX":  "avalanche-2",
	"ATOM":  "cosmos",
	"XLM":   "stellar",
	"DOGE":  "dogecoin",
	"USDT":  "tether",
	"USDC":  "usd-coin",
}

// CoinGecko looks prices up on the public CoinGecko API. Responses are
// cached on disk: spot quotes for a day, historical quotes forever.
type CoinGecko struct {
	client *http.Client
}

// NewCoinGecko returns a provider with the default caching client.
func NewCoinGecko() *CoinGecko {
	return &CoinGecko{client: &http.Client{Transport: &priceCache{
		base: http.DefaultTransport,
		permanent: func(req *http.Request) bool {
			return strings.Contains(req.URL.Path, "/history")
		},
	}}}
}

func coinID(asset string) string {
	if id, ok := coingeckoIDs[strings.ToUpper(asset)]; ok {
		return id
	}
	return strings.ToLower(asset)
}

// PriceAt implements PriceLookup. A date within the last 24 hours hits the
// spot endpoint, anything older the immutable historical one. Any failure
// is reported as *PriceUnavailableError wrapping the cause.
func (g *CoinGecko) PriceAt(asset, currency string, at time.Time) (Money, error) {
	at = at.UTC()
	var val float64
	var err error
	if time.Since(at) < 24*time.Hour {
		val, err = g.spot(coinID(asset), currency)
	} else {
		val, err = g.historical(coinID(asset), currency, at)
	}
	if err != nil {
		return Money{}, &PriceUnavailableError{Asset: asset, Currency: currency, At: at, Cause: err}
	}
	return M(val, strings.ToUpper(currency)), nil
}

func (g *CoinGecko) spot(id, currency string) (float64, error) {
	cur := strings.ToLower(currency)
	addr := fmt.Sprintf("https://api.coingecko.com/api/v3/simple/price?ids=%s&vs_currencies=%s",
		url.QueryEscape(id), url.QueryEscape(cur))
	var jobj any
	if err := jwget(g.client, addr, &jobj); err != nil {
		return 0, fmt.Errorf("error in wget %q: %w", id, err)
	}
	return jfloat(jobj, fmt.Sprintf("$.%s.%s", id, cur))
}

func (g *CoinGecko) historical(id, currency string, at time.Time) (float64, error) {
	cur := strings.ToLower(currency)
	// coingecko wants dd-mm-yyyy
	addr := fmt.Sprintf("https://api.coingecko.com/api/v3/coins/%s/history?date=%s&localization=false",
		url.PathEscape(id), at.Format("02-01-2006"))
	var jobj any
	if err := jwget(g.client, addr, &jobj); err != nil {
		return 0, fmt.Errorf("error in wget %q: %w", id, err)
	}
	return jfloat(jobj, fmt.Sprintf("$.market_data.current_price.%s", cur))
}

func jfloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer,
	// or a single answer: keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("error parsing %q: not a float: %v", path, jval)
	}
	return val, nil
}
