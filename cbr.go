package settlement

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/settlement/date"
)

// The Bank of Russia publishes its official daily quotes as one JSON
// document covering every currency. One GET per day is enough; jsonpath
// extracts the one pair the pipeline needs.
const cbrDailyURL = "https://www.cbr-xml-daily.ru/daily_json.js"

// FetchDailyRate returns the official daily rate for a currency code (e.g.
// "USD") together with the publication day it applies to.
func FetchDailyRate(client *http.Client, code string) (RateEntry, error) {
	var jobj any
	if err := jwget(client, cbrDailyURL, &jobj); err != nil {
		return RateEntry{}, fmt.Errorf("cannot fetch daily rates: %w", err)
	}
	return parseDailyRate(jobj, code)
}

// parseDailyRate extracts one currency's entry from the daily document.
func parseDailyRate(jobj any, code string) (RateEntry, error) {
	query := fmt.Sprintf("$.Valute.%s.Value", code)
	jval, err := jsonpath.Get(query, jobj)
	if err != nil {
		return RateEntry{}, fmt.Errorf("no %q quote in daily rates: %w", code, err)
	}
	// jsonpath is never clear about returning a list of one answer or the
	// answer itself.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	var rate Rate
	switch v := jval.(type) {
	case float64:
		rate = R(v)
	case string:
		// the feed occasionally serves numbers as localized strings
		d, err := ParseDecimal(v)
		if err != nil {
			return RateEntry{}, fmt.Errorf("%q quote: %w", code, err)
		}
		rate = R(d)
	default:
		return RateEntry{}, fmt.Errorf("%q quote is neither a number nor a string: %v", code, jval)
	}
	if !rate.IsPositive() {
		return RateEntry{}, fmt.Errorf("%q quote is not positive: %s", code, rate)
	}

	jday, err := jsonpath.Get("$.Date", jobj)
	if err != nil {
		return RateEntry{}, fmt.Errorf("daily rates carry no date: %w", err)
	}
	sday, ok := jday.(string)
	if !ok {
		return RateEntry{}, fmt.Errorf("daily rates date is not a string: %v", jday)
	}
	// the document timestamps with a zone, e.g. "2025-07-01T11:30:00+03:00"
	if len(sday) > 10 {
		sday = sday[:10]
	}
	day, err := date.Parse(sday)
	if err != nil {
		return RateEntry{}, fmt.Errorf("daily rates date: %w", err)
	}
	return RateEntry{Day: day, Rate: rate}, nil
}

// jwget GETs a JSON document from addr into data.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return fmt.Errorf("cannot get %q: %w", addr, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot get %q: status %s", addr, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(data); err != nil {
		return fmt.Errorf("cannot parse %q response: %w", addr, err)
	}
	return nil
}

// DailyClient returns an http.Client that caches successful responses on
// disk until the end of the day. The feed changes once per publication, so
// repeated runs in a day cost one request.
func DailyClient() *http.Client {
	return &http.Client{Transport: &dayCache{base: http.DefaultTransport}}
}

// dayCache is a RoundTripper caching whole responses in the temp dir,
// keyed by day and URL.
type dayCache struct {
	base http.RoundTripper
}

func (c *dayCache) RoundTrip(req *http.Request) (*http.Response, error) {
	key := sha1.Sum([]byte(date.Today().String() + " " + req.Method + " " + req.URL.String()))
	file := filepath.Join(os.TempDir(), fmt.Sprintf("bsr-%x", key))

	if content, err := os.ReadFile(file); err == nil {
		return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
	}
	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return resp, nil
	}
	// best effort, a cold cache tomorrow is not a failure today
	_ = os.WriteFile(file, content, 0o600)
	return resp, nil
}
