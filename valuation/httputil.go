package valuation

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

	"github.com/etnz/estate"
	"github.com/sirupsen/logrus"
)

// diskCache is an http.RoundTripper that keeps successful responses on disk
// for the day.
type diskCache struct {
	base http.RoundTripper
	dir  string
	log  logrus.FieldLogger
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	// one key per day, so the cache expires every day.
	key := fmt.Sprintf("%s %s %s", estate.Today(), req.Method, req.URL)
	key = fmt.Sprintf("estate-%x", sha1.Sum([]byte(key)))

	if cached, err := c.get(key, req); err == nil {
		return cached, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	c.log.WithFields(logrus.Fields{"method": req.Method, "host": req.URL.Host, "path": req.URL.Path, "status": resp.StatusCode}).Debug("http")
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	if err := c.put(key, resp); err != nil {
		c.log.WithError(err).Warn("cache write error (ignored)")
	}
	return resp, nil
}

func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// put stores resp, leaving it readable by the caller.
func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0o600)
}

// Daily returns a client caching its GET responses in dir for the day. dir
// defaults to the system temporary directory.
func Daily(dir string, log logrus.FieldLogger) *http.Client {
	if dir == "" {
		dir = os.TempDir()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &http.Client{Transport: &diskCache{base: http.DefaultTransport, dir: dir, log: log}}
}

// getJSON performs an HTTP GET request and decodes the JSON response into v,
// keeping numbers as json.Number.
func getJSON(client *http.Client, req *http.Request, v any) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	return dec.Decode(v)
}
