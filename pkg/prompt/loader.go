package prompt

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

// FetchTimeout bounds a prompt download.
const FetchTimeout = 30 * time.Second

// Load reads the prompt text from a file or URL.
func Load(input string) (content string, err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
	defer cancel()

	content, err = LoadWithContext(ctx, input)
	return content, err
}

// LoadWithContext reads the prompt text from a file or an http(s) URL.
func LoadWithContext(ctx context.Context, input string) (content string, err error) {
	parsedURL, urlErr := url.Parse(input)
	if urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") {
		content, err = loadFromURL(ctx, input)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch prompt from URL: %s", input)
			return content, err
		}
		return content, err
	}

	content, err = loadFromFile(input)
	if err != nil {
		err = errors.Wrapf(err, "failed to read prompt from file: %s", input)
		return content, err
	}

	return content, err
}

// loadFromFile returns the file contents verbatim.
func loadFromFile(path string) (content string, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read file: %s", path)
		return content, err
	}

	content = string(data)
	if strings.TrimSpace(content) == "" {
		err = errors.New("file is empty")
		return content, err
	}

	return content, err
}

// loadFromURL downloads the prompt. HTML pages are reduced to their text.
func loadFromURL(ctx context.Context, urlStr string) (content string, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return content, err
	}

	req.Header.Set("User-Agent", "resume-builder/1.0")

	client := &http.Client{
		Timeout: FetchTimeout,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return content, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return content, err
	}

	var body []byte
	body, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return content, err
	}

	content = string(body)
	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		content, err = htmlText(body)
		if err != nil {
			return content, err
		}
	}

	if strings.TrimSpace(content) == "" {
		err = errors.New("fetched content is empty")
		return content, err
	}

	return content, err
}

// htmlText returns the visible text of an HTML page.
func htmlText(page []byte) (text string, err error) {
	var doc *goquery.Document
	doc, err = goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		err = errors.Wrap(err, "failed to parse HTML")
		return text, err
	}

	doc.Find("script, style, noscript").Remove()

	lines := strings.Split(doc.Find("body").Text(), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}

	text = strings.Join(kept, "\n")
	return text, err
}
