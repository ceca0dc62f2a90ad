// Package ingest implements the offline data pipeline: fetching the public
// monthly farm-tech feed, extracting article bodies, chunking them and
// indexing the chunks into the vector collection.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"
	"golang.org/x/time/rate"
)

// Feed endpoint defaults. The API key and the approved Referer domain come
// from configuration.
const (
	DefaultBaseURL  = "http://api.nongsaro.go.kr/service/monthFarmTech"
	DefaultPageSize = 500

	listPath   = "/monthFarmTechLst"
	detailPath = "/monthFarmTechDtl"
	attachPath = "/monthFarmTechDtlDefaultInfo"

	requestTimeout = 15 * time.Second
)

// ErrMissingFeedKey indicates NONGSARO_API_KEY was not provided.
var ErrMissingFeedKey = errors.New("missing farm-tech feed API key")

// ClientConfig configures the feed client.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Referer string

	// RequestInterval paces outbound calls; the upstream service throttles
	// bursty clients. Zero disables pacing.
	RequestInterval time.Duration
}

// Client fetches the farm-tech feed. Responses are XML; fields the feed
// omits come back as empty strings, matching the safe-defaulting rule used
// throughout the pipeline.
type Client struct {
	httpClient *http.Client
	cfg        ClientConfig
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient validates the configuration and builds the client.
func NewClient(cfg ClientConfig, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingFeedKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.RequestInterval), 1)
	}

	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		cfg:        cfg,
		limiter:    limiter,
		logger:     logger,
	}, nil
}

// List fetches one page of the listing feed.
func (c *Client) List(ctx context.Context, page, rows int) ([]Listing, error) {
	if rows <= 0 {
		rows = DefaultPageSize
	}

	params := url.Values{}
	params.Set("srchStr", "")
	params.Set("sEralInfo", "")
	params.Set("pageNo", strconv.Itoa(page))
	params.Set("numOfRows", strconv.Itoa(rows))

	doc, err := c.get(ctx, listPath, params)
	if err != nil {
		return nil, err
	}

	items := xmlquery.Find(doc, "//body/items/item")
	listings := make([]Listing, 0, len(items))
	for _, item := range items {
		listings = append(listings, Listing{
			CurationNo:      elementText(item, "curationNo"),
			Title:           elementText(item, "cntntsSj"),
			ImageURL:        elementText(item, "curationImgUrl"),
			ContentCount:    elementText(item, "contentCnt"),
			AttachGroupCode: elementText(item, "atchmnflGroupEsntlCode"),
			AttachStoreName: elementText(item, "atchmnflStreNm"),
		})
	}

	c.logger.Debug("listing page fetched", "page", page, "items", len(listings))
	return listings, nil
}

// Detail fetches one listing's article and extracts its body text. Returns
// nil when the feed has no detail for the curation number.
func (c *Client) Detail(ctx context.Context, curationNo, title string) (*Detail, error) {
	params := url.Values{}
	params.Set("srchCurationNo", curationNo)
	params.Set("srchCntntsSnn", "1")

	doc, err := c.get(ctx, detailPath, params)
	if err != nil {
		return nil, err
	}

	item := xmlquery.FindOne(doc, "//item")
	if item == nil {
		return nil, nil
	}

	text, err := ExtractBody(elementText(item, "cntntsInfoHtml"))
	if err != nil {
		return nil, fmt.Errorf("extracting body for %q: %w", curationNo, err)
	}

	return &Detail{CurationNo: curationNo, Title: title, Text: text}, nil
}

// AttachInfo fetches one listing's attachment URLs. Returns nil when the
// feed has no attachment record.
func (c *Client) AttachInfo(ctx context.Context, curationNo string) (*Attachment, error) {
	params := url.Values{}
	params.Set("srchCurationNo", curationNo)

	doc, err := c.get(ctx, attachPath, params)
	if err != nil {
		return nil, err
	}

	info := xmlquery.FindOne(doc, "//item")
	if info == nil {
		info = xmlquery.FindOne(doc, "//DtlDefaultInfo")
	}
	if info == nil {
		return nil, nil
	}

	return &Attachment{
		CurationNo: curationNo,
		GroupCode:  elementText(info, "atchmnflGroupEsntlCodeOrtx"),
		AttachURL:  elementText(info, "atchmnflUrl"),
		LinkURL:    elementText(info, "linkUrl"),
	}, nil
}

// get performs one paced GET and parses the XML response.
func (c *Client) get(ctx context.Context, path string, params url.Values) (*xmlquery.Node, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	params.Set("apiKey", c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if c.cfg.Referer != "" {
		req.Header.Set("Referer", c.cfg.Referer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetching %s: status %d: %s", path, resp.StatusCode, body)
	}

	doc, err := xmlquery.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", path, err)
	}
	return doc, nil
}

// elementText returns the trimmed text of a direct child element, or "".
func elementText(node *xmlquery.Node, name string) string {
	child := node.SelectElement(name)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.InnerText())
}
