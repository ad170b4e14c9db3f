package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"linkedin-voyager/lib/errs"
	"linkedin-voyager/lib/resolve"
	"linkedin-voyager/lib/restyutil"
	"linkedin-voyager/lib/telemetry"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseUrl = "https://www.linkedin.com/voyager/api"
	userAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
)

// Fetcher returns the raw body of a planned request. Implementations map
// upstream failures onto errs.TransportError and errs.AuthenticationError.
type Fetcher interface {
	FetchRaw(ctx context.Context, plan resolve.RequestPlan) ([]byte, error)
}

type FetcherOptions struct {
	// BaseUrl defaults to DefaultBaseUrl.
	BaseUrl    string
	LiAt       string
	JSessionID string
	// RequestsPerSecond defaults to 2.
	RequestsPerSecond float64
	Timeout           time.Duration
	// DumpOutput receives every exchange while debug logging is on.
	DumpOutput restyutil.InstrumentOutput
}

// HTTPFetcher talks to the voyager api with a browser session's cookies.
type HTTPFetcher struct {
	http *resty.Client
}

func NewHTTPFetcher(opts FetcherOptions) (*HTTPFetcher, error) {
	if opts.LiAt == "" || opts.JSessionID == "" {
		return nil, fmt.Errorf("linkedin: li_at and jsessionid are both required")
	}
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 2
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Second * 30
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	site := &url.URL{Scheme: baseUrl.Scheme, Host: baseUrl.Host}
	jsessionId := strings.Trim(opts.JSessionID, `"`)
	jar.SetCookies(site, []*http.Cookie{
		{Name: "li_at", Value: opts.LiAt, Path: "/"},
		{Name: "JSESSIONID", Value: jsessionId, Path: "/"},
	})

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.SetCookieJar(jar)
	client.SetTimeout(opts.Timeout)
	client.SetHeaders(map[string]string{
		"user-agent":                userAgent,
		"accept-language":           "en-US,en;q=0.9",
		"x-li-lang":                 "en_US",
		"x-restli-protocol-version": "2.0.0",
		"csrf-token":                jsessionId,
	})
	// an expired session is redirected to the login wall, that redirect is
	// the signal so it must not be followed
	client.SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}))

	// max burst >= rate just means that no requests will be dropped
	burst := max(int(opts.RequestsPerSecond), 1)
	rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(client, "platforms/linkedin/http")
	restyutil.InstrumentClient(client, opts.DumpOutput)

	return &HTTPFetcher{http: client}, nil
}

type upstreamError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (f *HTTPFetcher) FetchRaw(ctx context.Context, plan resolve.RequestPlan) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "fetch:"+string(plan.Endpoint))
	defer span.End()

	req := f.http.R().
		SetContext(ctx).
		SetHeader("accept", "application/json")
	method := http.MethodGet
	if !plan.IsRead() {
		method = plan.Method
		req.SetHeader("content-type", "application/json").SetBody(plan.Body)
	}
	res, err := req.Execute(method, plan.URI())
	if err != nil {
		err = &errs.TransportError{Endpoint: string(plan.Endpoint), Err: err}
		recordError(span, err, "request failed")
		return nil, err
	}
	countFetch(ctx, plan.Endpoint, res.StatusCode())

	err = statusError(plan.Endpoint, res.StatusCode(), res.Body())
	if err != nil {
		recordError(span, err, "upstream returned an error")
		return nil, err
	}
	return res.Body(), nil
}

// statusError maps an upstream response onto the typed errors. 2xx bodies are
// returned as is, the schema layer checks any status embedded in them.
func statusError(endpoint resolve.Endpoint, status int, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status >= 300 && status < 400,
		status == http.StatusUnauthorized,
		status == http.StatusForbidden:
		return &errs.AuthenticationError{Endpoint: string(endpoint), Status: status}
	}

	var upstream upstreamError
	_ = json.Unmarshal(body, &upstream)
	message := upstream.Message
	if message == "" {
		message = http.StatusText(status)
	}
	return &errs.TransportError{
		Endpoint: string(endpoint),
		Status:   status,
		Message:  message,
	}
}
