package probe

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/CoreMedia/joala-sub001/pkg/condition"
	"github.com/CoreMedia/joala-sub001/pkg/description"
	"github.com/CoreMedia/joala-sub001/pkg/matcher"
	pkgstrings "github.com/CoreMedia/joala-sub001/pkg/strings"
)

// HTTPResponse is the part of an HTTP response checks look at.
type HTTPResponse struct {
	Status int
	Body   string
}

// String renders the response for failure messages.
func (r HTTPResponse) String() string {
	body := pkgstrings.TruncateDescription(pkgstrings.FirstLine(r.Body), pkgstrings.DefaultDescriptionMaxLen)
	if body == "" {
		return fmt.Sprintf("HTTP %d", r.Status)
	}
	return fmt.Sprintf("HTTP %d %q", r.Status, body)
}

// NewHTTPClient creates the resty client used by HTTP probes.
func NewHTTPClient() *resty.Client {
	return resty.New().
		SetHeader("User-Agent", "joala").
		SetRetryCount(0)
}

type httpExpression struct {
	client  *resty.Client
	method  string
	url     string
	headers map[string]string
}

// HTTP creates an expression performing one request per evaluation.
// Transport errors are recoverable; any response, whatever its status, is a value.
func HTTP(client *resty.Client, method, url string, headers map[string]string) condition.Expression[HTTPResponse] {
	if method == "" {
		method = http.MethodGet
	}
	return &httpExpression{
		client:  client,
		method:  strings.ToUpper(method),
		url:     url,
		headers: headers,
	}
}

func (e *httpExpression) Get(ctx context.Context) (HTTPResponse, error) {
	resp, err := e.client.R().
		SetContext(ctx).
		SetHeaders(e.headers).
		Execute(e.method, e.url)
	if err != nil {
		if ctx.Err() != nil {
			return HTTPResponse{}, ctx.Err()
		}
		return HTTPResponse{}, condition.WrapEvaluationError(err, "%s %s", e.method, e.url)
	}
	return HTTPResponse{Status: resp.StatusCode(), Body: resp.String()}, nil
}

func (e *httpExpression) DescribeTo(d description.Description) {
	d.AppendText(e.method + " " + e.url)
}

// HTTPStatus matches responses with the given status code.
func HTTPStatus(code int) matcher.Matcher[HTTPResponse] {
	return matcher.Satisfies(fmt.Sprintf("HTTP status %d", code), func(r HTTPResponse) bool {
		return r.Status == code
	})
}

// BodyContains matches responses whose body contains text.
func BodyContains(text string) matcher.Matcher[HTTPResponse] {
	return matcher.Satisfies(fmt.Sprintf("body containing %q", text), func(r HTTPResponse) bool {
		return strings.Contains(r.Body, text)
	})
}
