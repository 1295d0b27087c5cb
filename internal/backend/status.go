package backend

import (
	"bytes"
	"context"
	"strings"

	apperrors "countrydata/cli/internal/errors"

	"github.com/PuerkitoBio/goquery"
)

// Ping sends GET on the base URL. A 2xx answer means the service is up; the page
// title is reported when the body is HTML with a <title>.
func (h *HTTP) Ping(ctx context.Context) (Status, error) {
	res, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html, */*").
		Get("/")
	if err != nil {
		return Status{}, apperrors.Wrap(apperrors.KindNetwork, "server not running", err)
	}

	st := Status{StatusCode: res.StatusCode()}
	if !res.IsSuccess() {
		return st, apperrors.Server(res.StatusCode(), "Server not responding")
	}
	st.Alive = true
	st.Title = pageTitle(res.Body())
	return st, nil
}

func pageTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
