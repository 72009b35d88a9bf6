package webhookrepo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Swagat003/gov-billboard-portal/model"
	"github.com/Swagat003/gov-billboard-portal/util/httpx"
)

type httpRepo struct {
	url    string
	client *http.Client
}

// NewHTTP posts report events to url. An empty url disables delivery.
func NewHTTP(url string) Repo { return &httpRepo{url: url, client: httpx.Client()} }

func (r *httpRepo) NotifyReport(ctx context.Context, rep *model.Report) error {
	if r.url == "" {
		return nil
	}

	b, err := json.Marshal(EventFromReport(rep))
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("report webhook failed: %s", resp.Status)
	}
	return nil
}
