// Package catalog provides the job sources that fill the board.
package catalog

import (
	"log/slog"
	"net/http"

	"github.com/amishk599/jobboard/internal/config"
	"github.com/amishk599/jobboard/internal/model"
	"github.com/amishk599/jobboard/internal/ratelimit"
	"github.com/amishk599/jobboard/internal/retry"
)

// New builds the source for a configured catalog. Remote catalogs are wrapped
// with retry, and every attempt waits on limiter (nil disables spacing).
// File catalogs are read directly.
func New(c config.CatalogConfig, rc config.RetryConfig, client *http.Client, limiter *ratelimit.HostLimiter, logger *slog.Logger) model.JobSource {
	if c.Kind() == "remote" {
		var src model.JobSource = NewRemoteSource(c.Name, c.URL, client)
		if limiter != nil {
			src = ratelimit.NewLimitedSource(src, limiter, c.URL)
		}
		return retry.NewRetrySource(src, c.Name, rc.Attempts, rc.BaseDelay, logger)
	}
	return NewFileSource(c.Name, c.File)
}
