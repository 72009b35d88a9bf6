package placement

import (
	"context"
	"time"
)

// Refresher re-derives hoarding availability after placements expire; the
// flag is a cache of the placement set, never a source of truth.
type Refresher interface {
	ReleaseExpired(ctx context.Context) (int64, error)
}

type refresher struct {
	r Repo
}

func NewRefresher(r Repo) Refresher { return &refresher{r: r} }

func (c *refresher) ReleaseExpired(ctx context.Context) (int64, error) {
	return c.r.ReleaseExpired(ctx, time.Now().UTC())
}
