package extract

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ytget/yt-web-downloader/internal/model"
)

// Resolver walks the fixed strategy order, first success wins. Strategies are
// tried strictly sequentially; a strategy that failed is never retried within
// the same lookup.
type Resolver struct {
	invoker    MetadataInvoker
	strategies []Strategy
	fallback   Strategy
	log        *logrus.Logger
}

// NewResolver creates a resolver over the process-wide strategy chain.
func NewResolver(invoker MetadataInvoker, log *logrus.Logger) *Resolver {
	return &Resolver{
		invoker:    invoker,
		strategies: Strategies(),
		fallback:   DefaultStrategy(),
		log:        log,
	}
}

// Resolve returns the first raw record any strategy yields. When every named
// strategy fails, one final attempt runs with the default profile; if that
// fails too, the lookup fails with model.ExhaustedError carrying the last
// underlying cause. Per-strategy causes are logged, not returned.
func (r *Resolver) Resolve(ctx context.Context, url string) (*model.RawVideoRecord, error) {
	var lastErr error

	for _, strategy := range r.strategies {
		record, err := r.invoker.Extract(ctx, url, strategy)
		if err == nil {
			r.log.WithFields(logrus.Fields{"strategy": strategy.Name}).Info("metadata extracted")
			return record, nil
		}
		lastErr = err
		r.log.WithFields(logrus.Fields{
			"strategy": strategy.Name,
			"error":    err,
		}).Warn("extraction strategy failed, trying next")

		if ctx.Err() != nil {
			break
		}
	}

	if ctx.Err() == nil {
		record, err := r.invoker.Extract(ctx, url, r.fallback)
		if err == nil {
			r.log.WithFields(logrus.Fields{"strategy": r.fallback.Name}).Info("metadata extracted")
			return record, nil
		}
		lastErr = err
		r.log.WithFields(logrus.Fields{
			"strategy": r.fallback.Name,
			"error":    err,
		}).Warn("default extraction profile failed")
	}

	return nil, &model.ExhaustedError{LastCause: lastErr}
}
