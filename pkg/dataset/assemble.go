package dataset

import (
	"context"
	"errors"
	"net"
	"net/url"
	"sync"

	"go.uber.org/zap"

	"phishset/pkg/feature"
)

// Assembler drives the row builder over a batch of URLs. One unreachable or
// slow host never stops the table from growing from the remaining hosts.
type Assembler struct {
	extractor *Extractor
	logger    *zap.Logger
	workers   int
}

// NewAssembler creates an Assembler with a bounded worker pool. One worker
// gives strictly sequential processing.
func NewAssembler(extractor *Extractor, logger *zap.Logger, workers int) *Assembler {
	if workers < 1 {
		workers = 1
	}
	return &Assembler{
		extractor: extractor,
		logger:    logger,
		workers:   workers,
	}
}

// Assemble builds a record for each URL, skipping URLs whose fetch fails.
// The returned row set matches what sequential processing would produce;
// row order is not significant downstream.
func (a *Assembler) Assemble(ctx context.Context, urls []string) []feature.Record {
	jobs := make(chan string)

	var (
		mu      sync.Mutex
		records []feature.Record
		wg      sync.WaitGroup
	)

	wg.Add(a.workers)
	for w := 0; w < a.workers; w++ {
		go func() {
			defer wg.Done()
			for rawURL := range jobs {
				rec, err := a.extractor.BuildRow(ctx, rawURL, NormalizeURL(rawURL))
				if err != nil {
					if isTimeout(err) {
						a.logger.Warn("fetch timed out, skipping", zap.String("url", rawURL))
					} else {
						a.logger.Warn("fetch failed, skipping", zap.String("url", rawURL), zap.Error(err))
					}
					continue
				}

				mu.Lock()
				records = append(records, *rec)
				mu.Unlock()
				a.logger.Info("successfully added", zap.String("url", rawURL))
			}
		}()
	}

	for _, u := range urls {
		select {
		case jobs <- u:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return records
		}
	}
	close(jobs)
	wg.Wait()

	return records
}

// NormalizeURL prepends the http scheme when the URL has none, matching how
// bare domains are fetched.
func NormalizeURL(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Scheme != "" {
		return rawURL
	}
	return "http://" + rawURL
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
