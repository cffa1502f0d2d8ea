package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"

	"go.uber.org/zap"

	"phishset/pkg/config"
	"phishset/pkg/feature"
)

// LabeledURL is one row of the labeled source table.
type LabeledURL struct {
	URL   string
	Label string
}

// LabeledRecord is a feature Record joined with its ground-truth label.
type LabeledRecord struct {
	feature.Record
	Label string
}

// LoadLabeled reads the labeled URL source. It requires at least the "url"
// and "type" columns.
func LoadLabeled(filePath string) ([]LabeledURL, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read header row: %w", err)
	}

	colIndex := make(map[string]int)
	for i, colName := range header {
		colIndex[colName] = i
	}

	requiredCols := []string{"url", "type"}
	for _, col := range requiredCols {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("required column '%s' not found in CSV header", col)
		}
	}

	var rows []LabeledURL
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV record: %w", err)
		}

		url := record[colIndex["url"]]
		if url == "" {
			continue
		}
		rows = append(rows, LabeledURL{URL: url, Label: record[colIndex["type"]]})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("file contained no labeled URLs")
	}
	return rows, nil
}

// Curator builds the final balanced, labeled dataset.
type Curator struct {
	assembler *Assembler
	cfg       *config.Config
	logger    *zap.Logger
}

// NewCurator creates a Curator.
func NewCurator(assembler *Assembler, cfg *config.Config, logger *zap.Logger) *Curator {
	return &Curator{
		assembler: assembler,
		cfg:       cfg,
		logger:    logger,
	}
}

// Run loads the labeled source, samples each class, extracts features for
// the sampled URLs, joins the rows back onto their labels, truncates each
// class, shuffles with the configured seed, and persists the result.
func (c *Curator) Run(ctx context.Context) error {
	source, err := LoadLabeled(c.cfg.InputCSV)
	if err != nil {
		return fmt.Errorf("loading labeled source: %w", err)
	}

	phishing := filterByLabel(source, "phishing")
	benign := filterByLabel(source, "benign")
	c.logger.Info("loaded labeled source",
		zap.Int("phishing", len(phishing)),
		zap.Int("benign", len(benign)))

	phishingRecords := c.buildClass(ctx, phishing, c.cfg.PhishingSample)
	benignRecords := c.buildClass(ctx, benign, c.cfg.BenignSample)

	phishingRecords = truncate(phishingRecords, c.cfg.ClassSize)
	benignRecords = truncate(benignRecords, c.cfg.ClassSize)

	final := append(phishingRecords, benignRecords...)

	// Fixed seed keeps the shuffle reproducible across runs.
	rng := rand.New(rand.NewSource(c.cfg.ShuffleSeed))
	rng.Shuffle(len(final), func(i, j int) {
		final[i], final[j] = final[j], final[i]
	})

	if err := c.write(final); err != nil {
		return err
	}

	c.logger.Info("dataset saved",
		zap.String("path", c.cfg.OutputCSV),
		zap.Int("rows", len(final)))
	return nil
}

// buildClass samples up to limit unique URLs from one class, assembles
// their feature rows, and joins each row back onto its label. URLs whose
// fetch failed produced no row and simply drop out of the join.
func (c *Curator) buildClass(ctx context.Context, class []LabeledURL, limit int) []LabeledRecord {
	urls := uniqueHead(class, limit)
	records := c.assembler.Assemble(ctx, urls)

	labelByURL := make(map[string]string, len(class))
	for _, row := range class {
		if _, ok := labelByURL[row.URL]; !ok {
			labelByURL[row.URL] = row.Label
		}
	}

	joined := make([]LabeledRecord, 0, len(records))
	for _, rec := range records {
		label, ok := labelByURL[rec.URL]
		if !ok {
			continue
		}
		joined = append(joined, LabeledRecord{Record: rec, Label: label})
	}
	return joined
}

func (c *Curator) write(records []LabeledRecord) error {
	writer, err := NewCSVWriter(c.cfg.OutputCSV)
	if err != nil {
		return err
	}

	header := append(append([]string{}, feature.Header...), "type")
	if err := writer.WriteHeader(header); err != nil {
		writer.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	for _, rec := range records {
		row := append(rec.ToCSVRow(), rec.Label)
		if err := writer.WriteRow(row); err != nil {
			writer.Close()
			return fmt.Errorf("writing row: %w", err)
		}
	}
	return writer.Close()
}

func filterByLabel(rows []LabeledURL, label string) []LabeledURL {
	var out []LabeledURL
	for _, row := range rows {
		if row.Label == label {
			out = append(out, row)
		}
	}
	return out
}

// uniqueHead takes up to limit distinct URLs in input order.
func uniqueHead(rows []LabeledURL, limit int) []string {
	seen := make(map[string]struct{}, limit)
	var urls []string
	for _, row := range rows {
		if len(urls) >= limit {
			break
		}
		if _, ok := seen[row.URL]; ok {
			continue
		}
		seen[row.URL] = struct{}{}
		urls = append(urls, row.URL)
	}
	return urls
}

func truncate(records []LabeledRecord, n int) []LabeledRecord {
	if len(records) > n {
		return records[:n]
	}
	return records
}
