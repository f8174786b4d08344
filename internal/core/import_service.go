package core

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"fitmyphone-backend-go/internal/db"
	"fitmyphone-backend-go/internal/models"
)

// Custom errors for the ImportService.
var (
	ErrMissingModelColumn = errors.New("CSV header must include a model column")
	ErrEmptyImport        = errors.New("CSV contains no importable rows")
)

// Header aliases accepted (case-insensitively) for the master-model import.
var masterModelHeaderAliases = map[string]struct{}{
	"model":        {},
	"master model": {},
	"name":         {},
	"value":        {},
}

// importService implements the ImportService interface. Writes are grouped
// into fixed-size batches within the store's 500-operation limit and the
// batches are committed concurrently; a failing batch cancels the group, but
// batches already committed stay applied. Partial application on failure is
// part of the contract.
type importService struct {
	accessoryRepo   db.AccessoryRepository
	masterModelRepo db.MasterModelRepository
	batchSize       int
}

// NewImportService creates a new ImportService instance.
func NewImportService(accessoryRepo db.AccessoryRepository, masterModelRepo db.MasterModelRepository, batchSize int) ImportService {
	if batchSize <= 0 || batchSize > 500 {
		batchSize = 500
	}
	return &importService{
		accessoryRepo:   accessoryRepo,
		masterModelRepo: masterModelRepo,
		batchSize:       batchSize,
	}
}

// headerIndex maps lowercased, trimmed column names to their position.
func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, column := range header {
		index[strings.ToLower(strings.TrimSpace(column))] = i
	}
	return index
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseAccessoryRows turns CSV rows into pending accessory writes.
// Each row becomes exactly one document: rows with an explicit accessoryId
// target that document, all other rows get a fresh ID — they are never merged
// with each other, even when categories coincide within the file.
func (s *importService) parseAccessoryRows(csvData io.Reader) ([]db.AccessoryWrite, *ImportSummary, error) {
	reader := csv.NewReader(csvData)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	columns := headerIndex(header)

	modelIdx, ok := columns["model"]
	if !ok {
		return nil, nil, ErrMissingModelColumn
	}
	categoryIdx, hasCategory := columns["category"]
	accessoryIDIdx, hasAccessoryID := columns["accessoryid"]
	contributorIdx, hasContributor := columns["contributorname"]

	summary := &ImportSummary{}
	var writes []db.AccessoryWrite

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		summary.RowsRead++

		// Multiple models in one row are pipe-delimited.
		var names []string
		for _, name := range strings.Split(cell(row, modelIdx), "|") {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				names = append(names, trimmed)
			}
		}
		if len(names) == 0 {
			summary.RowsSkipped++
			continue
		}

		contributorName := ""
		if hasContributor {
			contributorName = cell(row, contributorIdx)
		}
		entries, _ := mergeModelEntries(nil, names, "", contributorName)

		accessory := &models.Accessory{
			Models: entries,
			Source: "bulk_import",
		}
		if hasCategory {
			accessory.AccessoryType = cell(row, categoryIdx)
		}
		if contributorName != "" {
			accessory.Contributor = models.ContributorSummary{DisplayName: contributorName}
		}

		docID := ""
		if hasAccessoryID {
			docID = cell(row, accessoryIDIdx)
		}
		writes = append(writes, db.AccessoryWrite{DocID: docID, Accessory: accessory})
	}

	return writes, summary, nil
}

// ImportAccessories parses a bulk accessory CSV and commits the resulting
// upserts in concurrent batches.
func (s *importService) ImportAccessories(ctx context.Context, csvData io.Reader) (*ImportSummary, error) {
	writes, summary, err := s.parseAccessoryRows(csvData)
	if err != nil {
		return nil, err
	}
	if len(writes) == 0 {
		return nil, ErrEmptyImport
	}

	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < len(writes); start += s.batchSize {
		end := start + s.batchSize
		if end > len(writes) {
			end = len(writes)
		}
		chunk := writes[start:end]
		g.Go(func() error {
			return s.accessoryRepo.CommitBatch(gctx, chunk)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("bulk accessory import failed: %w", err)
	}

	summary.DocsWritten = len(writes)
	return summary, nil
}

// parseMasterModelRows extracts device names from a master-model CSV. The
// name column is found by its header alias, matched case-insensitively.
// Names are deduplicated case-insensitively, keeping first-seen casing.
func parseMasterModelRows(csvData io.Reader) ([]string, *ImportSummary, error) {
	reader := csv.NewReader(csvData)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	nameIdx := -1
	for i, column := range header {
		if _, ok := masterModelHeaderAliases[strings.ToLower(strings.TrimSpace(column))]; ok {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 {
		return nil, nil, ErrMissingModelColumn
	}

	summary := &ImportSummary{}
	seen := make(map[string]struct{})
	var names []string

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		summary.RowsRead++

		name := cell(row, nameIdx)
		if name == "" {
			summary.RowsSkipped++
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			summary.RowsSkipped++
			continue
		}
		seen[key] = struct{}{}
		names = append(names, name)
	}

	return names, summary, nil
}

// ImportMasterModels parses a master-model CSV and upserts the names into the
// canonical device list.
func (s *importService) ImportMasterModels(ctx context.Context, csvData io.Reader) (*ImportSummary, error) {
	names, summary, err := parseMasterModelRows(csvData)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrEmptyImport
	}

	if err := s.masterModelRepo.BulkUpsert(ctx, names); err != nil {
		return nil, fmt.Errorf("bulk master model import failed: %w", err)
	}

	summary.DocsWritten = len(names)
	return summary, nil
}
