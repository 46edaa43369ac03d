// Package excel loads feature datasets from Excel or CSV files. Columns
// map case-insensitively onto the canonical feature names; identity
// columns (player_id, name, season) are optional.
package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"courtlens/domain/core"
	"courtlens/domain/player"
)

const sheetName = "Sheet1"

// Identity column headers recognized alongside the feature columns
const (
	colPlayerID = "player_id"
	colName     = "name"
	colSeason   = "season"
)

// DatasetReader reads a feature dataset from an xlsx or csv file
type DatasetReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDatasetReader builds a reader, detecting the file type by extension
func NewDatasetReader(filePath string) *DatasetReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DatasetReader{filePath: filePath, fileType: fileType}
}

// ReadDataset loads the full dataset into feature vectors
func (r *DatasetReader) ReadDataset() (player.Dataset, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("dataset must have a header row and at least one data row")
	}
	return r.processRows(rows)
}

func (r *DatasetReader) readExcelRows() ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheetName, err)
	}
	log.Printf("[DatasetReader] Excel file read in %.2fms (%d rows)",
		float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

func (r *DatasetReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	startTime := time.Now()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	log.Printf("[DatasetReader] CSV file read in %.2fms (%d rows)",
		float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// processRows converts raw string rows into feature vectors. Unknown
// columns are ignored; empty or non-numeric cells leave the metric absent.
func (r *DatasetReader) processRows(rows [][]string) (player.Dataset, error) {
	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(header))
	}

	featureCols := 0
	known := make(map[string]bool, len(player.FeatureNames()))
	for _, name := range player.FeatureNames() {
		known[name] = true
	}
	for _, h := range headers {
		if known[h] {
			featureCols++
		}
	}
	if featureCols == 0 {
		return nil, fmt.Errorf("no recognized feature columns in header: %v", headers)
	}

	ds := make(player.Dataset, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		v := player.FeatureVector{PlayerID: core.PlayerID(core.NewID())}
		for j, cell := range rows[i] {
			if j >= len(headers) {
				break
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			switch header := headers[j]; header {
			case colPlayerID:
				if id, err := core.ParsePlayerID(cell); err == nil {
					v.PlayerID = id
				}
			case colName:
				v.Name = cell
			case colSeason:
				if season, err := core.ParseSeason(cell); err == nil {
					v.Season = season
				}
			default:
				if !known[header] {
					continue
				}
				val, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					continue
				}
				v = v.WithMetric(header, player.Some(val))
			}
		}
		v = v.Normalize()
		if !v.LatentPotential.Known {
			v = v.RecomputeLatentPotential()
		}
		ds = append(ds, v)
	}

	log.Printf("[DatasetReader] %s dataset processed (%d feature columns, %d rows)",
		strings.ToUpper(r.fileType), featureCols, len(ds))
	return ds, nil
}
