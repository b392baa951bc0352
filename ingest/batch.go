package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"jobshield/domain"
	"jobshield/errors"
)

const (
	maxBatchRows = 500
	// MinRowChars is the shortest row text worth scoring; shorter rows are
	// marked skipped instead of being rejected outright.
	MinRowChars = 10
)

// textColumnCandidates is checked in priority order against the header,
// case-insensitively. No match falls back to the first column.
var textColumnCandidates = []string{
	"job_text", "text", "description", "job_description", "posting", "content",
}

// BatchRowText is one parsed row awaiting classification.
type BatchRowText struct {
	Row  int
	Text string
}

// ParseBatch reads a delimited file with a header row and returns the text
// column of up to maxBatchRows rows. Non-UTF-8 input is decoded as Latin-1.
func ParseBatch(data []byte) ([]BatchRowText, error) {
	if !utf8.Valid(data) {
		data = latin1ToUTF8(data)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Input(errors.StageIngestBatch,
			fmt.Errorf("%w: no header row", errors.ErrMalformedBatch))
	}

	col := detectTextColumn(header)
	var rows []BatchRowText
	for i := 0; i < maxBatchRows; i++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Input(errors.StageIngestBatch,
				fmt.Errorf("%w: row %d: %v", errors.ErrMalformedBatch, i+1, err))
		}
		text := ""
		if col < len(record) {
			text = strings.TrimSpace(record[col])
		}
		rows = append(rows, BatchRowText{Row: i + 1, Text: text})
	}
	return rows, nil
}

func detectTextColumn(header []string) int {
	for _, candidate := range textColumnCandidates {
		for i, col := range header {
			if strings.EqualFold(strings.TrimSpace(col), candidate) {
				return i
			}
		}
	}
	return 0
}

func latin1ToUTF8(data []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(data) * 2)
	for _, b := range data {
		buf.WriteRune(rune(b))
	}
	return buf.Bytes()
}

// RenderBatchCSV renders per-row results as a downloadable delimited file
// with fixed columns.
func RenderBatchCSV(result domain.BatchResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Row", "Text Preview", "Prediction", "Confidence (%)"}); err != nil {
		return nil, err
	}
	for _, row := range result.Rows {
		record := []string{
			strconv.Itoa(row.Row),
			row.Preview,
			row.Prediction,
			strconv.FormatFloat(row.Confidence, 'f', 2, 64),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
