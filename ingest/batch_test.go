package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"jobshield/domain"
	"jobshield/errors"
)

func TestParseBatch(t *testing.T) {
	req := require.New(t)

	file := []byte("id,job_description,location\n" +
		"1,Work from home earn money fast,NY\n" +
		"2,Regular accounting role with benefits,LA\n")

	rows, err := ParseBatch(file)
	req.NoError(err)
	req.Len(rows, 2)
	req.Equal(1, rows[0].Row)
	req.Equal("Work from home earn money fast", rows[0].Text)
	req.Equal(2, rows[1].Row)
	req.Equal("Regular accounting role with benefits", rows[1].Text)
}

func TestDetectTextColumn(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		description string
		header      []string
		want        int
	}{
		{"Should prefer job_text over other candidates", []string{"description", "job_text"}, 1},
		{"Should match case-insensitively", []string{"id", "Description"}, 1},
		{"Should trim header whitespace", []string{"id", " text "}, 1},
		{"Should fall back to the first column", []string{"col_a", "col_b"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req.Equal(tt.want, detectTextColumn(tt.header))
		})
	}
}

func TestParseBatch_Malformed(t *testing.T) {
	req := require.New(t)

	t.Run("Should reject an empty file", func(t *testing.T) {
		_, err := ParseBatch(nil)
		req.True(errors.IsInput(err))
		req.ErrorIs(err, errors.ErrMalformedBatch)
	})

	t.Run("Should reject a broken quoted row", func(t *testing.T) {
		_, err := ParseBatch([]byte("text\n\"unterminated\n"))
		req.ErrorIs(err, errors.ErrMalformedBatch)
	})
}

func TestParseBatch_RowCap(t *testing.T) {
	req := require.New(t)

	var sb strings.Builder
	sb.WriteString("text\n")
	for i := 0; i < maxBatchRows+100; i++ {
		sb.WriteString("another perfectly ordinary job description row\n")
	}

	rows, err := ParseBatch([]byte(sb.String()))
	req.NoError(err)
	req.Len(rows, maxBatchRows)
	req.Equal(maxBatchRows, rows[maxBatchRows-1].Row)
}

func TestParseBatch_ShortRowColumns(t *testing.T) {
	req := require.New(t)

	// A row with fewer columns than the text column index yields empty
	// text rather than an error.
	rows, err := ParseBatch([]byte("id,text\nonly-id\n2,real posting text here\n"))
	req.NoError(err)
	req.Len(rows, 2)
	req.Equal("", rows[0].Text)
	req.Equal("real posting text here", rows[1].Text)
}

func TestParseBatch_Latin1Fallback(t *testing.T) {
	req := require.New(t)

	// 0xE9 is é in Latin-1 and invalid as standalone UTF-8.
	file := append([]byte("text\ncaf"), 0xE9)
	file = append(file, []byte(" job with decent pay\n")...)

	rows, err := ParseBatch(file)
	req.NoError(err)
	req.Len(rows, 1)
	req.Equal("café job with decent pay", rows[0].Text)
}

func TestRenderBatchCSV(t *testing.T) {
	req := require.New(t)

	result := domain.BatchResult{Rows: []domain.BatchRow{
		{Row: 1, Preview: "Work from home earn money", Prediction: "Fake", Confidence: 97.25},
		{Row: 2, Preview: "Too short", Prediction: domain.BatchSkipped, Confidence: 0},
	}}

	out, err := RenderBatchCSV(result)
	req.NoError(err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	req.Len(lines, 3)
	req.Equal("Row, Text Preview, Prediction, Confidence (%)", strings.ReplaceAll(lines[0], ",", ", "))
	req.Contains(lines[1], "97.25")
	req.Contains(lines[2], "Skipped")
}
