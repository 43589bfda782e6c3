package importer

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"RoundSentinel/internal/model"
)

// timeLayouts are tried in order when parsing timestamps.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

type roundCSVRowDTO struct {
	Timestamp  string  `csv:"timestamp"`
	Multiplier float64 `csv:"multiplier"`
}

type roundLogCSVRowDTO struct {
	Index      int     `csv:"index"`
	Timestamp  string  `csv:"timestamp"`
	Multiplier float64 `csv:"multiplier"`
	Score      int     `csv:"score"`
	Type       string  `csv:"type"`
	Pink       bool    `csv:"pink_at_entry"`
}

// CSVSource reads rounds from a CSV file with timestamp and multiplier columns.
type CSVSource struct {
	Path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (c *CSVSource) Name() string { return "csv:" + c.Path }

func (c *CSVSource) FetchRounds() ([]Row, error) {
	f, err := os.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", c.Path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses rounds from CSV. The timestamp column may be blank.
func ReadCSV(r io.Reader) ([]Row, error) {
	var dtos []*roundCSVRowDTO
	if err := gocsv.Unmarshal(r, &dtos); err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	rows := make([]Row, 0, len(dtos))
	for i, d := range dtos {
		ts, err := parseTimestamp(d.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		rows = append(rows, Row{Timestamp: ts, Multiplier: d.Multiplier})
	}
	return rows, nil
}

// WriteCSV exports the round log.
func WriteCSV(w io.Writer, rounds []model.Round) error {
	dtos := make([]*roundLogCSVRowDTO, len(rounds))
	for i, r := range rounds {
		dtos[i] = &roundLogCSVRowDTO{
			Index:      i,
			Timestamp:  r.Timestamp.Format(time.RFC3339Nano),
			Multiplier: r.Multiplier,
			Score:      r.Score,
			Type:       string(r.Type),
			Pink:       r.PinkAtEntry,
		}
	}
	return gocsv.Marshal(&dtos, w)
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
