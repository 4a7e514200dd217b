package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kaviapp/kavi/pkg/logger_i"
)

var (
	ErrCorpusUnavailable = errors.New("corpus directory unavailable")
	ErrCorpusParse       = errors.New("corpus file malformed")
)

var log = logger_i.NewLogger("corpusLoader")

// Loader turns a directory of tabular question files into chunks ready
// for embedding.
type Loader struct {
	chunkSize int
	overlap   int
}

func NewLoader(chunkSize int, overlap int) *Loader {
	return &Loader{chunkSize: chunkSize, overlap: overlap}
}

// Load reads every csv file under dir, flattens each data row into one
// text chunk and splits oversized rows into overlapping windows. Files
// are visited in lexical order so chunk ordinals stay stable across
// runs. The first record of each file is treated as a header and
// skipped.
func (l *Loader) Load(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorpusUnavailable, dir)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no csv files in %s", ErrCorpusUnavailable, dir)
	}

	var chunks []string
	for _, name := range names {
		fileChunks, err := l.loadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, fileChunks...)
	}
	log.Info("corpus loaded", "files", len(names), "chunks", len(chunks))
	return chunks, nil
}

func (l *Loader) loadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorpusUnavailable, path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var chunks []string
	header := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: file %q: %s", ErrCorpusParse, filepath.Base(path), err)
		}
		if header {
			header = false
			continue
		}
		row := flattenRow(record)
		if row == "" {
			continue
		}
		chunks = append(chunks, SplitText(row, l.chunkSize, l.overlap)...)
	}
	return chunks, nil
}

func flattenRow(record []string) string {
	fields := make([]string, 0, len(record))
	for _, field := range record {
		field = strings.TrimSpace(field)
		if field != "" {
			fields = append(fields, field)
		}
	}
	return strings.Join(fields, " ")
}
