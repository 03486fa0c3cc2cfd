package store

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// DefaultLogPath is where the line-pair log lives unless configured.
const DefaultLogPath = "data.txt"

// TextLog stores each series as two lines of space-separated numbers,
// speedups first and efficiencies second. There is no header and no
// per-record metadata, so records are told apart only by position.
type TextLog struct {
	path string
}

func NewTextLog(path string) *TextLog {
	if path == "" {
		path = DefaultLogPath
	}
	return &TextLog{path: path}
}

func (l *TextLog) Path() string {
	return l.path
}

// Persist appends the two lines of rec. The file is created if needed and
// never truncated.
func (l *TextLog) Persist(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := rec.validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	writeLine(&buf, rec.Speedup)
	writeLine(&buf, rec.Efficiency)

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open benchmark log: %w", err)
	}

	// One write keeps the pair together.
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return fmt.Errorf("append to %s: %w", l.path, err)
	}
	return f.Close()
}

func writeLine(buf *bytes.Buffer, values []float64) {
	for _, v := range values {
		buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		buf.WriteByte(' ')
	}
	buf.WriteByte('\n')
}

// ReloadAll pairs every two consecutive non-blank lines into a Record.
//
// When the last populated line has no partner it is dropped and the complete
// records are returned together with ErrUnpairedLine.
func (l *TextLog) ReloadAll(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrLogNotFound, err)
		}
		return nil, fmt.Errorf("open benchmark log: %w", err)
	}
	defer f.Close()

	var (
		records     []Record
		pending     []float64
		pendingLine int
		hasLine     bool
		lineNo      int
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		values, err := parseLine(line, lineNo)
		if err != nil {
			return nil, err
		}

		if !hasLine {
			pending = values
			pendingLine = lineNo
			hasLine = true
			continue
		}

		records = append(records, Record{Speedup: pending, Efficiency: values})
		pending = nil
		hasLine = false
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", l.path, err)
	}

	if hasLine {
		return records, fmt.Errorf("%w: %s line %d", ErrUnpairedLine, l.path, pendingLine)
	}
	return records, nil
}

func parseLine(line string, lineNo int) ([]float64, error) {
	fields := strings.Fields(line)
	values := make([]float64, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q is not a number", ErrMalformed, lineNo, field)
		}
		values = append(values, v)
	}
	return values, nil
}

func (l *TextLog) Close() error {
	return nil
}
