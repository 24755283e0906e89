// Package stream reads parser input and cuts item sequences into bounded
// batches.
package stream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/dd0wney/glsgraph/pkg/progress"
	"golang.org/x/exp/mmap"
)

const readBufferSize = 1 << 20

// Source is a memory-mapped input file read line by line
type Source struct {
	path   string
	reader *mmap.ReaderAt
}

// Open maps the file at path. The returned error wraps the os error, so
// errors.Is(err, fs.ErrNotExist) works for missing files.
func Open(path string) (*Source, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Source{path: path, reader: r}, nil
}

// Path returns the file path
func (s *Source) Path() string {
	return s.path
}

// Size returns the file length in bytes
func (s *Source) Size() int {
	return s.reader.Len()
}

// Close unmaps the file
func (s *Source) Close() error {
	return s.reader.Close()
}

// Lines yields each line including its trailing newline, if any. The
// observer, when not nil, is told the byte length of every line consumed.
func (s *Source) Lines(obs progress.Observer) iter.Seq2[string, error] {
	obs = progress.OrNop(obs)
	return func(yield func(string, error) bool) {
		br := bufio.NewReaderSize(io.NewSectionReader(s.reader, 0, int64(s.reader.Len())), readBufferSize)
		for {
			line, err := br.ReadString('\n')
			if len(line) > 0 {
				obs.Update(len(line))
				if !yield(line, nil) {
					return
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield("", fmt.Errorf("read %s: %w", s.path, err))
				return
			}
		}
	}
}

// ReadLines opens path and yields its lines, unmapping the file when the
// sequence ends or the consumer stops early. An open failure is yielded as
// the first and only element.
func ReadLines(path string, obs progress.Observer) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		src, err := Open(path)
		if err != nil {
			yield("", err)
			return
		}
		defer src.Close()

		for line, err := range src.Lines(obs) {
			if !yield(line, err) || err != nil {
				return
			}
		}
	}
}
