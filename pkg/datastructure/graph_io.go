package datastructure

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/util"
)

// OpenInput opens filename and transparently decompresses it when the name ends with .bz2.
func OpenInput(filename string) (io.ReadCloser, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(filename, ".bz2") {
		return f, nil
	}

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &bzipReadCloser{Reader: bz, file: f}, nil
}

type bzipReadCloser struct {
	*bzip2.Reader
	file *os.File
}

func (b *bzipReadCloser) Close() error {
	err := b.Reader.Close()
	if cerr := b.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// ReadEdgeList parses "u v" lines. A line with a single id declares a vertex, '#' starts a comment.
func ReadEdgeList(r io.Reader) (*EdgeList, error) {
	var (
		vertexIDs = make([]int64, 0)
		edges     = make([]Edge, 0)
		seen      = make(map[int64]struct{})
	)
	addID := func(id int64) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			vertexIDs = append(vertexIDs, id)
		}
	}

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) > 2 {
			return nil, util.WrapErrorf(nil, util.ErrInput, "line %d: expected at most 2 ids, got %d", lineNumber, len(fields))
		}

		ids := make([]int64, len(fields))
		for i, field := range fields {
			id, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return nil, util.WrapErrorf(err, util.ErrInput, "line %d: invalid vertex id %q", lineNumber, field)
			}
			ids[i] = id
			addID(id)
		}
		if len(ids) == 2 {
			edges = append(edges, NewEdge(ids[0], ids[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return NewEdgeList(vertexIDs, edges), nil
}

func ReadEdgeListFile(filename string) (*EdgeList, error) {
	f, err := OpenInput(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadEdgeList(f)
}

// WriteEdgeList writes one single-id line per vertex, in order, followed by the edges. Reading the output back
// yields the same vertex order, which keeps the initial split reproducible.
func WriteEdgeList(w io.Writer, el *EdgeList) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %d vertices %d edges\n", len(el.VertexIDs), len(el.Edges))
	for _, id := range el.VertexIDs {
		fmt.Fprintf(bw, "%d\n", id)
	}
	for _, e := range el.Edges {
		fmt.Fprintf(bw, "%d %d\n", e.Left, e.Right)
	}

	return bw.Flush()
}

func WriteEdgeListFile(filename string, el *EdgeList) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if !strings.HasSuffix(filename, ".bz2") {
		return WriteEdgeList(f, el)
	}

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	if err := WriteEdgeList(bz, el); err != nil {
		bz.Close()
		return err
	}
	return bz.Close()
}
