package instance

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	bberrors "github.com/nmrtools/bbsbbu/pkg/errors"
)

// Load reads an .nmr file: one row per line, each row's first two
// whitespace-separated tokens are integer atom indices i and j (i < j).
// Extra columns (the original distance-geometry payload) are tolerated and
// ignored. Blank lines and lines starting with '#' are skipped.
//
// Edges with j <= i+3 are backbone edges; they contribute to NNodes but are
// discarded before segment construction. Surviving prune
// edges are assigned ids 1..N in file order, then handed to BuildSegments.
func Load(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, bberrors.Wrap(bberrors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return load(f, path)
}

func load(r io.Reader, path string) (*Instance, error) {
	type rawEdge struct{ i, j Atom }

	var raw []rawEdge
	nnodes := 0

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, bberrors.New(bberrors.ErrCodeInvalidInput, "%s:%d: expected at least 2 columns, got %d", path, lineNo, len(fields))
		}
		i, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, bberrors.Wrap(bberrors.ErrCodeInvalidInput, err, "%s:%d: non-integer atom index %q", path, lineNo, fields[0])
		}
		j, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, bberrors.Wrap(bberrors.ErrCodeInvalidInput, err, "%s:%d: non-integer atom index %q", path, lineNo, fields[1])
		}
		if j <= i {
			return nil, bberrors.New(bberrors.ErrCodeInvalidInput, "%s:%d: expected i < j, got i=%d j=%d", path, lineNo, i, j)
		}
		raw = append(raw, rawEdge{Atom(i), Atom(j)})
		if j > nnodes {
			nnodes = j
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, bberrors.Wrap(bberrors.ErrCodeInvalidInput, err, "read %s", path)
	}
	if len(raw) == 0 {
		return nil, bberrors.New(bberrors.ErrCodeInvalidInput, "%s: no edges", path)
	}

	var pruneEdges []*Edge
	nextID := EdgeID(1)
	for _, re := range raw {
		if re.j <= re.i+3 {
			continue // backbone edge: contributes to NNodes only
		}
		pruneEdges = append(pruneEdges, &Edge{ID: nextID, I: re.i, J: re.j})
		nextID++
	}

	inst, err := BuildSegments(pruneEdges)
	if err != nil {
		return nil, err
	}
	inst.NNodes = nnodes
	return inst, nil
}
