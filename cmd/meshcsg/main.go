// Command meshcsg exercises the capi boolean/CDT entry points end to end:
// it reads two triangle meshes in a minimal OBJ subset (v/f lines only),
// runs a boolean between them, and writes the result as OBJ to stdout or
// -out.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/soypat/meshcsg/capi"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "meshcsg:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("meshcsg", flag.ContinueOnError)
	op := fs.String("op", "union", "boolean operation: union, intersection, difference, or self (in1 unused)")
	out := fs.String("out", "", "output OBJ path (default: stdout)")
	fs.Bool("hole-tolerant", false, "accepted but has no effect: the boolean always runs without hole tolerance, so unresolved coplanar overlaps fail")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) < 1 {
		return fmt.Errorf("usage: meshcsg [-op=union|intersection|difference|self] [-out=FILE] in0.obj [in1.obj]")
	}

	in0, err := readOBJ(rest[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", rest[0], err)
	}

	var bop capi.BLIOp
	switch *op {
	case "union":
		bop = capi.BLIBooleanUnion
	case "intersection":
		bop = capi.BLIBooleanIntersect
	case "difference":
		bop = capi.BLIBooleanDifference
	case "self":
		bop = capi.BLIBooleanNone
	default:
		return fmt.Errorf("unknown -op %q", *op)
	}

	var in1 *capi.BooleanTrimeshInput
	if *op != "self" {
		if len(rest) < 2 {
			return fmt.Errorf("-op=%s requires two input meshes", *op)
		}
		in1, err = readOBJ(rest[1])
		if err != nil {
			return fmt.Errorf("reading %s: %w", rest[1], err)
		}
	}

	result, cerr := capi.BLIBooleanTrimesh(in0, in1, bop)
	if cerr != nil {
		return fmt.Errorf("%s: %s", cerr.Kind, cerr.Msg)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return writeOBJ(w, result)
}

func readOBJ(path string) (*capi.BooleanTrimeshInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var verts [][3]float64
	var tris [][3]int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("malformed vertex line %q", line)
			}
			var v [3]float64
			for i := 0; i < 3; i++ {
				v[i], err = strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("malformed vertex line %q: %w", line, err)
				}
			}
			verts = append(verts, v)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("malformed face line %q", line)
			}
			var t [3]int
			for i := 0; i < 3; i++ {
				idx, err := strconv.Atoi(strings.SplitN(fields[i+1], "/", 2)[0])
				if err != nil {
					return nil, fmt.Errorf("malformed face line %q: %w", line, err)
				}
				t[i] = idx - 1 // OBJ indices are 1-based
			}
			tris = append(tris, t)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return &capi.BooleanTrimeshInput{N: len(verts), M: len(tris), Verts: verts, Tris: tris}, nil
}

func writeOBJ(w io.Writer, m *capi.BooleanTrimeshOutput) error {
	bw := bufio.NewWriter(w)
	for _, v := range m.Verts {
		if _, err := fmt.Fprintf(bw, "v %.17g %.17g %.17g\n", v[0], v[1], v[2]); err != nil {
			return err
		}
	}
	for _, t := range m.Tris {
		if _, err := fmt.Fprintf(bw, "f %d %d %d\n", t[0]+1, t[1]+1, t[2]+1); err != nil {
			return err
		}
	}
	return bw.Flush()
}
