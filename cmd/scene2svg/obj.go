package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"github.com/golang/geo/r3"
	"github.com/tdewolff/parse/v2/strconv"
	"github.com/tdewolff/scene"
)

func skipSpace(line []byte) int {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return i
}

func parseCoord(line []byte) (float64, int) {
	i := skipSpace(line)
	f, n := strconv.ParseFloat(line[i:])
	return f, i + n
}

// readOBJ reads a Wavefront OBJ file, keeping only vertices and faces.
// Texture and normal references in face elements are ignored.
func readOBJ(filename string) (*scene.Mesh, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mesh := &scene.Mesh{}
	lineNo := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 65536), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if i := bytes.IndexByte(line, '#'); i != -1 {
			line = line[:i]
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case 2 < len(line) && line[0] == 'v' && (line[1] == ' ' || line[1] == '\t'):
			var v r3.Vector
			var n int
			line = line[1:]
			if v.X, n = parseCoord(line); n == 0 {
				return nil, fmt.Errorf("%s:%d: bad vertex", filename, lineNo)
			}
			line = line[n:]
			if v.Y, n = parseCoord(line); n == 0 {
				return nil, fmt.Errorf("%s:%d: bad vertex", filename, lineNo)
			}
			line = line[n:]
			if v.Z, n = parseCoord(line); n == 0 {
				return nil, fmt.Errorf("%s:%d: bad vertex", filename, lineNo)
			}
			mesh.Verts = append(mesh.Verts, v)
		case 2 < len(line) && line[0] == 'f' && (line[1] == ' ' || line[1] == '\t'):
			line = line[1:]
			var face []int
			for {
				i := skipSpace(line)
				line = line[i:]
				if len(line) == 0 {
					break
				}
				idx, n := strconv.ParseInt(line)
				if n == 0 {
					return nil, fmt.Errorf("%s:%d: bad face", filename, lineNo)
				}
				line = line[n:]
				if idx < 0 {
					idx += int64(len(mesh.Verts))
				} else {
					idx-- // OBJ indices are one-based
				}
				if idx < 0 || int64(len(mesh.Verts)) <= idx {
					return nil, fmt.Errorf("%s:%d: face vertex out of range", filename, lineNo)
				}
				face = append(face, int(idx))
				// skip texture and normal references
				for 0 < len(line) && line[0] != ' ' && line[0] != '\t' {
					line = line[1:]
				}
			}
			if 3 <= len(face) {
				mesh.Faces = append(mesh.Faces, face)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return mesh, nil
}
