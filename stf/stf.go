/*
 * stf.go, part of gostereo.
 *
 * Copyright 2024 The gostereo authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package stf

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	chem "github.com/gostereo/gostereo"
	v3 "github.com/gostereo/gostereo/v3"
)

const defaultPrec = 2

// Writer writes frames to a compressed trajectory file.
type Writer struct {
	f         *os.File
	h         *zstd.Encoder
	natoms    int
	filename  string
	writeable bool
	prec      int
	mult      float64
}

// NewWriter creates the file name and writes the header. Every key in
// header becomes a key=value line; the key "prec" additionally sets the
// coordinate precision (decimal digits kept).
func NewWriter(name string, natoms int, header map[string]string) (*Writer, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		f.Close()
		return nil, chem.NewError("stf.NewWriter", "can't open zstd stream for %s: %v", name, err)
	}
	W := &Writer{f: f, h: enc, natoms: natoms, filename: name, writeable: true, prec: defaultPrec}
	if p, ok := header["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err != nil || prec < 0 {
			W.Close()
			return nil, chem.NewError("stf.NewWriter", "invalid precision %q for %s", p, name)
		}
		W.prec = prec
	}
	W.mult = math.Pow(10, float64(W.prec))
	for k, v := range header {
		fmt.Fprintf(W.h, "%s=%s\n", k, v)
	}
	fmt.Fprintf(W.h, "** %d\n", natoms)
	return W, nil
}

// Len returns the number of atoms per frame.
func (W *Writer) Len() int { return W.natoms }

// WNext appends one frame.
func (W *Writer) WNext(coord *v3.Matrix) error {
	if !W.writeable {
		return chem.NewError("stf.WNext", "%s is not open for writing", W.filename)
	}
	if coord == nil {
		return chem.NewError("stf.WNext", "nil coordinates for %s", W.filename)
	}
	if v := coord.NVecs(); v != W.natoms {
		return chem.NewError("stf.WNext", "%d coordinates given, %d expected", v, W.natoms)
	}
	for i := 0; i < W.natoms; i++ {
		fmt.Fprintf(W.h, "%d %d %d\n",
			int(math.RoundToEven(coord.At(i, 0)*W.mult)),
			int(math.RoundToEven(coord.At(i, 1)*W.mult)),
			int(math.RoundToEven(coord.At(i, 2)*W.mult)))
	}
	_, err := W.h.Write([]byte("*\n"))
	return err
}

// Close flushes and closes the file. Safe on a nil or already closed Writer.
func (W *Writer) Close() {
	if W == nil || !W.writeable {
		return
	}
	W.h.Close()
	W.f.Close()
	W.writeable = false
}

// Reader reads frames back from a trajectory file.
type Reader struct {
	f        *os.File
	dec      *zstd.Decoder
	h        *bufio.Reader
	natoms   int
	filename string
	mult     float64
	readable bool
}

// New opens name for reading and parses the header. It returns the handle
// and the header key=value map (nil when the file has no header lines).
func New(name string) (*Reader, map[string]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, chem.NewError("stf.New", "can't open zstd stream for %s: %v", name, err)
	}
	R := &Reader{f: f, dec: dec, h: bufio.NewReader(dec), filename: name, natoms: -1, mult: math.Pow(10, defaultPrec)}
	var m map[string]string
	for {
		str, err := R.h.ReadString('\n')
		if err != nil {
			R.Close()
			return nil, nil, chem.NewError("stf.New", "can't read header of %s: %v", name, err)
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "**") {
			fields := strings.Fields(str)
			if len(fields) != 2 {
				R.Close()
				return nil, nil, chem.NewError("stf.New", "malformed atom count line %q in %s", str, name)
			}
			R.natoms, err = strconv.Atoi(fields[1])
			if err != nil {
				R.Close()
				return nil, nil, chem.NewError("stf.New", "malformed atom count %q in %s", fields[1], name)
			}
			break
		}
		kv := strings.SplitN(str, "=", 2)
		if len(kv) != 2 {
			R.Close()
			return nil, nil, chem.NewError("stf.New", "malformed header line %q in %s", str, name)
		}
		if m == nil {
			m = make(map[string]string)
		}
		m[kv[0]] = kv[1]
	}
	if p, ok := m["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err != nil || prec < 0 {
			R.Close()
			return nil, nil, chem.NewError("stf.New", "invalid precision %q in %s", p, name)
		}
		R.mult = math.Pow(10, float64(prec))
	}
	R.readable = true
	return R, m, nil
}

// Len returns the number of atoms per frame.
func (R *Reader) Len() int { return R.natoms }

// Readable reports whether Next can still be called.
func (R *Reader) Readable() bool { return R.readable }

// Next reads one frame into coord, which must have natoms rows. At the end
// of the trajectory it returns io.EOF.
func (R *Reader) Next(coord *v3.Matrix) error {
	if !R.readable {
		return chem.NewError("stf.Next", "%s is not open for reading", R.filename)
	}
	if coord == nil || coord.NVecs() != R.natoms {
		return chem.NewError("stf.Next", "destination matrix needs %d rows", R.natoms)
	}
	for i := 0; i < R.natoms; i++ {
		str, err := R.h.ReadString('\n')
		if err != nil {
			R.readable = false
			if err == io.EOF && i == 0 {
				return io.EOF
			}
			return chem.NewError("stf.Next", "truncated frame in %s: %v", R.filename, err)
		}
		str = strings.TrimSuffix(str, "\n")
		if str == "*" {
			//end-of-frame where coordinates were expected
			R.readable = false
			return chem.NewError("stf.Next", "short frame in %s", R.filename)
		}
		fields := strings.Fields(str)
		if len(fields) != 3 {
			R.readable = false
			return chem.NewError("stf.Next", "malformed coordinate line %q in %s", str, R.filename)
		}
		for c := 0; c < 3; c++ {
			v, err := strconv.Atoi(fields[c])
			if err != nil {
				R.readable = false
				return chem.NewError("stf.Next", "malformed coordinate %q in %s", fields[c], R.filename)
			}
			coord.Set(i, c, float64(v)/R.mult)
		}
	}
	str, err := R.h.ReadString('\n')
	if err != nil && err != io.EOF {
		R.readable = false
		return chem.NewError("stf.Next", "missing frame terminator in %s: %v", R.filename, err)
	}
	if !strings.HasPrefix(str, "*") {
		R.readable = false
		return chem.NewError("stf.Next", "missing frame terminator in %s", R.filename)
	}
	return nil
}

// Close releases the handle. Safe on a nil or already closed Reader.
func (R *Reader) Close() {
	if R == nil || R.dec == nil {
		return
	}
	R.dec.Close()
	R.f.Close()
	R.readable = false
	R.dec = nil
}
