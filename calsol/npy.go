package calsol

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

const (
	npyMagic     = "\x93NUMPY"
	npyDescr     = "<c16"
	npyAlignment = 64
)

var (
	npyDescrRe   = regexp.MustCompile(`'descr'\s*:\s*'([^']*)'`)
	npyFortranRe = regexp.MustCompile(`'fortran_order'\s*:\s*(True|False)`)
	npyShapeRe   = regexp.MustCompile(`'shape'\s*:\s*\(([^)]*)\)`)
)

// WriteNPY encodes bp as a C-ordered complex128 NumPy array of shape
// (nsol, nant, nchan, npol).
func WriteNPY(w io.Writer, bp *Bandpass) error {
	if err := bp.validate(); err != nil {
		return err
	}

	dict := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': (%d, %d, %d, %d), }",
		npyDescr, bp.NSol, bp.NAnt, bp.NChan, bp.NPol)

	// Pad so the payload starts on an aligned offset; the header ends in '\n'.
	preamble := len(npyMagic) + 2 + 2
	total := preamble + len(dict) + 1
	pad := (npyAlignment - total%npyAlignment) % npyAlignment
	header := dict + strings.Repeat(" ", pad) + "\n"

	bw := bufio.NewWriter(w)
	bw.WriteString(npyMagic)
	bw.Write([]byte{1, 0})

	if err := binary.Write(bw, binary.LittleEndian, uint16(len(header))); err != nil {
		return fmt.Errorf("calsol: writing npy header length: %w", err)
	}

	bw.WriteString(header)

	if err := binary.Write(bw, binary.LittleEndian, bp.Data); err != nil {
		return fmt.Errorf("calsol: writing npy payload: %w", err)
	}

	return bw.Flush()
}

// ReadNPY decodes a C-ordered complex128 NumPy array. A 3-D array is read as
// a single solution interval of shape (nant, nchan, npol).
func ReadNPY(r io.Reader) (*Bandpass, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, len(npyMagic)+2)
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("%w: npy preamble: %w", ErrTruncated, err)
	}

	if string(magic[:len(npyMagic)]) != npyMagic {
		return nil, fmt.Errorf("%w: not a npy file", ErrCorrupt)
	}

	var headerLen int
	switch major := magic[len(npyMagic)]; major {
	case 1:
		var n uint16
		if err := binary.Read(br, binary.LittleEndian, &n); err != nil {
			return nil, fmt.Errorf("%w: npy header length: %w", ErrTruncated, err)
		}
		headerLen = int(n)
	case 2, 3:
		var n uint32
		if err := binary.Read(br, binary.LittleEndian, &n); err != nil {
			return nil, fmt.Errorf("%w: npy header length: %w", ErrTruncated, err)
		}
		headerLen = int(n)
	default:
		return nil, fmt.Errorf("%w: npy version %d", ErrCorrupt, major)
	}

	header := make([]byte, headerLen)
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, fmt.Errorf("%w: npy header: %w", ErrTruncated, err)
	}

	shape, err := parseNPYHeader(header)
	if err != nil {
		return nil, err
	}

	if len(shape) == 3 {
		shape = append([]int{1}, shape...)
	}

	if err := checkHeaderShape(shape...); err != nil {
		return nil, err
	}

	bp, err := New(shape[0], shape[1], shape[2], shape[3])
	if err != nil {
		return nil, err
	}

	if err := binary.Read(br, binary.LittleEndian, bp.Data); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: want %d values: %w", ErrTruncated, len(bp.Data), err)
		}

		return nil, fmt.Errorf("calsol: reading npy payload: %w", err)
	}

	return bp, nil
}

func parseNPYHeader(header []byte) ([]int, error) {
	header = bytes.TrimSpace(header)

	m := npyDescrRe.FindSubmatch(header)
	if m == nil {
		return nil, fmt.Errorf("%w: npy header has no descr", ErrCorrupt)
	}

	if descr := string(m[1]); descr != npyDescr {
		return nil, fmt.Errorf("%w: npy dtype %q, want %q", ErrFormat, descr, npyDescr)
	}

	m = npyFortranRe.FindSubmatch(header)
	if m == nil {
		return nil, fmt.Errorf("%w: npy header has no fortran_order", ErrCorrupt)
	}

	if string(m[1]) == "True" {
		return nil, fmt.Errorf("%w: fortran-ordered npy arrays", ErrFormat)
	}

	m = npyShapeRe.FindSubmatch(header)
	if m == nil {
		return nil, fmt.Errorf("%w: npy header has no shape", ErrCorrupt)
	}

	var shape []int
	for _, field := range strings.Split(string(m[1]), ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%w: npy shape %q", ErrCorrupt, m[1])
		}

		shape = append(shape, n)
	}

	if len(shape) != 3 && len(shape) != 4 {
		return nil, fmt.Errorf("%w: npy array has %d dimensions, want 3 or 4", ErrShape, len(shape))
	}

	return shape, nil
}
