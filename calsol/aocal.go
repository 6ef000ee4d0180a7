package calsol

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// aocalIntro is the magic that opens every AO calibrate solution file.
var aocalIntro = [8]byte{'M', 'W', 'A', 'O', 'C', 'A', 'L', 0}

type aocalHeader struct {
	Intro         [8]byte
	FileType      int32
	StructureType int32
	NSol          int32
	NAnt          int32
	NChan         int32
	NPol          int32
	StartTime     float64
	EndTime       float64
}

// ReadAOCal decodes an AO calibrate solution and converts the stored inverse
// gains to gains (value ← √2 / value).
func ReadAOCal(r io.Reader) (*Bandpass, error) {
	br := bufio.NewReader(r)

	var hdr aocalHeader
	if err := binary.Read(br, binary.LittleEndian, &hdr); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: header: %w", ErrTruncated, err)
		}

		return nil, fmt.Errorf("calsol: reading header: %w", err)
	}

	if hdr.Intro != aocalIntro {
		return nil, fmt.Errorf("%w: bad intro %q", ErrCorrupt, hdr.Intro[:])
	}

	nsol, nant, nchan, npol := int(hdr.NSol), int(hdr.NAnt), int(hdr.NChan), int(hdr.NPol)
	if err := checkHeaderShape(nsol, nant, nchan, npol); err != nil {
		return nil, err
	}

	bp, err := New(nsol, nant, nchan, npol)
	if err != nil {
		return nil, err
	}

	if err := binary.Read(br, binary.LittleEndian, bp.Data); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: want %d values: %w", ErrTruncated, len(bp.Data), err)
		}

		return nil, fmt.Errorf("calsol: reading payload: %w", err)
	}

	invertGains(bp.Data)

	return bp, nil
}

// WriteAOCal encodes bp as an AO calibrate solution, storing inverse gains.
func WriteAOCal(w io.Writer, bp *Bandpass) error {
	if err := bp.validate(); err != nil {
		return err
	}

	hdr := aocalHeader{
		Intro: aocalIntro,
		NSol:  int32(bp.NSol),
		NAnt:  int32(bp.NAnt),
		NChan: int32(bp.NChan),
		NPol:  int32(bp.NPol),
	}

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("calsol: writing header: %w", err)
	}

	payload := make([]complex128, len(bp.Data))
	copy(payload, bp.Data)
	invertGains(payload)

	if err := binary.Write(bw, binary.LittleEndian, payload); err != nil {
		return fmt.Errorf("calsol: writing payload: %w", err)
	}

	return bw.Flush()
}

// invertGains applies v ← √2 / v in place. The map is its own inverse.
func invertGains(data []complex128) {
	num := complex(math.Sqrt2, 0)
	for i, v := range data {
		data[i] = num / v
	}
}
