package calsol

import (
	"fmt"
	"os"
)

// Load reads the solution stored at path. The container is selected once from
// the path suffix; see [FormatFromPath].
func Load(path string) (*Bandpass, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("calsol: %w", err)
	}
	defer f.Close()

	var bp *Bandpass
	switch format {
	case FormatAOCal:
		bp, err = ReadAOCal(f)
	case FormatNumPy:
		bp, err = ReadNPY(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrFormat, format)
	}

	if err != nil {
		return nil, fmt.Errorf("calsol: loading %s: %w", path, err)
	}

	return bp, nil
}

// Save writes bp to path in the container selected by the path suffix.
func Save(path string, bp *Bandpass) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("calsol: %w", err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("calsol: %w", cerr)
		}
	}()

	switch format {
	case FormatAOCal:
		err = WriteAOCal(f, bp)
	case FormatNumPy:
		err = WriteNPY(f, bp)
	default:
		err = fmt.Errorf("%w: %s", ErrFormat, format)
	}

	return err
}
