// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"encoding/gob"
	"errors"
	"io"
)

var (
	// ErrWriteGob is returned when writing the results to a binary format fails.
	ErrWriteGob = errors.New("failed to write binary results")
	// ErrReadGob is returned when reading binary results fails.
	ErrReadGob = errors.New("failed to read binary results")
)

// WriteGob writes results in gob format.
func WriteGob(w io.Writer, results Results) error {
	if err := gob.NewEncoder(w).Encode(results); err != nil {
		return errors.Join(ErrWriteGob, err)
	}

	return nil
}

// ReadGob reads results written by WriteGob.
func ReadGob(r io.Reader) (Results, error) {
	var results Results
	if err := gob.NewDecoder(r).Decode(&results); err != nil {
		return nil, errors.Join(ErrReadGob, err)
	}

	return results, nil
}
