/*
 * files.go, part of gotraj.
 *
 * Copyright 2023 The gotraj developers
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

package dataset

import (
	"compress/flate"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//Tables can be written and read back transparently compressed. The
//compression is selected by the file name suffix: ".gz" for gzip, ".z"
//for raw deflate, ".zst" for zstandard, anything else for plain text.

const flateLevel = 9

//fileWriter closes the compressor before the file.
type fileWriter struct {
	f *os.File
	h io.WriteCloser
}

func (fw *fileWriter) Write(p []byte) (int, error) { return fw.h.Write(p) }

func (fw *fileWriter) Close() error {
	if fw.h != io.WriteCloser(fw.f) {
		if err := fw.h.Close(); err != nil {
			fw.f.Close()
			return err
		}
	}
	return fw.f.Close()
}

//Create opens a file for writing, wrapping it in the compressor that
//matches the name's suffix.
func Create(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, Error{err.Error(), []string{"Create"}}
	}
	var h io.WriteCloser
	switch {
	case strings.HasSuffix(name, ".gz"):
		h, err = gzip.NewWriterLevel(f, flateLevel)
	case strings.HasSuffix(name, ".zst"):
		h, err = zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	case strings.HasSuffix(name, ".z"):
		h, err = flate.NewWriter(f, flateLevel)
	default:
		h = f
	}
	if err != nil {
		f.Close()
		return nil, Error{err.Error(), []string{"Create"}}
	}
	return &fileWriter{f: f, h: h}, nil
}

//fileReader closes the decompressor resources and then the file.
type fileReader struct {
	f     *os.File
	r     io.Reader
	close func()
}

func (fr *fileReader) Read(p []byte) (int, error) { return fr.r.Read(p) }

func (fr *fileReader) Close() error {
	if fr.close != nil {
		fr.close()
	}
	return fr.f.Close()
}

//Open opens a possibly compressed table file for reading, picking the
//decompressor from the name's suffix, like Create.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{err.Error(), []string{"Open"}}
	}
	ret := &fileReader{f: f}
	switch {
	case strings.HasSuffix(name, ".gz"):
		g, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, Error{err.Error(), []string{"Open"}}
		}
		ret.r = g
		ret.close = func() { g.Close() }
	case strings.HasSuffix(name, ".zst"):
		z, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, Error{err.Error(), []string{"Open"}}
		}
		ret.r = z
		ret.close = z.Close
	case strings.HasSuffix(name, ".z"):
		fl := flate.NewReader(f)
		ret.r = fl
		ret.close = func() { fl.Close() }
	default:
		ret.r = f
	}
	return ret, nil
}
