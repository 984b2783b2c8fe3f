package bus

import (
	"archive/zip"
	"compress/gzip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// LoadImage reads a memory image from a file.
//
// Images ending in .gz are decompressed; .zip and .7z archives yield their
// first regular file. Anything else is read as a raw binary.
func LoadImage(path string) (data []byte, err error) {
	defer func() {
		if err != nil {
			err = &ErrImage{Path: path, Err: err}
		}
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		data, err = loadGzip(path)
	case ".zip":
		var zr *zip.ReadCloser
		zr, err = zip.OpenReader(path)
		if err != nil {
			return
		}
		defer zr.Close()
		data, err = loadArchive(zr.File, func(zf *zip.File) (fs.FileInfo, func() (io.ReadCloser, error)) {
			return zf.FileInfo(), zf.Open
		})
	case ".7z":
		var sr *sevenzip.ReadCloser
		sr, err = sevenzip.OpenReader(path)
		if err != nil {
			return
		}
		defer sr.Close()
		data, err = loadArchive(sr.File, func(sf *sevenzip.File) (fs.FileInfo, func() (io.ReadCloser, error)) {
			return sf.FileInfo(), sf.Open
		})
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return
	}

	if len(data) == 0 {
		err = ErrImageEmpty
		return
	}

	if len(data) > RAM_SIZE {
		err = ErrImageSize
		return
	}

	return
}

func loadGzip(path string) (data []byte, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	zr, err := gzip.NewReader(inf)
	if err != nil {
		return
	}
	defer zr.Close()

	return io.ReadAll(zr)
}

// loadArchive reads the first regular file of an archive listing.
func loadArchive[F any](files []F, entry func(F) (fs.FileInfo, func() (io.ReadCloser, error))) (data []byte, err error) {
	for _, file := range files {
		info, open := entry(file)
		if !info.Mode().IsRegular() {
			continue
		}

		var rc io.ReadCloser
		rc, err = open()
		if err != nil {
			return
		}
		defer rc.Close()

		data, err = io.ReadAll(rc)
		return
	}

	err = ErrImageEmpty
	return
}
