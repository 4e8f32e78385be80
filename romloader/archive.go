package romloader

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode/v2"
)

// entry is one member of an archive.
type entry struct {
	name string
	dir  bool
	open func() (io.ReadCloser, error)
}

// firstNES reads the first regular .nes member yielded by entries.
func firstNES(entries iter.Seq2[entry, error]) ([]byte, string, error) {
	for e, err := range entries {
		if err != nil {
			return nil, "", err
		}
		if e.dir || !isNESFile(e.name) {
			continue
		}
		rc, err := e.open()
		if err != nil {
			return nil, "", fmt.Errorf("failed to open %s in archive: %w", e.name, err)
		}
		data, err := limitedRead(rc)
		rc.Close()
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", e.name, err)
		}
		return data, filepath.Base(e.name), nil
	}
	return nil, "", ErrNoNESFile
}

func extractFromZIP(path string) ([]byte, string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open zip: %w", err)
	}
	defer r.Close()

	return firstNES(func(yield func(entry, error) bool) {
		for _, f := range r.File {
			if !yield(entry{name: f.Name, dir: f.FileInfo().IsDir(), open: f.Open}, nil) {
				return
			}
		}
	})
}

func extractFrom7z(path string) ([]byte, string, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open 7z: %w", err)
	}
	defer r.Close()

	return firstNES(func(yield func(entry, error) bool) {
		for _, f := range r.File {
			if !yield(entry{name: f.Name, dir: f.FileInfo().IsDir(), open: f.Open}, nil) {
				return
			}
		}
	})
}

// extractFromGzip handles both a single gzipped image and a tar.gz archive.
func extractFromGzip(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open gzip: %w", err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gr.Close()

	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".tar.gz") || strings.HasSuffix(lower, ".tgz") {
		return firstNES(tarEntries(tar.NewReader(gr)))
	}

	data, err := limitedRead(gr)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decompress gzip: %w", err)
	}
	name := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(name), ".gz") {
		name = name[:len(name)-len(".gz")]
	}
	return data, name, nil
}

func tarEntries(tr *tar.Reader) iter.Seq2[entry, error] {
	return func(yield func(entry, error) bool) {
		for {
			h, err := tr.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(entry{}, fmt.Errorf("failed to read tar entry: %w", err))
				return
			}
			e := entry{
				name: h.Name,
				dir:  h.Typeflag != tar.TypeReg,
				open: func() (io.ReadCloser, error) { return io.NopCloser(tr), nil },
			}
			if !yield(e, nil) {
				return
			}
		}
	}
}

func extractFromRAR(path string) ([]byte, string, error) {
	r, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open rar: %w", err)
	}
	defer r.Close()

	return firstNES(func(yield func(entry, error) bool) {
		for {
			h, err := r.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(entry{}, fmt.Errorf("failed to read rar entry: %w", err))
				return
			}
			e := entry{
				name: h.Name,
				dir:  h.IsDir,
				open: func() (io.ReadCloser, error) { return io.NopCloser(r), nil },
			}
			if !yield(e, nil) {
				return
			}
		}
	})
}
