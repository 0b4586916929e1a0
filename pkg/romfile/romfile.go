// Package romfile loads cartridge and boot ROM images from disk,
// transparently decompressing the archive formats the teacher's own file
// loader recognized, so a user can point either loader at a .zip, .gz or
// .7z without pre-extracting it by hand.
package romfile

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/sevenzip"

	"github.com/thelolagemann/dmgcore/internal/boot"
)

// Load reads path and, based on its extension, transparently decompresses
// it: .gz via gzip, .zip and .7z by extracting their first archived entry.
// Any other extension is returned unmodified.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch filepath.Ext(path) {
	case ".gz":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("romfile: %s: %w", path, err)
		}
		defer r.Close()
		return io.ReadAll(r)

	case ".zip":
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("romfile: %s: %w", path, err)
		}
		if len(zr.File) == 0 {
			return nil, fmt.Errorf("romfile: %s: empty zip archive", path)
		}
		rc, err := zr.File[0].Open()
		if err != nil {
			return nil, fmt.Errorf("romfile: %s: %w", path, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)

	case ".7z":
		zr, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("romfile: %s: %w", path, err)
		}
		if len(zr.File) == 0 {
			return nil, fmt.Errorf("romfile: %s: empty 7z archive", path)
		}
		rc, err := zr.File[0].Open()
		if err != nil {
			return nil, fmt.Errorf("romfile: %s: %w", path, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)

	default:
		return data, nil
	}
}

// LoadBootROM loads path via Load and validates the decompressed result
// is exactly boot.Size bytes before handing it back, so a malformed boot
// ROM file is rejected at load time rather than deep inside boot.New.
func LoadBootROM(path string) ([]byte, error) {
	data, err := Load(path)
	if err != nil {
		return nil, err
	}
	if len(data) != boot.Size {
		return nil, fmt.Errorf("romfile: %s: decompressed boot rom is %d bytes, want %d", path, len(data), boot.Size)
	}
	return data, nil
}
