// Package render draws certificate text onto template images.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/suretrust/certgen-go/pkg/certgen/models"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// maxFontFileSize limits the size of font files loaded into memory.
const maxFontFileSize = 20 << 20 // 20 MB

// Font is a parsed TrueType/OpenType font with faces cached per size.
// A Font is not safe for concurrent use.
type Font struct {
	// Name identifies the font in logs, usually the file name.
	Name string
	// Path is the file the font was loaded from, empty for embedded data.
	Path string

	parsed *opentype.Font
	faces  map[int]font.Face
}

// LoadFont loads a TrueType/OpenType font file.
// A missing or unreadable file is reported as models.ErrResourceUnavailable.
func LoadFont(path string) (*Font, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: font %s: %v", models.ErrResourceUnavailable, path, err)
	}
	if info.Size() > maxFontFileSize {
		return nil, fmt.Errorf("font file too large: %d bytes (max %d)", info.Size(), maxFontFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: font %s: %v", models.ErrResourceUnavailable, path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	f, err := LoadFontData(name, data)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// LoadFontData parses a TrueType/OpenType font from raw bytes.
func LoadFontData(name string, data []byte) (*Font, error) {
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Font{
		Name:   name,
		parsed: parsed,
		faces:  make(map[int]font.Face),
	}, nil
}

// Face returns the face for the given pixel size.
// Faces are unhinted so that measured widths scale linearly with size.
func (f *Font) Face(size int) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid font size %d", size)
	}
	if face, ok := f.faces[size]; ok {
		return face, nil
	}

	face, err := opentype.NewFace(f.parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     fontDPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s face at %dpx: %w", f.Name, size, err)
	}
	f.faces[size] = face
	return face, nil
}

// Close releases all cached faces.
func (f *Font) Close() error {
	for size, face := range f.faces {
		face.Close()
		delete(f.faces, size)
	}
	return nil
}
