package drawing

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Font families bundled with FaceEngine.
const (
	FamilyGo     = "go"
	FamilyGoMono = "go-mono"
)

// Families lists the family names FaceEngine understands.
var Families = []string{FamilyGo, FamilyGoMono}

type faceKey struct {
	family string
	bold   bool
	size   float64
}

// FaceEngine measures text with the Go fonts through golang.org/x/image.
// Faces are created lazily per family/weight/size and cached until Close.
type FaceEngine struct {
	dpi   float64
	fonts map[faceKey]*opentype.Font // size is zero in these keys

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

// NewFaceEngine parses the bundled fonts. dpi <= 0 selects 72, where one
// point equals one pixel.
func NewFaceEngine(dpi float64) (*FaceEngine, error) {
	if dpi <= 0 {
		dpi = 72
	}

	sources := map[faceKey][]byte{
		{family: FamilyGo}:                 goregular.TTF,
		{family: FamilyGo, bold: true}:     gobold.TTF,
		{family: FamilyGoMono}:             gomono.TTF,
		{family: FamilyGoMono, bold: true}: gomonobold.TTF,
	}

	fonts := make(map[faceKey]*opentype.Font, len(sources))
	for key, data := range sources {
		parsed, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font %s (bold=%v): %w", key.family, key.bold, err)
		}
		fonts[key] = parsed
	}

	return &FaceEngine{
		dpi:   dpi,
		fonts: fonts,
		faces: make(map[faceKey]font.Face),
	}, nil
}

func normalizeFamily(family string) string {
	switch strings.ToLower(strings.TrimSpace(family)) {
	case FamilyGoMono, "gomono", "mono", "monospace":
		return FamilyGoMono
	default:
		return FamilyGo
	}
}

func (e *FaceEngine) face(f Font) (font.Face, error) {
	key := faceKey{family: normalizeFamily(f.Family), bold: f.Bold, size: f.Size}

	e.mu.Lock()
	defer e.mu.Unlock()

	if face, ok := e.faces[key]; ok {
		return face, nil
	}
	parsed := e.fonts[faceKey{family: key.family, bold: key.bold}]
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     e.dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	e.faces[key] = face
	return face, nil
}

// StringWidth returns the advance width of s. Unusable fonts measure as 0.
func (e *FaceEngine) StringWidth(s string, f Font) float64 {
	face, err := e.face(f)
	if err != nil {
		return 0
	}
	return toFloat(font.MeasureString(face, s))
}

// Metrics returns the face ascent and descent, falling back to Nop for
// unusable fonts.
func (e *FaceEngine) Metrics(f Font) Metrics {
	face, err := e.face(f)
	if err != nil {
		return Nop{}.Metrics(f)
	}
	m := face.Metrics()
	return Metrics{
		Ascent:  toFloat(m.Ascent),
		Descent: toFloat(m.Descent),
	}
}

// Close releases every cached face.
func (e *FaceEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var firstErr error
	for key, face := range e.faces {
		if err := face.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(e.faces, key)
	}
	return firstErr
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
