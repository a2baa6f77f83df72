package decorator

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/tabframe/internal/geom"
)

// Settings is the persisted tab strip geometry of a frame. Pointer fields
// distinguish a missing value from a zero one.
type Settings struct {
	TabFrame     *geom.Rect `json:"tab_frame" yaml:"tab_frame"`
	BorderWidth  *float64   `json:"border_width" yaml:"border_width"`
	TabLocations []float64  `json:"tab_location" yaml:"tab_location"`
}

// validate checks s before anything is applied to a frame holding count
// tabs.
func (s Settings) validate(count int) error {
	if s.TabFrame == nil {
		return errors.New("missing tab_frame")
	}
	if !finite(s.TabFrame.Left, s.TabFrame.Top, s.TabFrame.Right, s.TabFrame.Bottom) {
		return fmt.Errorf("tab_frame %v is not finite", *s.TabFrame)
	}
	if !s.TabFrame.IsValid() {
		return fmt.Errorf("tab_frame %v is empty", *s.TabFrame)
	}
	if s.BorderWidth == nil {
		return errors.New("missing border_width")
	}
	if !finite(*s.BorderWidth) || *s.BorderWidth < 0 {
		return fmt.Errorf("invalid border_width %g", *s.BorderWidth)
	}
	if len(s.TabLocations) < count {
		return fmt.Errorf("missing tab_location for tab %d", len(s.TabLocations))
	}
	for i, loc := range s.TabLocations {
		if !finite(loc) {
			return fmt.Errorf("invalid tab_location[%d] %g", i, loc)
		}
	}
	return nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// EncodeSettings writes s as YAML.
func EncodeSettings(w io.Writer, s Settings) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return enc.Close()
}

// DecodeSettings reads settings written by EncodeSettings. Unknown keys are
// an error; missing keys are left nil and caught by SetSettings.
func DecodeSettings(r io.Reader) (Settings, error) {
	var s Settings
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return Settings{}, errors.New("decode settings: empty document")
		}
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}
