// Package styles holds the style sheet driving both renderers: the keyed
// typographic configuration, its JSON persistence, and the unit-conversion
// contract shared by the docx writer and the HTML preview.
package styles

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Style keys recognized by the renderers.
const (
	KeyH1         = "H1"
	KeyH2         = "H2"
	KeyH3         = "H3"
	KeyH4         = "H4"
	KeyH5         = "H5"
	KeyH6         = "H6"
	KeyParagraph  = "paragraph"
	KeyCodeBlock  = "code_block"
	KeyInlineCode = "inline_code"
)

// knownKeys lists every key a resolved sheet carries, in document order.
var knownKeys = []string{
	KeyH1, KeyH2, KeyH3, KeyH4, KeyH5, KeyH6,
	KeyParagraph, KeyCodeBlock, KeyInlineCode,
}

// Sentinel errors for style sheet operations.
var (
	ErrUnknownKey = errors.New("unknown style key")
	ErrSaveSheet  = errors.New("failed to save style sheet")
)

// RGB is an exact 8-bit color triple. It persists as an ordered JSON array
// [r, g, b] so round-trips are lossless (never a packed hex scalar).
type RGB struct {
	R, G, B uint8
}

// MarshalJSON encodes the triple as [r, g, b].
func (c RGB) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]uint8{c.R, c.G, c.B})
}

// UnmarshalJSON decodes an ordered [r, g, b] array.
func (c *RGB) UnmarshalJSON(data []byte) error {
	var triple [3]uint8
	if err := json.Unmarshal(data, &triple); err != nil {
		return fmt.Errorf("color must be an [r, g, b] triple: %w", err)
	}
	c.R, c.G, c.B = triple[0], triple[1], triple[2]
	return nil
}

// Alignment is a paragraph alignment keyword.
type Alignment string

// Paragraph alignments.
const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// Entry is the resolved typographic record for one style key. Zero values
// are meaningful (no spacing, no indent); a resolved sheet always carries
// complete entries, so consumers never check for partial records.
type Entry struct {
	FontName          string    `json:"font_name"`
	SizePt            float64   `json:"font_size"`
	Bold              bool      `json:"bold"`
	Italic            bool      `json:"italic"`
	Color             RGB       `json:"color_rgb"`
	Background        string    `json:"background_color"` // hex RRGGBB, code_block only
	SpaceBeforePt     float64   `json:"space_before_pt"`
	SpaceAfterPt      float64   `json:"space_after_pt"`
	LineSpacing       float64   `json:"line_spacing"`
	FirstLineIndentCm float64   `json:"first_line_indent_cm"`
	Alignment         Alignment `json:"alignment"`
	SizeRatio         float64   `json:"font_size_ratio"` // inline_code only, relative to the enclosing block
}

// entryOverride mirrors Entry with pointer fields so a persisted record can
// replace only the fields it actually provides.
type entryOverride struct {
	FontName          *string    `json:"font_name"`
	SizePt            *float64   `json:"font_size"`
	Bold              *bool      `json:"bold"`
	Italic            *bool      `json:"italic"`
	Color             *RGB       `json:"color_rgb"`
	Background        *string    `json:"background_color"`
	SpaceBeforePt     *float64   `json:"space_before_pt"`
	SpaceAfterPt      *float64   `json:"space_after_pt"`
	LineSpacing       *float64   `json:"line_spacing"`
	FirstLineIndentCm *float64   `json:"first_line_indent_cm"`
	Alignment         *Alignment `json:"alignment"`
	SizeRatio         *float64   `json:"font_size_ratio"`
}

// apply overlays the provided fields of o onto e.
func (o *entryOverride) apply(e *Entry) {
	if o.FontName != nil {
		e.FontName = *o.FontName
	}
	if o.SizePt != nil {
		e.SizePt = *o.SizePt
	}
	if o.Bold != nil {
		e.Bold = *o.Bold
	}
	if o.Italic != nil {
		e.Italic = *o.Italic
	}
	if o.Color != nil {
		e.Color = *o.Color
	}
	if o.Background != nil {
		e.Background = *o.Background
	}
	if o.SpaceBeforePt != nil {
		e.SpaceBeforePt = *o.SpaceBeforePt
	}
	if o.SpaceAfterPt != nil {
		e.SpaceAfterPt = *o.SpaceAfterPt
	}
	if o.LineSpacing != nil {
		e.LineSpacing = *o.LineSpacing
	}
	if o.FirstLineIndentCm != nil {
		e.FirstLineIndentCm = *o.FirstLineIndentCm
	}
	if o.Alignment != nil {
		e.Alignment = *o.Alignment
	}
	if o.SizeRatio != nil {
		e.SizeRatio = *o.SizeRatio
	}
}

// Sheet is a fully-resolved style sheet: every known key maps to a complete
// Entry. Unknown top-level keys from a loaded file are carried through
// unmodified and survive a save. A Sheet is a value passed into the engine
// at conversion time; edits go through Clone + Set, never shared mutation.
type Sheet struct {
	entries map[string]Entry
	extra   map[string]json.RawMessage
}

// Defaults returns the built-in style sheet.
func Defaults() *Sheet {
	return &Sheet{
		entries: map[string]Entry{
			KeyH1: {FontName: "SimHei", SizePt: 24, Bold: true, SpaceBeforePt: 12, SpaceAfterPt: 6},
			KeyH2: {FontName: "SimHei", SizePt: 20, Bold: true, SpaceBeforePt: 10, SpaceAfterPt: 5},
			KeyH3: {FontName: "SimHei", SizePt: 18, Bold: true, SpaceBeforePt: 8, SpaceAfterPt: 4},
			KeyH4: {FontName: "SimSun", SizePt: 16, Bold: true, Color: RGB{50, 50, 50}, SpaceBeforePt: 6, SpaceAfterPt: 3},
			KeyH5: {FontName: "SimSun", SizePt: 14, Bold: true, Color: RGB{70, 70, 70}, SpaceBeforePt: 5, SpaceAfterPt: 2},
			KeyH6: {FontName: "SimSun", SizePt: 12, Bold: true, Color: RGB{90, 90, 90}, SpaceBeforePt: 4, SpaceAfterPt: 2},
			KeyParagraph: {
				FontName: "SimSun", SizePt: 12,
				LineSpacing: 1.5, FirstLineIndentCm: 0.74, SpaceAfterPt: 6,
			},
			KeyCodeBlock: {
				FontName: "Courier New", SizePt: 10,
				Background: "F0F0F0", LineSpacing: 1.0,
			},
			KeyInlineCode: {
				FontName: "Courier New", SizeRatio: 0.9, Color: RGB{50, 50, 50},
			},
		},
	}
}

// Entry returns the record for key, falling back to the paragraph entry for
// unknown keys so callers always receive a complete record.
func (s *Sheet) Entry(key string) Entry {
	if e, ok := s.entries[key]; ok {
		return e
	}
	return s.entries[KeyParagraph]
}

// Heading returns the entry for heading level 1-6, falling back to the
// paragraph entry when the level has no dedicated record.
func (s *Sheet) Heading(level int) Entry {
	if level >= 1 && level <= 6 {
		return s.Entry(knownKeys[level-1])
	}
	return s.Entry(KeyParagraph)
}

// Set replaces the entry for a known key. Unknown keys are rejected so a
// typo cannot silently create a key no renderer reads.
func (s *Sheet) Set(key string, e Entry) error {
	if _, ok := s.entries[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	s.entries[key] = e
	return nil
}

// Keys returns the known style keys in document order.
func Keys() []string {
	out := make([]string, len(knownKeys))
	copy(out, knownKeys)
	return out
}

// Clone returns an independent copy. Interactive edits operate on a clone
// so an in-progress conversion never observes a half-edited sheet.
func (s *Sheet) Clone() *Sheet {
	c := &Sheet{entries: make(map[string]Entry, len(s.entries))}
	for k, v := range s.entries {
		c.entries[k] = v
	}
	if len(s.extra) > 0 {
		c.extra = make(map[string]json.RawMessage, len(s.extra))
		for k, v := range s.extra {
			c.extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return c
}

// Equal reports field-for-field equality of the resolved entries.
func (s *Sheet) Equal(other *Sheet) bool {
	if len(s.entries) != len(other.entries) {
		return false
	}
	for k, v := range s.entries {
		if o, ok := other.entries[k]; !ok || o != v {
			return false
		}
	}
	return true
}

// MarshalJSON serializes every entry plus any carried-through unknown keys.
func (s *Sheet) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(s.entries)+len(s.extra))
	for k, v := range s.entries {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out[k] = raw
	}
	for k, v := range s.extra {
		out[k] = v
	}
	return json.Marshal(out)
}

// UnmarshalJSON resolves the data against the built-in defaults: per key,
// field-by-field overlay. A malformed record for one key leaves that key at
// its default; the error is reported through Resolve's anomaly list, so
// direct UnmarshalJSON use treats malformed records as silently skipped.
func (s *Sheet) UnmarshalJSON(data []byte) error {
	resolved, _, err := resolve(data)
	if err != nil {
		return err
	}
	*s = *resolved
	return nil
}

// Anomaly describes a style-key record that could not be applied.
type Anomaly struct {
	Key string
	Err error
}

// Resolve merges raw JSON override data with the built-in defaults.
// Structure errors at the top level fail the whole resolve; a malformed
// record for a single key is skipped and reported as an anomaly while the
// defaults are kept for that key. The returned sheet is always complete.
func Resolve(data []byte) (*Sheet, []Anomaly, error) {
	return resolve(data)
}

func resolve(data []byte) (*Sheet, []Anomaly, error) {
	sheet := Defaults()

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("style sheet is not a JSON object: %w", err)
	}

	var anomalies []Anomaly
	for key, msg := range raw {
		if _, known := sheet.entries[key]; !known {
			// Unknown keys are preserved verbatim for the next save.
			if sheet.extra == nil {
				sheet.extra = make(map[string]json.RawMessage)
			}
			sheet.extra[key] = append(json.RawMessage(nil), msg...)
			continue
		}

		var ov entryOverride
		if err := json.Unmarshal(msg, &ov); err != nil {
			anomalies = append(anomalies, Anomaly{Key: key, Err: err})
			continue
		}
		entry := sheet.entries[key]
		ov.apply(&entry)
		sheet.entries[key] = entry
	}

	return sheet, anomalies, nil
}

// Load reads a style sheet from path, merging it with the defaults.
// Absence of the file or a parse failure falls back to the built-in
// defaults and is logged, never raised: one bad preset must not discard a
// conversion.
func Load(path string, log *zap.Logger) *Sheet {
	if log == nil {
		log = zap.NewNop()
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided preset path
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("style sheet not found, using defaults", zap.String("path", path))
		} else {
			log.Warn("cannot read style sheet, using defaults",
				zap.String("path", path), zap.Error(err))
		}
		return Defaults()
	}

	sheet, anomalies, err := Resolve(data)
	if err != nil {
		log.Warn("malformed style sheet, using defaults",
			zap.String("path", path), zap.Error(err))
		return Defaults()
	}
	for _, a := range anomalies {
		log.Warn("ignoring malformed style entry",
			zap.String("path", path), zap.String("key", a.Key), zap.Error(a.Err))
	}
	return sheet
}

// Save writes the sheet as indented JSON, preserving unknown keys.
func (s *Sheet) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveSheet, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveSheet, err)
	}
	return nil
}
