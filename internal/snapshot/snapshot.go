// Package snapshot serializes a registered class system into a canonical
// CBOR image: class layouts, flag masks, declared defaults, and CDO slot
// values. The image is a diagnostics artifact, not a live registry.
package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/vk/classkit/internal/classsys"
)

// FormatVersion identifies the image layout. Bump on incompatible changes.
const FormatVersion = 1

// cborEncMode is the canonical encoding mode, so identical registries
// produce byte-identical images.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("snapshot: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Image is the serialized form of a class system.
type Image struct {
	FormatVersion int           `cbor:"format_version"`
	Classes       []ClassRecord `cbor:"classes"`
}

// ClassRecord captures one registered class.
type ClassRecord struct {
	Name       string           `cbor:"name"`
	Extends    string           `cbor:"extends,omitempty"`
	Properties []PropertyRecord `cbor:"properties"`

	// CDO holds the class-default object's slot values in chain order,
	// JSON-encoded per slot.
	CDO []json.RawMessage `cbor:"cdo"`
}

// PropertyRecord captures one property descriptor. Type and Default use the
// cty JSON encodings so the image stays toolable from any language.
type PropertyRecord struct {
	Name    string          `cbor:"name"`
	Type    json.RawMessage `cbor:"type"`
	Flags   uint64          `cbor:"flags"`
	Offset  int             `cbor:"offset"`
	Default json.RawMessage `cbor:"default,omitempty"`
}

// Build captures the current state of a class system as an image.
func Build(reg *classsys.Registry) (*Image, error) {
	img := &Image{FormatVersion: FormatVersion}

	for _, c := range reg.Classes() {
		record := ClassRecord{Name: c.Name()}
		if c.Base() != nil {
			record.Extends = c.Base().Name()
		}

		for _, p := range c.Chain() {
			typeJSON, err := ctyjson.MarshalType(p.Type)
			if err != nil {
				return nil, fmt.Errorf("snapshot: class %s property %s: marshal type: %w", c.Name(), p.Name, err)
			}
			propRecord := PropertyRecord{
				Name:   p.Name,
				Type:   typeJSON,
				Flags:  uint64(p.Flags),
				Offset: p.Offset,
			}
			if p.Default != nil {
				defJSON, err := ctyjson.Marshal(*p.Default, p.Type)
				if err != nil {
					return nil, fmt.Errorf("snapshot: class %s property %s: marshal default: %w", c.Name(), p.Name, err)
				}
				propRecord.Default = defJSON
			}
			record.Properties = append(record.Properties, propRecord)
		}

		cdo := c.CDO()
		for i := 0; i < cdo.NumSlots(); i++ {
			slotJSON, err := json.Marshal(cdo.Get(i))
			if err != nil {
				return nil, fmt.Errorf("snapshot: class %s slot %d: %w", c.Name(), i, err)
			}
			record.CDO = append(record.CDO, slotJSON)
		}

		img.Classes = append(img.Classes, record)
	}

	return img, nil
}

// Marshal serializes an image to canonical CBOR bytes.
func Marshal(img *Image) ([]byte, error) {
	return cborEncMode.Marshal(img)
}

// Unmarshal deserializes an image from CBOR bytes.
func Unmarshal(data []byte) (*Image, error) {
	var img Image
	if err := cbor.Unmarshal(data, &img); err != nil {
		return nil, fmt.Errorf("snapshot: unmarshal image: %w", err)
	}
	if img.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("snapshot: unsupported format version %d", img.FormatVersion)
	}
	return &img, nil
}
