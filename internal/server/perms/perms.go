// Package perms models the ordered visibility levels attached to profile
// variables and the normalization rules for caller-supplied permission maps.
package perms

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Visibility is an ordered access level. Broader values grant visibility to
// more requesters: User < Group < VO < All.
type Visibility int

const (
	VisibilityUser Visibility = iota
	VisibilityGroup
	VisibilityVO
	VisibilityAll
)

var visibilityNames = [...]string{"USER", "GROUP", "VO", "ALL"}

// ParseVisibility matches a raw level string case-insensitively against the
// known levels. ok is false for anything unrecognized.
func ParseVisibility(raw string) (v Visibility, ok bool) {
	upper := strings.ToUpper(raw)
	for i, name := range visibilityNames {
		if name == upper {
			return Visibility(i), true
		}
	}
	return VisibilityUser, false
}

func (v Visibility) String() string {
	if v < VisibilityUser || v > VisibilityAll {
		return fmt.Sprintf("Visibility(%d)", int(v))
	}
	return visibilityNames[v]
}

// Value stores the visibility as its canonical upper-case string.
func (v Visibility) Value() (driver.Value, error) {
	if v < VisibilityUser || v > VisibilityAll {
		return nil, fmt.Errorf("invalid visibility %d", int(v))
	}
	return visibilityNames[v], nil
}

// Scan reads a visibility stored as text. Unknown values scan as
// VisibilityUser, mirroring the permissive defaulting applied on write.
func (v *Visibility) Scan(src any) error {
	var raw string
	switch value := src.(type) {
	case string:
		raw = value
	case []byte:
		raw = string(value)
	default:
		return fmt.Errorf("cannot scan %T into Visibility", src)
	}
	parsed, ok := ParseVisibility(raw)
	if !ok {
		parsed = VisibilityUser
	}
	*v = parsed
	return nil
}

// Attr names a permission attribute of a profile variable.
type Attr string

const (
	AttrReadAccess    Attr = "ReadAccess"
	AttrPublishAccess Attr = "PublishAccess"
)

// Attrs lists the permission attributes in their canonical order.
var Attrs = []Attr{AttrReadAccess, AttrPublishAccess}

// Normalize canonicalizes a caller-supplied permission map.
//
// Each raw level is matched case-insensitively against the known levels.
// Unmatched or absent values become VisibilityUser when fillMissing is true;
// otherwise the attribute is omitted from the result. Malformed input is
// never an error.
//
// When both attributes end up present and PublishAccess exceeds ReadAccess,
// ReadAccess is raised to match: anything publishable must be readable at
// least as broadly.
func Normalize(raw map[string]string, fillMissing bool) map[Attr]Visibility {
	norm := make(map[Attr]Visibility, len(Attrs))
	for _, attr := range Attrs {
		rawLevel, present := raw[string(attr)]
		if !present {
			if fillMissing {
				norm[attr] = VisibilityUser
			}
			continue
		}
		v, ok := ParseVisibility(rawLevel)
		if !ok {
			if fillMissing {
				norm[attr] = VisibilityUser
			}
			continue
		}
		norm[attr] = v
	}

	if publish, ok := norm[AttrPublishAccess]; ok {
		if read, ok := norm[AttrReadAccess]; ok && publish > read {
			norm[AttrReadAccess] = publish
		}
	}
	return norm
}
