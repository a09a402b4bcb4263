package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Field length caps in characters, measured after trimming.
const (
	MaxNameLen     = 100
	MaxIndustryLen = 50
	MaxAddressLen  = 200
)

// CreateCompanyInput is a create payload. The coordinate fields are pointers
// so a missing value can be told apart from an explicit zero.
type CreateCompanyInput struct {
	Name      string   `json:"name"`
	Industry  string   `json:"industry"`
	Address   *string  `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// UpdateCompanyInput is a partial-update payload. Every field is wrapped in
// Optional so that fields the request never mentioned are left untouched by
// the merge.
type UpdateCompanyInput struct {
	Name      Optional[string]  `json:"name"`
	Industry  Optional[string]  `json:"industry"`
	Address   Optional[string]  `json:"address"`
	Latitude  Optional[float64] `json:"latitude"`
	Longitude Optional[float64] `json:"longitude"`
}

// Empty reports whether the payload sets no fields at all.
func (in UpdateCompanyInput) Empty() bool {
	return !in.Name.Set && !in.Industry.Set && !in.Address.Set &&
		!in.Latitude.Set && !in.Longitude.Set
}

// checkLatitude and checkLongitude enforce the WGS 84 value domains.
func checkLatitude(ve *ValidationError, lat float64) {
	if lat < -90 || lat > 90 {
		ve.add("latitude", "latitude must be between -90 and 90", KindOutOfRange)
	}
}

func checkLongitude(ve *ValidationError, lon float64) {
	if lon < -180 || lon > 180 {
		ve.add("longitude", "longitude must be between -180 and 180", KindOutOfRange)
	}
}

// normalizeRequired trims a mandatory string field and records an error when
// it comes out empty or over the cap. Returns the trimmed value.
func normalizeRequired(ve *ValidationError, field, value string, max int) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		ve.add(field, field+" is required", KindEmptyRequiredField)
		return trimmed
	}
	if utf8.RuneCountInString(trimmed) > max {
		ve.add(field, fmt.Sprintf("%s must be at most %d characters", field, max), KindOutOfRange)
	}
	return trimmed
}

// normalizeAddress trims the optional address; blank input normalizes to
// absent (nil), never to an empty string.
func normalizeAddress(ve *ValidationError, value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	if utf8.RuneCountInString(trimmed) > MaxAddressLen {
		ve.add("address", fmt.Sprintf("address must be at most %d characters", MaxAddressLen), KindOutOfRange)
	}
	return &trimmed
}

// ValidateCreate normalizes and validates a create payload, returning a
// fully-formed candidate record with its geometry derived. Pure function:
// either a record or a ValidationError, never a partial result.
func ValidateCreate(in CreateCompanyInput) (Company, *ValidationError) {
	var ve ValidationError

	name := normalizeRequired(&ve, "name", in.Name, MaxNameLen)
	industry := normalizeRequired(&ve, "industry", in.Industry, MaxIndustryLen)

	var address *string
	if in.Address != nil {
		address = normalizeAddress(&ve, *in.Address)
	}

	// Create-time pairing rule: both coordinates are mandatory. A lone
	// coordinate is an incomplete pair, not just a missing field.
	switch {
	case in.Latitude == nil && in.Longitude == nil:
		ve.add("latitude", "latitude is required", KindEmptyRequiredField)
		ve.add("longitude", "longitude is required", KindEmptyRequiredField)
	case in.Latitude == nil:
		ve.add("latitude", "latitude and longitude must be provided together", KindIncompleteCoordinatePair)
	case in.Longitude == nil:
		ve.add("longitude", "latitude and longitude must be provided together", KindIncompleteCoordinatePair)
	default:
		checkLatitude(&ve, *in.Latitude)
		checkLongitude(&ve, *in.Longitude)
	}

	if !ve.ok() {
		return Company{}, &ve
	}

	lat, lon := *in.Latitude, *in.Longitude
	return Company{
		Name:      name,
		Industry:  industry,
		Address:   address,
		Latitude:  lat,
		Longitude: lon,
		Location:  NewPoint(lon, lat),
	}, nil
}

// MergeUpdate applies a partial update onto the existing record. Fields the
// payload never mentioned keep their prior values; set fields are normalized
// and validated before replacing them.
//
// Unlike create, a single coordinate is accepted here: the missing half of
// the pair is resolved from the stored record, which is the only way a
// partial coordinate update can ever succeed. The geometry is recomputed
// only when a coordinate actually changed.
func MergeUpdate(existing Company, in UpdateCompanyInput) (Company, *ValidationError) {
	if in.Empty() {
		return Company{}, NewFieldError("body", "update payload has no fields set", KindEmptyUpdate)
	}

	var ve ValidationError
	merged := existing

	if in.Name.Set {
		if in.Name.Null {
			ve.add("name", "name cannot be null", KindEmptyRequiredField)
		} else {
			merged.Name = normalizeRequired(&ve, "name", in.Name.Value, MaxNameLen)
		}
	}

	if in.Industry.Set {
		if in.Industry.Null {
			ve.add("industry", "industry cannot be null", KindEmptyRequiredField)
		} else {
			merged.Industry = normalizeRequired(&ve, "industry", in.Industry.Value, MaxIndustryLen)
		}
	}

	if in.Address.Set {
		if in.Address.Null {
			merged.Address = nil
		} else {
			merged.Address = normalizeAddress(&ve, in.Address.Value)
		}
	}

	coordChanged := false
	if in.Latitude.Set {
		if in.Latitude.Null {
			ve.add("latitude", "latitude cannot be null", KindEmptyRequiredField)
		} else {
			checkLatitude(&ve, in.Latitude.Value)
			coordChanged = coordChanged || in.Latitude.Value != existing.Latitude
			merged.Latitude = in.Latitude.Value
		}
	}
	if in.Longitude.Set {
		if in.Longitude.Null {
			ve.add("longitude", "longitude cannot be null", KindEmptyRequiredField)
		} else {
			checkLongitude(&ve, in.Longitude.Value)
			coordChanged = coordChanged || in.Longitude.Value != existing.Longitude
			merged.Longitude = in.Longitude.Value
		}
	}

	if !ve.ok() {
		return Company{}, &ve
	}

	if coordChanged {
		merged.Location = NewPoint(merged.Longitude, merged.Latitude)
	}
	return merged, nil
}
