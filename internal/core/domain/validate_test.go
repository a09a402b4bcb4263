package domain_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/aliaga/companymap/internal/core/domain"
)

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }

func hasKind(ve *domain.ValidationError, field string, kind domain.FieldErrorKind) bool {
	for _, f := range ve.Fields {
		if f.Field == field && f.Kind == kind {
			return true
		}
	}
	return false
}

// --- Create validation ---

func TestValidateCreate_Success(t *testing.T) {
	c, verr := domain.ValidateCreate(domain.CreateCompanyInput{
		Name:      "  Iberdrola  ",
		Industry:  "Energy",
		Address:   str("Plaza Euskadi 5, Bilbao"),
		Latitude:  f64(43.2627),
		Longitude: f64(-2.9253),
	})
	if verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
	if c.Name != "Iberdrola" {
		t.Errorf("expected trimmed name, got %q", c.Name)
	}
	if c.Location.X != -2.9253 || c.Location.Y != 43.2627 {
		t.Errorf("expected location x=lon y=lat, got x=%v y=%v", c.Location.X, c.Location.Y)
	}
	if c.Location.SRID != domain.SRIDWGS84 {
		t.Errorf("expected SRID %d, got %d", domain.SRIDWGS84, c.Location.SRID)
	}
}

func TestValidateCreate_LatitudeOutOfRange(t *testing.T) {
	_, verr := domain.ValidateCreate(domain.CreateCompanyInput{
		Name:      "Acme",
		Industry:  "Retail",
		Latitude:  f64(91),
		Longitude: f64(0),
	})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if !hasKind(verr, "latitude", domain.KindOutOfRange) {
		t.Errorf("expected latitude out_of_range, got %+v", verr.Fields)
	}
}

func TestValidateCreate_LongitudeOutOfRange(t *testing.T) {
	_, verr := domain.ValidateCreate(domain.CreateCompanyInput{
		Name:      "Acme",
		Industry:  "Retail",
		Latitude:  f64(0),
		Longitude: f64(200),
	})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if !hasKind(verr, "longitude", domain.KindOutOfRange) {
		t.Errorf("expected longitude out_of_range, got %+v", verr.Fields)
	}
}

func TestValidateCreate_BoundaryCoordinatesAccepted(t *testing.T) {
	_, verr := domain.ValidateCreate(domain.CreateCompanyInput{
		Name:      "South Pole Station",
		Industry:  "Research",
		Latitude:  f64(-90),
		Longitude: f64(180),
	})
	if verr != nil {
		t.Fatalf("boundary values are inclusive, got %v", verr)
	}
}

func TestValidateCreate_LoneCoordinate(t *testing.T) {
	_, verr := domain.ValidateCreate(domain.CreateCompanyInput{
		Name:      "Acme",
		Industry:  "Retail",
		Longitude: f64(-2.9),
	})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if !hasKind(verr, "latitude", domain.KindIncompleteCoordinatePair) {
		t.Errorf("expected latitude incomplete_coordinate_pair, got %+v", verr.Fields)
	}
}

func TestValidateCreate_BothCoordinatesMissing(t *testing.T) {
	_, verr := domain.ValidateCreate(domain.CreateCompanyInput{
		Name:     "Acme",
		Industry: "Retail",
	})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if !hasKind(verr, "latitude", domain.KindEmptyRequiredField) ||
		!hasKind(verr, "longitude", domain.KindEmptyRequiredField) {
		t.Errorf("expected both coordinates flagged as required, got %+v", verr.Fields)
	}
}

func TestValidateCreate_WhitespaceName(t *testing.T) {
	_, verr := domain.ValidateCreate(domain.CreateCompanyInput{
		Name:      "   ",
		Industry:  "Retail",
		Latitude:  f64(1),
		Longitude: f64(1),
	})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if !hasKind(verr, "name", domain.KindEmptyRequiredField) {
		t.Errorf("expected name empty_required_field, got %+v", verr.Fields)
	}
}

func TestValidateCreate_NameTooLong(t *testing.T) {
	long := make([]byte, domain.MaxNameLen+1)
	for i := range long {
		long[i] = 'a'
	}
	_, verr := domain.ValidateCreate(domain.CreateCompanyInput{
		Name:      string(long),
		Industry:  "Retail",
		Latitude:  f64(1),
		Longitude: f64(1),
	})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if !hasKind(verr, "name", domain.KindOutOfRange) {
		t.Errorf("expected name out_of_range, got %+v", verr.Fields)
	}
}

func TestValidateCreate_LengthCapsCountCharacters(t *testing.T) {
	// 60 CJK characters are 180 bytes; the cap is on characters.
	name := strings.Repeat("界", 60)
	c, verr := domain.ValidateCreate(domain.CreateCompanyInput{
		Name:      name,
		Industry:  strings.Repeat("é", domain.MaxIndustryLen),
		Address:   str(strings.Repeat("ü", domain.MaxAddressLen)),
		Latitude:  f64(1),
		Longitude: f64(1),
	})
	if verr != nil {
		t.Fatalf("multibyte values within the character caps must pass, got %v", verr)
	}
	if c.Name != name {
		t.Errorf("expected name preserved, got %q", c.Name)
	}

	_, verr = domain.ValidateCreate(domain.CreateCompanyInput{
		Name:      strings.Repeat("界", domain.MaxNameLen+1),
		Industry:  "Retail",
		Latitude:  f64(1),
		Longitude: f64(1),
	})
	if verr == nil || !hasKind(verr, "name", domain.KindOutOfRange) {
		t.Errorf("expected name over the character cap rejected, got %+v", verr)
	}
}

func TestValidateCreate_BlankAddressNormalizesToNil(t *testing.T) {
	c, verr := domain.ValidateCreate(domain.CreateCompanyInput{
		Name:      "Acme",
		Industry:  "Retail",
		Address:   str("   "),
		Latitude:  f64(1),
		Longitude: f64(1),
	})
	if verr != nil {
		t.Fatalf("unexpected error: %v", verr)
	}
	if c.Address != nil {
		t.Errorf("expected blank address to normalize to nil, got %q", *c.Address)
	}
}

func TestValidateCreate_CollectsAllErrors(t *testing.T) {
	_, verr := domain.ValidateCreate(domain.CreateCompanyInput{
		Name:      "",
		Industry:  "",
		Latitude:  f64(91),
		Longitude: f64(-181),
	})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if len(verr.Fields) != 4 {
		t.Errorf("expected all 4 fields reported, got %d: %+v", len(verr.Fields), verr.Fields)
	}
}

// --- Optional JSON semantics ---

func TestUpdateInput_AbsentVsNull(t *testing.T) {
	var in domain.UpdateCompanyInput
	payload := `{"name":"New Name","address":null}`
	if err := json.Unmarshal([]byte(payload), &in); err != nil {
		t.Fatal(err)
	}

	if !in.Name.Set || in.Name.Null || in.Name.Value != "New Name" {
		t.Errorf("name: expected set non-null, got %+v", in.Name)
	}
	if !in.Address.Set || !in.Address.Null {
		t.Errorf("address: expected set and null, got %+v", in.Address)
	}
	if in.Industry.Set || in.Latitude.Set || in.Longitude.Set {
		t.Error("fields absent from the payload must stay unset")
	}
}

func TestUpdateInput_Empty(t *testing.T) {
	var in domain.UpdateCompanyInput
	if err := json.Unmarshal([]byte(`{}`), &in); err != nil {
		t.Fatal(err)
	}
	if !in.Empty() {
		t.Error("expected empty payload")
	}
}

// --- Merge semantics ---

func existingCompany() domain.Company {
	return domain.Company{
		ID:        1,
		Name:      "Iberdrola",
		Industry:  "Energy",
		Address:   str("Plaza Euskadi 5"),
		Latitude:  43.2627,
		Longitude: -2.9253,
		Location:  domain.NewPoint(-2.9253, 43.2627),
	}
}

func TestMergeUpdate_EmptyPayloadRejected(t *testing.T) {
	_, verr := domain.MergeUpdate(existingCompany(), domain.UpdateCompanyInput{})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if !hasKind(verr, "body", domain.KindEmptyUpdate) {
		t.Errorf("expected empty_update, got %+v", verr.Fields)
	}
}

func TestMergeUpdate_UntouchedFieldsSurvive(t *testing.T) {
	merged, verr := domain.MergeUpdate(existingCompany(), domain.UpdateCompanyInput{
		Industry: domain.Some("Utilities"),
	})
	if verr != nil {
		t.Fatalf("unexpected error: %v", verr)
	}
	if merged.Industry != "Utilities" {
		t.Errorf("expected industry replaced, got %q", merged.Industry)
	}
	if merged.Name != "Iberdrola" || merged.Latitude != 43.2627 || merged.Longitude != -2.9253 {
		t.Error("fields not mentioned by the payload must keep their values")
	}
	if merged.Location != domain.NewPoint(-2.9253, 43.2627) {
		t.Error("location must not move when coordinates are untouched")
	}
}

func TestMergeUpdate_SingleCoordinateMergesWithStored(t *testing.T) {
	merged, verr := domain.MergeUpdate(existingCompany(), domain.UpdateCompanyInput{
		Latitude: domain.Some(10.0),
	})
	if verr != nil {
		t.Fatalf("unexpected error: %v", verr)
	}
	if merged.Latitude != 10.0 {
		t.Errorf("expected latitude 10, got %v", merged.Latitude)
	}
	if merged.Longitude != -2.9253 {
		t.Errorf("expected stored longitude preserved, got %v", merged.Longitude)
	}
	want := domain.NewPoint(-2.9253, 10.0)
	if merged.Location != want {
		t.Errorf("expected location rebuilt from merged pair, got %+v", merged.Location)
	}
}

func TestMergeUpdate_NullCoordinateRejected(t *testing.T) {
	_, verr := domain.MergeUpdate(existingCompany(), domain.UpdateCompanyInput{
		Latitude: domain.Cleared[float64](),
	})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if !hasKind(verr, "latitude", domain.KindEmptyRequiredField) {
		t.Errorf("expected latitude rejected, got %+v", verr.Fields)
	}
}

func TestMergeUpdate_NullNameRejected(t *testing.T) {
	_, verr := domain.MergeUpdate(existingCompany(), domain.UpdateCompanyInput{
		Name: domain.Cleared[string](),
	})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if !hasKind(verr, "name", domain.KindEmptyRequiredField) {
		t.Errorf("expected name rejected, got %+v", verr.Fields)
	}
}

func TestMergeUpdate_NullAddressClears(t *testing.T) {
	merged, verr := domain.MergeUpdate(existingCompany(), domain.UpdateCompanyInput{
		Address: domain.Cleared[string](),
	})
	if verr != nil {
		t.Fatalf("unexpected error: %v", verr)
	}
	if merged.Address != nil {
		t.Errorf("expected address cleared, got %q", *merged.Address)
	}
}

func TestMergeUpdate_OutOfRangeCoordinate(t *testing.T) {
	_, verr := domain.MergeUpdate(existingCompany(), domain.UpdateCompanyInput{
		Longitude: domain.Some(200.0),
	})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if !hasKind(verr, "longitude", domain.KindOutOfRange) {
		t.Errorf("expected longitude out_of_range, got %+v", verr.Fields)
	}
}

// --- Point derivation ---

func TestNewPoint_AxisOrder(t *testing.T) {
	p := domain.NewPoint(-2.9253, 43.2627)
	if p.X != -2.9253 {
		t.Errorf("X must carry longitude, got %v", p.X)
	}
	if p.Y != 43.2627 {
		t.Errorf("Y must carry latitude, got %v", p.Y)
	}
	if p.SRID != 4326 {
		t.Errorf("expected SRID 4326, got %d", p.SRID)
	}
}
