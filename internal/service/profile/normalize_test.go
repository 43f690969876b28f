package profile

import (
	"reflect"
	"strings"
	"testing"
)

var owner = User{ID: "user-1", Name: "Ada", Avatar: "https://example.com/ada.png"}

func TestNormalizeDropsUnknownFields(t *testing.T) {
	u := Normalize(owner, map[string]string{
		"status":   "Developer",
		"password": "hunter2",
		"user":     "someone-else",
		"_id":      "x",
	})

	if u.User != owner {
		t.Fatalf("expected owner to be the caller, got %+v", u.User)
	}
	if len(u.Scalars) != 1 || u.Scalars[FieldStatus] != "Developer" {
		t.Fatalf("unexpected scalars: %v", u.Scalars)
	}
	if u.Skills != nil {
		t.Fatalf("expected absent skills, got %v", u.Skills)
	}
	if len(u.Social) != 0 {
		t.Fatalf("expected empty social, got %v", u.Social)
	}
}

func TestNormalizeNestsSocialLinks(t *testing.T) {
	in := map[string]string{
		FieldYouTube:   "https://youtube.com/ada",
		FieldTwitter:   "https://twitter.com/ada",
		FieldFacebook:  "https://facebook.com/ada",
		FieldInstagram: "https://instagram.com/ada",
		FieldLinkedIn:  "https://linkedin.com/in/ada",
		FieldCompany:   "Analytical Engines",
	}
	u := Normalize(owner, in)

	for _, platform := range []string{FieldYouTube, FieldTwitter, FieldFacebook, FieldInstagram, FieldLinkedIn} {
		if u.Social[platform] != in[platform] {
			t.Errorf("expected social[%s] = %q, got %q", platform, in[platform], u.Social[platform])
		}
		if _, top := u.Scalars[platform]; top {
			t.Errorf("%s must not appear at the top level", platform)
		}
	}
	if u.Scalars[FieldCompany] != "Analytical Engines" {
		t.Fatalf("expected company scalar, got %v", u.Scalars)
	}
}

func TestSplitSkills(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"js, go ,  rust", []string{"js", "go", "rust"}},
		{"go", []string{"go"}},
		{"a,,b", []string{"a", "", "b"}},
		{" , ", []string{"", ""}},
		{"", []string{""}},
	}
	for _, tt := range tests {
		if got := SplitSkills(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitSkills(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitSkillsIsStableUnderRejoin(t *testing.T) {
	for _, in := range []string{"js, go ,  rust", "a,,b", " x ,y", "single"} {
		first := SplitSkills(in)
		second := SplitSkills(strings.Join(first, ","))
		if !reflect.DeepEqual(first, second) {
			t.Errorf("re-normalizing %q changed %q to %q", in, first, second)
		}
	}
}

func TestNormalizeOnlyRecognizedKeys(t *testing.T) {
	in := map[string]string{
		"company": "c", "website": "w", "location": "l", "bio": "b",
		"status": "s", "githubusername": "g", "skills": "x,y",
		"youtube": "yt", "unknown": "u", "Status": "case-sensitive",
	}
	u := Normalize(owner, in)
	for k := range u.Scalars {
		if !Recognized(k) {
			t.Errorf("unrecognized key %q in scalars", k)
		}
	}
	for k := range u.Social {
		if fieldStrategies[k] != socialNest {
			t.Errorf("non-social key %q in social", k)
		}
	}
	if _, ok := u.Scalars["Status"]; ok {
		t.Error("field names are case-sensitive")
	}
}

func TestUpdateApplyKeepsAbsentFields(t *testing.T) {
	p := &Profile{
		Status:  "Developer",
		Company: "Old Co",
		Skills:  []string{"go"},
		Social:  map[string]string{FieldTwitter: "https://twitter.com/ada"},
	}
	Normalize(owner, map[string]string{FieldCompany: "New Co", FieldYouTube: "https://youtube.com/ada"}).apply(p)

	if p.Company != "New Co" || p.Status != "Developer" {
		t.Fatalf("unexpected scalars after apply: %+v", p)
	}
	if !reflect.DeepEqual(p.Skills, []string{"go"}) {
		t.Fatalf("skills should be retained, got %v", p.Skills)
	}
	want := map[string]string{FieldTwitter: "https://twitter.com/ada", FieldYouTube: "https://youtube.com/ada"}
	if !reflect.DeepEqual(p.Social, want) {
		t.Fatalf("social should merge per key, got %v", p.Social)
	}
}
