package locale

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		tag, id, want string
	}{
		{"ja", TableBeat, "拍"},
		{"en", TableBeat, "Beat"},
		{"fr", TableBeat, "拍"},
		{"en", LanguageJa, "Japanese"},
	}

	for _, tt := range tests {
		if got := New(tt.tag).T(tt.id); got != tt.want {
			t.Errorf("%s/%s: expected %q, got %q", tt.tag, tt.id, tt.want, got)
		}
	}
}

func TestTemplateData(t *testing.T) {
	got := New("en").T(ScriptSaved, map[string]interface{}{"Path": "out/AddKeyframes.jsx"})
	if got != "Script saved: out/AddKeyframes.jsx" {
		t.Errorf("Unexpected message %q", got)
	}
}

func TestMissingID(t *testing.T) {
	if got := New("en").T("noSuchMessage"); got != "noSuchMessage" {
		t.Errorf("Expected the id back, got %q", got)
	}
}

func TestCatalogsMatch(t *testing.T) {
	ids := map[string]bool{}
	for _, m := range japanese {
		ids[m.ID] = true
	}
	if len(english) != len(japanese) {
		t.Fatalf("Expected %d English messages, got %d", len(japanese), len(english))
	}
	for _, m := range english {
		if !ids[m.ID] {
			t.Errorf("English message %q has no Japanese counterpart", m.ID)
		}
	}
}
