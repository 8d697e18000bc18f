package framework

import "testing"

// --- Registry ---

func TestGet_ShippedFrameworks(t *testing.T) {
	for _, key := range []string{"eatsafe", "foodcheck"} {
		fw, err := Get(key)
		if err != nil {
			t.Fatalf("Get(%q): %v", key, err)
		}
		if fw.Key != key {
			t.Errorf("Get(%q).Key = %q", key, fw.Key)
		}
	}
}

func TestGet_UnknownKey(t *testing.T) {
	if _, err := Get("scores-on-doors"); err == nil {
		t.Error("Get accepted an unknown framework key")
	}
}

func TestRegister_RejectsDuplicateKey(t *testing.T) {
	dup := eatSafe()
	if err := Register(dup); err == nil {
		t.Error("Register accepted a duplicate key")
	}
}

func TestKeys_ShippedFirst(t *testing.T) {
	keys := Keys()
	if len(keys) < 2 || keys[0] != "eatsafe" || keys[1] != "foodcheck" {
		t.Errorf("Keys = %v, want eatsafe then foodcheck first", keys)
	}
}

// --- Shipped catalog shape ---

func TestEatSafe_Valid(t *testing.T) {
	fw := eatSafe()
	if err := fw.Validate(); err != nil {
		t.Fatalf("eatsafe: %v", err)
	}
	if fw.Model != ModelTiered {
		t.Errorf("eatsafe model = %q", fw.Model)
	}
	if got := fw.TotalItems(); got != 22 {
		t.Errorf("eatsafe items = %d, want 22", got)
	}
}

func TestFoodCheck_Valid(t *testing.T) {
	fw := foodCheck()
	if err := fw.Validate(); err != nil {
		t.Fatalf("foodcheck: %v", err)
	}
	if fw.Model != ModelPercentage {
		t.Errorf("foodcheck model = %q", fw.Model)
	}
	if got := fw.TotalItems(); got != 14 {
		t.Errorf("foodcheck items = %d, want 14", got)
	}
	for _, sec := range fw.Sections {
		for _, it := range sec.Items {
			if len(it.Severities) != 0 {
				t.Errorf("foodcheck item %s declares severities", it.Code)
			}
		}
	}
}

// --- EatSafe tier ladder ---

func TestEatSafeLadder(t *testing.T) {
	fw := eatSafe()
	cases := []struct {
		minor, major, critical int
		wantTier               int
		wantLabel              string
	}{
		{0, 0, 0, 5, "Excellent"},
		{1, 0, 0, 4, "Very Good"},
		{3, 0, 0, 4, "Very Good"},
		{4, 0, 0, 3, "Good"},
		{5, 0, 0, 3, "Good"},
		{6, 0, 0, 2, "Poor"},
		{7, 0, 0, 2, "Poor"},
		{0, 1, 0, 2, "Poor"},
		{0, 2, 0, 2, "Poor"},
		{0, 0, 1, 2, "Poor"},
		{0, 3, 0, 0, "Non-Compliant"},
		{0, 0, 2, 0, "Non-Compliant"},
		{2, 5, 3, 0, "Non-Compliant"},
	}
	for _, tc := range cases {
		var tier int
		var label string
		for _, row := range fw.Tiers {
			if row.Matches(tc.minor, tc.major, tc.critical) {
				tier, label = row.Tier, row.Label
				break
			}
		}
		if tier != tc.wantTier || label != tc.wantLabel {
			t.Errorf("ladder(%d,%d,%d) = %d %q, want %d %q",
				tc.minor, tc.major, tc.critical, tier, label, tc.wantTier, tc.wantLabel)
		}
	}
}
