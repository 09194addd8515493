// file: internal/search/scorer_test.go
// version: 1.0.0
// guid: d8600638-190d-4cc9-87c2-20825a15d3cb

package search

import (
	"testing"

	"github.com/practiceops/practice-directory/internal/models"
)

func scoreOf(rec models.PracticeRecord, rawQuery string) int {
	normalized := Normalize(rawQuery)
	score, _ := Score(&rec, normalized, Tokenize(normalized), DefaultWeights())
	return score
}

func TestScore_NonNegative(t *testing.T) {
	records := []models.PracticeRecord{
		{ODSCode: "A81001", Name: "Riverside Medical Practice"},
		{ODSCode: "B82017", Name: "Park Lane Surgery", Postcode: strPtr("W1K 1PN")},
		{},
	}
	queries := []string{"riverside", "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz", "a81001", "x"}
	for _, rec := range records {
		for _, q := range queries {
			if s := scoreOf(rec, q); s < 0 {
				t.Errorf("score(%q, %q) = %d, want >= 0", rec.ODSCode, q, s)
			}
		}
	}
}

func TestScore_ExactCodeOutranksNearMiss(t *testing.T) {
	exact := scoreOf(models.PracticeRecord{ODSCode: "A81001"}, "a81001")
	nearMiss := scoreOf(models.PracticeRecord{ODSCode: "A81002"}, "a81001")
	if exact <= nearMiss {
		t.Errorf("exact code score %d should beat near-miss %d", exact, nearMiss)
	}
}

func TestScore_ExactNameOutranksPrefixAndSubstring(t *testing.T) {
	exact := scoreOf(models.PracticeRecord{Name: "Riverside"}, "riverside")
	prefix := scoreOf(models.PracticeRecord{Name: "Riverside Medical Practice"}, "riverside")
	substring := scoreOf(models.PracticeRecord{Name: "The Riverside Clinic"}, "riverside")
	if exact <= prefix {
		t.Errorf("exact name score %d should beat prefix %d", exact, prefix)
	}
	if prefix <= substring {
		t.Errorf("prefix score %d should beat bare substring %d", prefix, substring)
	}
}

func TestScore_TokenWordAndSubstringAreExclusive(t *testing.T) {
	// "lane" is a whole word here, so only the whole-word weight may fire.
	w := DefaultWeights()
	rec := models.PracticeRecord{Name: "Park Lane Surgery"}
	withWord, _ := Score(&rec, "lane", []string{"lane"}, w)

	// Suppress the whole-word weight; if the substring weight also fired for
	// the same token the two scores would differ by less than the gap.
	w2 := w
	w2.TokenNameWord = 0
	withoutWord, _ := Score(&rec, "lane", []string{"lane"}, w2)

	if withWord-withoutWord != w.TokenNameWord {
		t.Errorf("whole-word and substring token weights must be exclusive: got gap %d, want %d",
			withWord-withoutWord, w.TokenNameWord)
	}
}

func TestScore_HighlightFields(t *testing.T) {
	rec := models.PracticeRecord{
		ODSCode:  "A81001",
		Name:     "A81001",
		Postcode: strPtr("A81001"),
		City:     strPtr("A81001"),
	}
	_, highlight := Score(&rec, "a81001", []string{"a81001"}, DefaultWeights())
	want := []string{"ods_code", "name", "postcode", "city"}
	if len(highlight.Fields) != len(want) {
		t.Fatalf("highlight fields = %v, want %v", highlight.Fields, want)
	}
	for i, f := range want {
		if highlight.Fields[i] != f {
			t.Errorf("highlight fields = %v, want %v", highlight.Fields, want)
			break
		}
	}
	if !highlight.ExactMatch {
		t.Error("exactMatch should be true for exact code/name hits")
	}
}

func TestScore_NoExactMatchHighlight(t *testing.T) {
	rec := models.PracticeRecord{ODSCode: "A81001", Name: "Riverside Medical Practice"}
	_, highlight := Score(&rec, "riverside", []string{"riverside"}, DefaultWeights())
	if highlight.ExactMatch {
		t.Error("partial match must not set exactMatch")
	}
	if len(highlight.Fields) != 0 {
		t.Errorf("partial match must not record highlight fields, got %v", highlight.Fields)
	}
}

func TestScore_MissingFieldsContributeNothing(t *testing.T) {
	bare := models.PracticeRecord{ODSCode: "A81001", Name: "Riverside Medical Practice"}
	full := bare
	full.City = strPtr("Riverside")
	if scoreOf(full, "riverside") <= scoreOf(bare, "riverside") {
		t.Error("populated city should add signal over a missing one")
	}
}

func TestScore_FuzzyBonusRewardsCloserNames(t *testing.T) {
	close := scoreOf(models.PracticeRecord{Name: "Riverside Surgery"}, "riverside surgry")
	far := scoreOf(models.PracticeRecord{Name: "Completely Different"}, "riverside surgry")
	if close <= far {
		t.Errorf("near-miss name score %d should beat unrelated name %d", close, far)
	}
}
