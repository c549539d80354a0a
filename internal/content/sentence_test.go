package content

import "testing"

func TestFindSentence_FirstMatchWithPunctuation(t *testing.T) {
	text := "Sports bring people together. The **Olympics,** held every four years, are the biggest event! Athletes train hard."
	got, ok := FindSentence("olympics", text)
	if !ok {
		t.Fatal("expected a match")
	}
	want := "The **Olympics,** held every four years, are the biggest event!"
	if got != want {
		t.Errorf("FindSentence = %q, want %q", got, want)
	}
}

func TestFindSentence_CaseInsensitive(t *testing.T) {
	text := "The night was dark. A **GLOWING** light appeared."
	got, ok := FindSentence("glowing", text)
	if !ok {
		t.Fatal("expected a match")
	}
	if got != "A **GLOWING** light appeared." {
		t.Errorf("FindSentence = %q", got)
	}
}

func TestFindSentence_InflectedMarker(t *testing.T) {
	text := "Look up! The **constellations** told ancient stories."
	got, ok := FindSentence("constellation", text)
	if !ok {
		t.Fatal("expected a match")
	}
	if got != "The **constellations** told ancient stories." {
		t.Errorf("FindSentence = %q", got)
	}
}

func TestFindSentence_FirstInTextOrder(t *testing.T) {
	text := "She was **brave**. He was also **brave**."
	got, ok := FindSentence("brave", text)
	if !ok {
		t.Fatal("expected a match")
	}
	if got != "She was **brave**." {
		t.Errorf("FindSentence = %q", got)
	}
}

func TestFindSentence_NoMatch(t *testing.T) {
	text := "The word appears unmarked: olympics. Nothing is bolded."
	if _, ok := FindSentence("olympics", text); ok {
		t.Error("expected no match for unmarked word")
	}
}

func TestFindSentence_EmptyWord(t *testing.T) {
	if _, ok := FindSentence("", "Some **text** here."); ok {
		t.Error("expected no match for empty word")
	}
}
