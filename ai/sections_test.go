package ai

import (
	"reflect"
	"testing"
)

func TestParseSections_EmptyInput(t *testing.T) {
	if got := ParseSections(""); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
	if got := ParseSections("   \n\t"); got != nil {
		t.Fatalf("expected nil for blank input, got %v", got)
	}
}

func TestParseSections_NumberedAndProseBlocks(t *testing.T) {
	got := ParseSections("### A\n1. x\n2. y\n### B\nplain prose")

	want := []Section{
		{Title: "A", Bullets: []string{"x", "y"}},
		{Title: "B", Bullets: []string{"plain prose"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestParseSections_NoHeadersAtAll(t *testing.T) {
	got := ParseSections("Some title line\nfollowed by prose\nacross two lines")

	if len(got) != 1 {
		t.Fatalf("expected one raw-fallback section, got %d", len(got))
	}
	if got[0].Title != "Some title line" {
		t.Fatalf("unexpected title %q", got[0].Title)
	}
	if len(got[0].Bullets) != 1 || got[0].Bullets[0] != "followed by prose\nacross two lines" {
		t.Fatalf("body not kept verbatim: %+v", got[0].Bullets)
	}
}

func TestParseSections_MixedNumberingKeepsEveryLine(t *testing.T) {
	got := ParseSections("### Cure time & oven utilization\n1. lower the oven\nalso consider dwell time\n2. shorten cure")

	if len(got) != 1 {
		t.Fatalf("expected one section, got %d", len(got))
	}
	want := []string{"lower the oven", "also consider dwell time", "shorten cure"}
	if !reflect.DeepEqual(got[0].Bullets, want) {
		t.Fatalf("got bullets %v, want %v", got[0].Bullets, want)
	}
}

func TestParseSections_HeaderOnlyBlock(t *testing.T) {
	got := ParseSections("### Empty section\n### Next\n1. something")

	if len(got) != 2 {
		t.Fatalf("expected two sections, got %d", len(got))
	}
	if len(got[0].Bullets) != 0 {
		t.Fatalf("header-only block should carry no bullets, got %v", got[0].Bullets)
	}
	if got[1].Bullets[0] != "something" {
		t.Fatalf("unexpected bullets %v", got[1].Bullets)
	}
}

func TestParseSections_ToleratesWindowsNewlinesAndDeepHeaders(t *testing.T) {
	got := ParseSections("## A\r\n1. x\r\n#### B\r\n1. y\r\n")

	if len(got) != 2 || got[0].Title != "A" || got[1].Title != "B" {
		t.Fatalf("unexpected sections %+v", got)
	}
}
