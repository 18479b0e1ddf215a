package registry

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"codeshare/internal/models"
)

func TestNormalizeCaseInsensitive(t *testing.T) {
	for _, code := range []string{"ab12cd", "AB12CD", "Ab12Cd"} {
		if got := Normalize(code); got != "AB12CD" {
			t.Fatalf("Normalize(%q) = %q, want AB12CD", code, got)
		}
	}
	if Normalize(strings.ToLower("XY99ZZ")) != Normalize(strings.ToUpper("xy99zz")) {
		t.Fatalf("normalization should be case-insensitive")
	}
}

func TestValidateCode(t *testing.T) {
	if err := ValidateCode("AB12CD"); err != nil {
		t.Fatalf("expected 6-char code to validate, got %v", err)
	}
	for _, bad := range []string{"", "AB1", "AB12CDE"} {
		if err := ValidateCode(bad); !errors.Is(err, ErrInvalidRoomCode) {
			t.Fatalf("ValidateCode(%q) = %v, want ErrInvalidRoomCode", bad, err)
		}
	}
}

func TestEnsureIdempotent(t *testing.T) {
	reg := New()
	r1, created := reg.Ensure("ab12cd")
	if !created {
		t.Fatalf("expected first Ensure to create the room")
	}
	if r1.Content() != PlaceholderContent {
		t.Fatalf("expected placeholder content, got %q", r1.Content())
	}

	r1.SetContent("let x=1;")
	r2, created := reg.Ensure("AB12CD")
	if created {
		t.Fatalf("second Ensure should not create")
	}
	if r1 != r2 {
		t.Fatalf("expected the same room reference for both cases")
	}
	if r2.Content() != "let x=1;" {
		t.Fatalf("second Ensure must not reset content, got %q", r2.Content())
	}
}

func TestExistsProbeDoesNotMutate(t *testing.T) {
	reg := New()
	if reg.Exists("QQ00QQ") {
		t.Fatalf("unknown room should not exist")
	}
	if reg.Len() != 0 {
		t.Fatalf("probe must not create rooms, have %d", reg.Len())
	}

	reg.Ensure("qq00qq")
	if !reg.Exists("QQ00qq") {
		t.Fatalf("expected case-insensitive existence")
	}
}

func TestContentNotFound(t *testing.T) {
	reg := New()
	if _, err := reg.Content("NOROOM"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestSetContentReadAfterWrite(t *testing.T) {
	reg := New()
	reg.SetContent("ab12cd", "x")
	got, err := reg.Content("AB12CD")
	if err != nil {
		t.Fatalf("room should exist after write: %v", err)
	}
	if got != "x" {
		t.Fatalf("expected read-after-write %q, got %q", "x", got)
	}
}

func TestRoomModeDefaultsToEdit(t *testing.T) {
	reg := New()
	r, _ := reg.Ensure("AB12CD")
	if r.Mode() != models.PermissionEdit {
		t.Fatalf("expected default mode edit, got %s", r.Mode())
	}
	r.SetMode(models.PermissionViewOnly)
	if r.Mode() != models.PermissionViewOnly {
		t.Fatalf("expected view-only after SetMode, got %s", r.Mode())
	}
}

func TestClaimCreatorFirstArrivalWins(t *testing.T) {
	reg := New()
	r, _ := reg.Ensure("AB12CD")
	if !r.ClaimCreator() {
		t.Fatalf("first claim should win")
	}
	if r.ClaimCreator() {
		t.Fatalf("second claim should lose")
	}
}

func TestConcurrentWritersLastWriteWins(t *testing.T) {
	reg := New()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg.SetContent("AB12CD", "text")
		}()
	}
	wg.Wait()

	got, err := reg.Content("AB12CD")
	if err != nil || got != "text" {
		t.Fatalf("expected settled content, got %q err %v", got, err)
	}
	if reg.Len() != 1 {
		t.Fatalf("concurrent writes must not fork rooms, have %d", reg.Len())
	}
}
