package session

import "testing"

func TestStoreGetUnknownUser(t *testing.T) {
	s := NewStore()

	if got := s.Get(1); got != (Prefs{}) {
		t.Errorf("Get(1) = %+v, want zero Prefs", got)
	}
}

func TestStoreUpdateMergesFields(t *testing.T) {
	s := NewStore()

	s.Update(1, Prefs{Style: "Anime"})
	s.Update(1, Prefs{AspectRatio: "16:9"})
	s.Update(1, Prefs{Resolution: "1280x720"})

	got := s.Get(1)
	want := Prefs{Style: "Anime", AspectRatio: "16:9", Resolution: "1280x720"}
	if got != want {
		t.Errorf("Get(1) = %+v, want %+v", got, want)
	}

	// Later values overwrite, empty fields leave the old value alone.
	s.Update(1, Prefs{Style: "Realistic"})
	got = s.Get(1)
	if got.Style != "Realistic" {
		t.Errorf("Style = %q, want Realistic", got.Style)
	}
	if got.AspectRatio != "16:9" {
		t.Errorf("AspectRatio = %q, want 16:9 kept", got.AspectRatio)
	}
}

func TestStoreUpdateEmptyIsNoop(t *testing.T) {
	s := NewStore()

	s.Update(1, Prefs{})
	if got := s.Get(1); got != (Prefs{}) {
		t.Errorf("Get(1) = %+v, want zero Prefs", got)
	}
}

func TestStoreUsersAreIndependent(t *testing.T) {
	s := NewStore()

	s.Update(1, Prefs{Style: "Anime"})
	s.Update(2, Prefs{Style: "Design"})

	if got := s.Get(1).Style; got != "Anime" {
		t.Errorf("user 1 Style = %q, want Anime", got)
	}
	if got := s.Get(2).Style; got != "Design" {
		t.Errorf("user 2 Style = %q, want Design", got)
	}
}

func TestStoreClear(t *testing.T) {
	s := NewStore()

	s.Update(1, Prefs{Style: "Anime"})
	s.Clear(1)

	if got := s.Get(1); got != (Prefs{}) {
		t.Errorf("Get(1) after Clear = %+v, want zero Prefs", got)
	}
}
