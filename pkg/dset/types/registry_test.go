package types

import "testing"

func TestRegistryResolvesAliases(t *testing.T) {
	r := NewRegistry()
	RegisterBuiltins(r)

	if got := r.ResolveName("dhash"); got != "hash:domain" {
		t.Fatalf("ResolveName(dhash) = %q, want hash:domain", got)
	}
	if got := r.ResolveName("hash:domain"); got != "hash:domain" {
		t.Fatalf("ResolveName(hash:domain) = %q, want hash:domain", got)
	}
	if got := r.ResolveName("nope"); got != "" {
		t.Fatalf("ResolveName(nope) = %q, want empty", got)
	}
}

func TestRegistryPicksHighestRevisionFirst(t *testing.T) {
	r := NewRegistry()
	base := &Descriptor{Name: "hash:domain", Revision: 0, Family: FamilyUnspec}
	next := &Descriptor{Name: "hash:domain", Revision: 1, Family: FamilyUnspec}
	r.Add(base)
	r.Add(next)

	got, ok := r.Highest("hash:domain")
	if !ok || got.Revision != 1 {
		t.Fatalf("Highest = %+v, want revision 1", got)
	}
	if up := r.HigherRevision(base); up != next {
		t.Fatalf("HigherRevision(base) = %+v, want next", up)
	}
	if top := r.HigherRevision(next); top != nil {
		t.Fatalf("HigherRevision(next) = %+v, want nil", top)
	}
}

func TestRegistryForFamilyMismatch(t *testing.T) {
	r := NewRegistry()
	r.Add(&Descriptor{Name: "hash:ip", Revision: 0, Family: FamilyIPv4})

	if _, err := r.ForFamily("hash:ip", FamilyIPv6); err != ErrFamilyMismatch {
		t.Fatalf("got %v, want ErrFamilyMismatch", err)
	}
	if d, err := r.ForFamily("hash:ip", FamilyIPv4); err != nil || d.Family != FamilyIPv4 {
		t.Fatalf("ForFamily(IPv4) = (%+v, %v)", d, err)
	}
	if _, err := r.ForFamily("missing", FamilyIPv4); err != ErrUnknownType {
		t.Fatalf("got %v, want ErrUnknownType", err)
	}
}

func TestRegistryCheckReceived(t *testing.T) {
	r := NewRegistry()
	RegisterBuiltins(r)

	if !r.CheckReceived("hash:domain", FamilyUnspec, 1) {
		t.Fatal("expected hash:domain/Unspec/dim1 to be known")
	}
	if r.CheckReceived("hash:domain", FamilyIPv4, 1) {
		t.Fatal("did not expect hash:domain to claim IPv4-only support")
	}
}

func TestLegacyCreateKeywords(t *testing.T) {
	for _, kw := range []string{"probes", "resize", "gc"} {
		if !IsLegacyCreateKeyword(kw) {
			t.Fatalf("expected %q to be a legacy keyword", kw)
		}
	}
	if IsLegacyCreateKeyword("hashsize") {
		t.Fatal("hashsize is a live argument, not legacy")
	}
}
