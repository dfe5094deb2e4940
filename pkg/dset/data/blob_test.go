package data

import "testing"

func TestSetGetTestRoundTrip(t *testing.T) {
	b := New()

	b.SetString(OptSetname, "myset")
	if got, ok := b.GetString(OptSetname); !ok || got != "myset" {
		t.Fatalf("GetString = (%q, %v), want (\"myset\", true)", got, ok)
	}
	if !b.Test(OptSetname) {
		t.Fatal("expected OptSetname to test true after Set")
	}

	b.SetU32(OptTimeout, 120)
	if got, ok := b.GetU32(OptTimeout); !ok || got != 120 {
		t.Fatalf("GetU32 = (%d, %v), want (120, true)", got, ok)
	}

	b.SetU64(OptSkbmark, 0xdeadbeef)
	if got, ok := b.GetU64(OptSkbmark); !ok || got != 0xdeadbeef {
		t.Fatalf("GetU64 = (%x, %v)", got, ok)
	}
}

func TestResetClearsEverything(t *testing.T) {
	b := New()
	b.SetString(OptSetname, "myset")
	b.SetU32(OptTimeout, 5)
	b.Reset()

	for _, o := range []Opt{OptSetname, OptTimeout, OptDomain, OptExist} {
		if b.Test(o) {
			t.Fatalf("Test(%v) true after Reset", o)
		}
	}
	if _, ok := b.GetString(OptSetname); ok {
		t.Fatal("GetString should fail after Reset")
	}
}

func TestFlagBackedOptionDualMembership(t *testing.T) {
	b := New()
	// Setting the flag word directly (as decoding a kernel FLAGS attribute
	// would) must make the individual option test true too.
	b.SetFlags(1 << 0) // bit 0 == OptExist
	if !b.Test(OptExist) {
		t.Fatal("expected OptExist to test true via aggregate Flags word")
	}
}

func TestTypenameFallsBackWithoutTest(t *testing.T) {
	b := New()
	b.SetString(OptTypename, "hash:domain")
	b.Reset()
	// Reset clears present bits; GetString(OptTypename) is documented to
	// fall back to the stored string regardless, but after Reset the
	// backing map entry itself is gone, so this should now report !ok.
	if _, ok := b.GetString(OptTypename); ok {
		t.Fatal("expected no stored typename after Reset")
	}
}

func TestIgnoredWarnsOncePerOption(t *testing.T) {
	b := New()
	if already := b.Ignored(OptProbes); already {
		t.Fatal("first Ignored() call should report not-already-warned")
	}
	if already := b.Ignored(OptProbes); !already {
		t.Fatal("second Ignored() call should report already-warned")
	}
	if !b.IsIgnored(OptProbes) {
		t.Fatal("expected OptProbes marked ignored")
	}
}

func TestIgnoredSurvivesReset(t *testing.T) {
	b := New()
	b.Ignored(OptProbes)
	b.Reset()
	if already := b.Ignored(OptProbes); !already {
		t.Fatal("warning cardinality should persist across command Reset")
	}
}
