package envsynth

import (
	"strings"
	"testing"

	"github.com/icpkit/canisterenv/internal/resolver"
)

func TestVarName(t *testing.T) {
	cases := map[string]string{
		"internet_identity": "INTERNET_IDENTITY",
		"nns-governance":    "NNS_GOVERNANCE",
		"frontend":          "FRONTEND",
		"my-app-backend":    "MY_APP_BACKEND",
	}

	for in, want := range cases {
		if got := VarName(in); got != want {
			t.Errorf("VarName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSynthesize(t *testing.T) {
	mapping := resolver.Mapping{
		"frontend":       "rrkah-fqaaa-aaaaa-aaaaq-cai",
		"nns-governance": "rdmx6-jaaaa-aaaaa-aaadq-cai",
	}

	vars := Synthesize(mapping, Options{
		Network: "local",
		Host:    "http://127.0.0.1:4943",
		Prefix:  "VITE_",
	})

	want := map[string]string{
		"CANISTER_ID_FRONTEND":            "rrkah-fqaaa-aaaaa-aaaaq-cai",
		"CANISTER_ID_NNS_GOVERNANCE":      "rdmx6-jaaaa-aaaaa-aaadq-cai",
		"DFX_NETWORK":                     "local",
		"HOST":                            "http://127.0.0.1:4943",
		"VITE_CANISTER_ID_FRONTEND":       "rrkah-fqaaa-aaaaa-aaaaq-cai",
		"VITE_CANISTER_ID_NNS_GOVERNANCE": "rdmx6-jaaaa-aaaaa-aaadq-cai",
		"VITE_DFX_NETWORK":                "local",
		"VITE_HOST":                       "http://127.0.0.1:4943",
	}

	if len(vars) != len(want) {
		t.Errorf("Synthesize() produced %d vars, want %d: %v", len(vars), len(want), vars)
	}
	for key, value := range want {
		if vars[key] != value {
			t.Errorf("vars[%q] = %q, want %q", key, vars[key], value)
		}
	}
}

func TestSynthesize_ExtraWins(t *testing.T) {
	mapping := resolver.Mapping{"frontend": "rrkah-fqaaa-aaaaa-aaaaq-cai"}

	vars := Synthesize(mapping, Options{
		Extra: map[string]string{"CANISTER_ID_FRONTEND": "overridden"},
	})

	if vars["CANISTER_ID_FRONTEND"] != "overridden" {
		t.Errorf("extra vars should win, got %q", vars["CANISTER_ID_FRONTEND"])
	}
}

func TestSynthesize_ExtraOverridesMirroredKey(t *testing.T) {
	mapping := resolver.Mapping{"frontend": "rrkah-fqaaa-aaaaa-aaaaq-cai"}

	// Repeat to catch map-iteration-order flakiness: the extra must win
	// over the mirror of CANISTER_ID_FRONTEND on every run.
	for i := 0; i < 100; i++ {
		vars := Synthesize(mapping, Options{
			Prefix: "VITE_",
			Extra:  map[string]string{"VITE_CANISTER_ID_FRONTEND": "overridden"},
		})

		if vars["VITE_CANISTER_ID_FRONTEND"] != "overridden" {
			t.Fatalf("run %d: extra should win over the mirrored key, got %q", i, vars["VITE_CANISTER_ID_FRONTEND"])
		}
		if vars["CANISTER_ID_FRONTEND"] != "rrkah-fqaaa-aaaaa-aaaaq-cai" {
			t.Fatalf("run %d: unprefixed key should keep the resolved ID, got %q", i, vars["CANISTER_ID_FRONTEND"])
		}
	}
}

func TestSynthesize_ExtrasAreNotMirrored(t *testing.T) {
	vars := Synthesize(resolver.Mapping{}, Options{
		Prefix: "VITE_",
		Extra:  map[string]string{"FEATURE_FLAGS": "sns"},
	})

	if vars["FEATURE_FLAGS"] != "sns" {
		t.Errorf("extra should be emitted verbatim, got %v", vars)
	}
	if _, ok := vars["VITE_FEATURE_FLAGS"]; ok {
		t.Errorf("extras must not be mirrored, got %v", vars)
	}
}

func TestSynthesize_EmptyMapping(t *testing.T) {
	vars := Synthesize(resolver.Mapping{}, Options{})
	if len(vars) != 0 {
		t.Errorf("empty mapping with no identifiers should synthesize nothing, got %v", vars)
	}

	vars = Synthesize(resolver.Mapping{}, Options{Network: "local"})
	if len(vars) != 1 || vars["DFX_NETWORK"] != "local" {
		t.Errorf("empty mapping should still carry deployment identifiers, got %v", vars)
	}
}

func TestDotenv_Deterministic(t *testing.T) {
	vars := Vars{
		"B": "2",
		"A": "1",
		"C": "3",
	}

	want := "A=1\nB=2\nC=3\n"
	if got := vars.Dotenv(); got != want {
		t.Errorf("Dotenv() = %q, want %q", got, want)
	}
}

func TestExports_QuotesValues(t *testing.T) {
	vars := Vars{"GREETING": "it's local"}

	out := vars.Exports()
	if !strings.HasPrefix(out, "export GREETING='") {
		t.Errorf("Exports() = %q, want export statement", out)
	}
	if !strings.Contains(out, `'\''`) {
		t.Errorf("single quotes should be escaped, got %q", out)
	}
}
