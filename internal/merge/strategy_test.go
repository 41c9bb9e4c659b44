package merge

import "testing"

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		file string
		want Strategy
	}{
		{".eslintrc", StrategyJSON},
		{"package.json", StrategyJSON},
		{"lerna.json", StrategyJSON},
		{".gitignore", StrategyAppend},
		{".prettierignore", StrategyAppend},
	}

	for _, tt := range tests {
		got, ok := table.Lookup(tt.file)
		if !ok {
			t.Errorf("Lookup(%q) not found", tt.file)
			continue
		}
		if got != tt.want {
			t.Errorf("Lookup(%q) = %q, want %q", tt.file, got, tt.want)
		}
	}

	if _, ok := table.Lookup("README.md"); ok {
		t.Error("README.md should not be mergeable")
	}
}

func TestParseStrategy(t *testing.T) {
	if s, err := ParseStrategy("json"); err != nil || s != StrategyJSON {
		t.Errorf("ParseStrategy(json) = %q, %v", s, err)
	}
	if s, err := ParseStrategy("append"); err != nil || s != StrategyAppend {
		t.Errorf("ParseStrategy(append) = %q, %v", s, err)
	}
	if _, err := ParseStrategy("overwrite"); err == nil {
		t.Error("expected error for unknown strategy tag")
	}
}

func TestTableExtend(t *testing.T) {
	table := DefaultTable()

	if err := table.Extend(map[string]string{"tsconfig.json": "json", ".npmignore": "append"}); err != nil {
		t.Fatalf("Extend() error: %v", err)
	}
	if s, ok := table.Lookup("tsconfig.json"); !ok || s != StrategyJSON {
		t.Errorf("tsconfig.json = %q, %v", s, ok)
	}

	if err := table.Extend(map[string]string{"weird.cfg": "xml"}); err == nil {
		t.Error("expected error for unknown strategy in Extend")
	}
}

func TestTableCloneIsIndependent(t *testing.T) {
	table := DefaultTable()
	clone := table.Clone()
	clone["extra.json"] = StrategyJSON

	if _, ok := table.Lookup("extra.json"); ok {
		t.Error("mutating a clone must not affect the original table")
	}
}

func TestStrategyMergeUnhandled(t *testing.T) {
	bogus := Strategy("concat")
	if _, err := bogus.Merge(nil, nil); err == nil {
		t.Error("expected unhandled strategy error")
	}
}
