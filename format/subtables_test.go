package format

import "testing"

func TestBuildSubTablesDefaultEntry(t *testing.T) {
	repo := NewRepository()
	st := BuildSubTables(repo)
	if len(st.Xfs) != 1 {
		t.Fatalf("len(Xfs) = %d; want 1 (default only)", len(st.Xfs))
	}
	xf := st.Xfs[0]
	if xf.ApplyFont || xf.ApplyFill || xf.ApplyBorder || xf.ApplyNumFmt || xf.ApplyAlign || xf.ApplyProt {
		t.Fatalf("default XfEntry has an ApplyX flag set: %+v", xf)
	}
	if len(st.Fonts) != 1 || len(st.Fills) != 2 || len(st.Borders) != 1 {
		t.Fatalf("sub-tables not seeded with their default entries (fills also reserves gray125 at index 1): %d fonts, %d fills, %d borders",
			len(st.Fonts), len(st.Fills), len(st.Borders))
	}
}

func TestBuildSubTablesReservesGray125Fill(t *testing.T) {
	repo := NewRepository()
	st := BuildSubTables(repo)
	if st.Fills[1] != (Fill{Pattern: "gray125"}) {
		t.Fatalf("Fills[1] = %+v; want gray125", st.Fills[1])
	}
}

func TestBuildSubTablesDeduplicatesSharedFont(t *testing.T) {
	repo := NewRepository()
	font := Font{Name: "Arial", Size: 12}
	repo.Intern(New(Descriptor{Font: font, Fill: Fill{Pattern: "solid", FgColor: "FFFF0000"}}))
	repo.Intern(New(Descriptor{Font: font, Border: Border{Left: BorderStyle{Style: "thin"}}}))

	st := BuildSubTables(repo)
	if len(st.Fonts) != 2 {
		t.Fatalf("len(Fonts) = %d; want 2 (default + one shared Arial 12)", len(st.Fonts))
	}
	if st.Xfs[1].FontID != st.Xfs[2].FontID {
		t.Fatalf("two descriptors sharing the same font got FontID %d and %d", st.Xfs[1].FontID, st.Xfs[2].FontID)
	}
}

func TestBuildSubTablesCustomNumFmtIDsStartAt164(t *testing.T) {
	repo := NewRepository()
	repo.Intern(New(Descriptor{NumberFormat: NumberFormat{Custom: "0.000"}}))
	st := BuildSubTables(repo)
	if len(st.CustomNumFmts) != 1 || st.CustomNumFmts[0] != "0.000" {
		t.Fatalf("CustomNumFmts = %v; want [\"0.000\"]", st.CustomNumFmts)
	}
	if st.Xfs[1].NumFmtID != firstCustomNumFmtID {
		t.Fatalf("NumFmtID = %d; want %d", st.Xfs[1].NumFmtID, firstCustomNumFmtID)
	}
}

func TestBuildSubTablesCollapsesCustomNumFmtMatchingBuiltin(t *testing.T) {
	repo := NewRepository()
	repo.Intern(New(Descriptor{NumberFormat: NumberFormat{Custom: "0.00%"}}))
	st := BuildSubTables(repo)
	if len(st.CustomNumFmts) != 0 {
		t.Fatalf("CustomNumFmts = %v; want none (0.00%% collapses onto builtin id 10)", st.CustomNumFmts)
	}
	if st.Xfs[1].NumFmtID != 10 {
		t.Fatalf("NumFmtID = %d; want 10", st.Xfs[1].NumFmtID)
	}
}

func TestBuildSubTablesKeepsCustomDateFormatDistinct(t *testing.T) {
	repo := NewRepository()
	repo.Intern(New(Descriptor{NumberFormat: NumberFormat{Custom: "mm-dd-yy"}}))
	st := BuildSubTables(repo)
	if len(st.CustomNumFmts) != 1 || st.CustomNumFmts[0] != "mm-dd-yy" {
		t.Fatalf("CustomNumFmts = %v; want [\"mm-dd-yy\"] (date formats never collapse onto a builtin id)", st.CustomNumFmts)
	}
	if st.Xfs[1].NumFmtID != firstCustomNumFmtID {
		t.Fatalf("NumFmtID = %d; want %d", st.Xfs[1].NumFmtID, firstCustomNumFmtID)
	}
}

func TestBuildSubTablesReusesCustomNumFmtID(t *testing.T) {
	repo := NewRepository()
	repo.Intern(New(Descriptor{NumberFormat: NumberFormat{Custom: "0.000"}, Font: Font{Name: "Arial", Size: 10}}))
	repo.Intern(New(Descriptor{NumberFormat: NumberFormat{Custom: "0.000"}, Font: Font{Name: "Arial", Size: 12}}))
	st := BuildSubTables(repo)
	if len(st.CustomNumFmts) != 1 {
		t.Fatalf("len(CustomNumFmts) = %d; want 1 (same custom format reused)", len(st.CustomNumFmts))
	}
	if st.Xfs[1].NumFmtID != st.Xfs[2].NumFmtID {
		t.Fatalf("two descriptors sharing a custom format got different NumFmtIDs: %d, %d", st.Xfs[1].NumFmtID, st.Xfs[2].NumFmtID)
	}
}
