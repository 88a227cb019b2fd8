package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/wikiquery/internal/domain"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  domain.SearchTerm
	}{
		{name: "lowercases", input: "Abraham Lincoln", want: "abraham lincoln"},
		{name: "trims", input: "  france  ", want: "france"},
		{name: "collapses inner whitespace", input: "abraham \t lincoln", want: "abraham lincoln"},
		{name: "empty input", input: "   ", want: ""},
		{name: "already canonical", input: "tokyo", want: "tokyo"},
	}

	for i := range tests {
		test := &tests[i]
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, test.want, domain.Normalize(test.input))
		})
	}
}

func TestRawPage_Section(t *testing.T) {
	t.Parallel()

	page := &domain.RawPage{
		Sections: []domain.Section{
			{Heading: "Early life", Text: "born in Kentucky"},
			{Heading: "Presidency", Text: "led the Union"},
		},
	}

	text, ok := page.Section("presidency")
	require.True(t, ok)
	require.Equal(t, "led the Union", text)

	text, ok = page.Section("life")
	require.True(t, ok, "substring heading matches are allowed")
	require.Equal(t, "born in Kentucky", text)

	_, ok = page.Section("legacy")
	require.False(t, ok)
}

func TestRawPage_InfoboxValue(t *testing.T) {
	t.Parallel()

	page := &domain.RawPage{
		Infobox: map[string]string{
			"Born":       "February 12, 1809",
			"Population": "68,042,591",
		},
	}

	value, ok := page.InfoboxValue("born")
	require.True(t, ok)
	require.Equal(t, "February 12, 1809", value)

	value, ok = page.InfoboxValue("Pop")
	require.True(t, ok, "substring label matches are allowed")
	require.Equal(t, "68,042,591", value)

	_, ok = page.InfoboxValue("Died")
	require.False(t, ok)
}

func TestFieldSpec_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    domain.FieldSpec
		wantErr bool
	}{
		{
			name: "valid infobox spec",
			spec: domain.FieldSpec{Name: "birth_date", Source: domain.SourceInfobox, Key: "Born", Kind: domain.KindDate},
		},
		{
			name: "valid summary spec without key",
			spec: domain.FieldSpec{Name: "intro", Source: domain.SourceSummary},
		},
		{
			name:    "missing name",
			spec:    domain.FieldSpec{Source: domain.SourceSummary},
			wantErr: true,
		},
		{
			name:    "infobox without key",
			spec:    domain.FieldSpec{Name: "x", Source: domain.SourceInfobox},
			wantErr: true,
		},
		{
			name:    "section without key",
			spec:    domain.FieldSpec{Name: "x", Source: domain.SourceSection},
			wantErr: true,
		},
		{
			name:    "unknown source",
			spec:    domain.FieldSpec{Name: "x", Source: "sidebar"},
			wantErr: true,
		},
		{
			name:    "unknown kind",
			spec:    domain.FieldSpec{Name: "x", Source: domain.SourceSummary, Kind: "timestamp"},
			wantErr: true,
		},
		{
			name:    "negative index",
			spec:    domain.FieldSpec{Name: "x", Source: domain.SourceSummary, Index: -1},
			wantErr: true,
		},
		{
			name:    "invalid pattern",
			spec:    domain.FieldSpec{Name: "x", Source: domain.SourceSummary, Pattern: "(["},
			wantErr: true,
		},
		{
			name: "valid pattern",
			spec: domain.FieldSpec{Name: "x", Source: domain.SourceSummary, Pattern: `(\d+)th`},
		},
	}

	for i := range tests {
		test := &tests[i]
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := test.spec.Validate()
			if test.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCleanRecord_Field(t *testing.T) {
	t.Parallel()

	record := domain.CleanRecord{
		Fields: map[string]domain.FieldValue{
			"birth_date": {Found: true, Date: "1809-02-12"},
		},
	}

	require.True(t, record.Field("birth_date").Found)
	require.False(t, record.Field("death_date").Found)

	var empty domain.CleanRecord
	require.False(t, empty.Field("anything").Found)
}
