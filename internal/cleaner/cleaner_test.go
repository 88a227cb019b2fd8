package cleaner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/wikiquery/internal/cleaner"
	"github.com/jonesrussell/wikiquery/internal/domain"
	"github.com/jonesrussell/wikiquery/testutils"
)

func presidentSpecs() []domain.FieldSpec {
	return []domain.FieldSpec{
		{Name: "birth_date", Source: domain.SourceInfobox, Key: "Born", Kind: domain.KindDate},
		{Name: "death_date", Source: domain.SourceInfobox, Key: "Died", Kind: domain.KindDate},
		{Name: "term_start", Source: domain.SourceInfobox, Key: "In office", Kind: domain.KindDate},
		{Name: "term_end", Source: domain.SourceInfobox, Key: "In office", Kind: domain.KindDate, Index: 1},
	}
}

func TestClean_PresidentialDates(t *testing.T) {
	t.Parallel()

	record := cleaner.Clean(testutils.LincolnPage(), presidentSpecs())

	require.Equal(t, "Abraham Lincoln", record.Title)
	require.True(t, record.ResolvedExact)

	birth := record.Field("birth_date")
	require.True(t, birth.Found)
	require.Equal(t, "1809-02-12", birth.Date)

	death := record.Field("death_date")
	require.True(t, death.Found)
	require.Equal(t, "1865-04-15", death.Date)

	start := record.Field("term_start")
	require.True(t, start.Found)
	require.Equal(t, "1861-03-04", start.Date)

	end := record.Field("term_end")
	require.True(t, end.Found)
	require.Equal(t, "1865-04-15", end.Date)
}

func TestClean_Idempotent(t *testing.T) {
	t.Parallel()

	page := testutils.LincolnPage()
	specs := presidentSpecs()

	first := cleaner.Clean(page, specs)
	second := cleaner.Clean(page, specs)

	require.Equal(t, first, second)
}

func TestClean_PartialFieldTolerance(t *testing.T) {
	t.Parallel()

	page := testutils.LincolnPage()
	delete(page.Infobox, "Died") // a living subject has no death row

	record := cleaner.Clean(page, presidentSpecs())

	require.True(t, record.Field("birth_date").Found)
	require.True(t, record.Field("term_start").Found)

	death := record.Field("death_date")
	require.False(t, death.Found)
	require.Empty(t, death.Date)
}

func TestClean_CapturesInfoboxAndSummary(t *testing.T) {
	t.Parallel()

	record := cleaner.Clean(testutils.LincolnPage(), nil)

	require.Empty(t, record.Fields)
	require.Contains(t, record.Summary, "16th president")
	require.NotContains(t, record.Summary, "[1]", "footnote refs must be stripped")
	require.Contains(t, record.Infobox, "Born")
}

func TestClean_FieldKinds(t *testing.T) {
	t.Parallel()

	page := &domain.RawPage{
		Term:    "france",
		Title:   "France",
		Summary: "France, officially the French Republic, is a country in Western Europe.",
		Sections: []domain.Section{
			{Heading: "Demographics", Text: "The population was estimated at 68,042,591 in January 2023."},
			{Heading: "Economy", Text: "Nominal GDP was about 2.96 trillion in 2022."},
		},
		Infobox: map[string]string{
			"Population": "68,042,591",
			"Area":       "643,801 km2",
			"Formation":  "First Republic proclaimed (September 1792)",
		},
	}

	tests := []struct {
		name       string
		spec       domain.FieldSpec
		wantFound  bool
		wantText   string
		wantNumber float64
		wantDate   string
	}{
		{
			name:       "number with comma grouping",
			spec:       domain.FieldSpec{Name: "population", Source: domain.SourceInfobox, Key: "Population", Kind: domain.KindNumber},
			wantFound:  true,
			wantNumber: 68042591,
		},
		{
			name:       "number with unit suffix",
			spec:       domain.FieldSpec{Name: "area", Source: domain.SourceInfobox, Key: "Area", Kind: domain.KindNumber},
			wantFound:  true,
			wantNumber: 643801,
		},
		{
			name:       "scaled number from section",
			spec:       domain.FieldSpec{Name: "gdp", Source: domain.SourceSection, Key: "Economy", Pattern: `[\d.]+ trillion`, Kind: domain.KindNumber},
			wantFound:  true,
			wantNumber: 2.96e12,
		},
		{
			name:       "year from infobox",
			spec:       domain.FieldSpec{Name: "formation_year", Source: domain.SourceInfobox, Key: "Formation", Kind: domain.KindYear},
			wantFound:  true,
			wantNumber: 1792,
		},
		{
			name:      "text from summary pattern",
			spec:      domain.FieldSpec{Name: "official_name", Source: domain.SourceSummary, Pattern: `officially the ([A-Z][A-Za-z ]+?),`, Kind: domain.KindText},
			wantFound: true,
			wantText:  "French Republic",
		},
		{
			name:      "absent infobox row",
			spec:      domain.FieldSpec{Name: "motto", Source: domain.SourceInfobox, Key: "Motto", Kind: domain.KindText},
			wantFound: false,
		},
		{
			name:      "absent section",
			spec:      domain.FieldSpec{Name: "history", Source: domain.SourceSection, Key: "History", Kind: domain.KindText},
			wantFound: false,
		},
		{
			name:      "pattern with no match",
			spec:      domain.FieldSpec{Name: "date", Source: domain.SourceSummary, Kind: domain.KindDate},
			wantFound: false,
		},
	}

	for i := range tests {
		test := &tests[i]
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			record := cleaner.Clean(page, []domain.FieldSpec{test.spec})
			value := record.Field(test.spec.Name)

			require.Equal(t, test.wantFound, value.Found)
			if !test.wantFound {
				return
			}
			if test.wantText != "" {
				require.Equal(t, test.wantText, value.Text)
			}
			if test.wantNumber != 0 {
				require.NotNil(t, value.Number)
				require.InEpsilon(t, test.wantNumber, *value.Number, 1e-9)
			}
			if test.wantDate != "" {
				require.Equal(t, test.wantDate, value.Date)
			}
		})
	}
}

func TestClean_DayFirstDates(t *testing.T) {
	t.Parallel()

	page := &domain.RawPage{
		Term:    "winston churchill",
		Title:   "Winston Churchill",
		Infobox: map[string]string{"Born": "30 November 1874, Blenheim Palace"},
	}

	record := cleaner.Clean(page, []domain.FieldSpec{
		{Name: "birth_date", Source: domain.SourceInfobox, Key: "Born", Kind: domain.KindDate},
	})

	birth := record.Field("birth_date")
	require.True(t, birth.Found)
	require.Equal(t, "1874-11-30", birth.Date)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips footnote refs",
			input: "Lincoln[3] led the Union[a] to victory.[12]",
			want:  "Lincoln led the Union to victory.",
		},
		{
			name:  "restores missing space after period",
			input: "He was born in Kentucky.He moved to Illinois.",
			want:  "He was born in Kentucky. He moved to Illinois.",
		},
		{
			name:  "converts unicode dashes and quotes",
			input: "March 4, 1861 – April 15, 1865 ’s",
			want:  "March 4, 1861 - April 15, 1865 's",
		},
		{
			name:  "newlines become comma separators",
			input: "February 12, 1809\nHodgenville, Kentucky",
			want:  "February 12, 1809, Hodgenville, Kentucky",
		},
		{
			name:  "collapses whitespace runs",
			input: "a   b\t\tc",
			want:  "a b c",
		},
		{
			name:  "drops stray non-ascii",
			input: "café population​",
			want:  "caf population",
		},
	}

	for i := range tests {
		test := &tests[i]
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, test.want, cleaner.Normalize(test.input))
		})
	}
}
