package draws

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aristath/eurogenius/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `date,n1,n2,n3,n4,n5,s1,s2
2024-01-02,5,12,23,34,45,3,9
2024-01-05,1,2,3,4,5,1,2
2024-01-09,1,1,3,4,5,1,2
2024-01-12,1,2,3,4,51,1,2
not-a-date,1,2,3,4,5,1,2
2024-01-16,1,2,3,4,5,1
02/02/2024,10,20,30,40,50,11,12
2024-01-05,6,7,8,9,10,3,4
`

func TestImporter_Import(t *testing.T) {
	repo := newTestRepository(t)
	importer := NewImporter(repo, zerolog.Nop())
	ctx := context.Background()

	result, err := importer.Import(ctx, strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 8, result.Rows)
	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, 4, result.Skipped)
	assert.Equal(t, 1, result.Duplicates)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{5, 12, 23, 34, 45}, all[0].Primary)
	assert.Equal(t, []int{3, 9}, all[0].Secondary)
	assert.Equal(t, "2024-02-02", all[2].Date.Format(DateLayout))
}

func TestImporter_WithoutHeader(t *testing.T) {
	repo := newTestRepository(t)
	importer := NewImporter(repo, zerolog.Nop())

	result, err := importer.Import(context.Background(), strings.NewReader(
		"2024-01-02,45,34,23,12,5,9,3\n,1,2,3,4,5,1,2\n",
	))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Rows)
	assert.Equal(t, 2, result.Imported)
}

func TestImporter_ImportFile(t *testing.T) {
	repo := newTestRepository(t)
	importer := NewImporter(repo, zerolog.Nop())

	path := filepath.Join(t.TempDir(), "history.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

	result, err := importer.ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Imported)

	_, err = importer.ImportFile(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "2024-03-01", want: "2024-03-01"},
		{input: "01/03/2024", want: "2024-03-01"},
		{input: "2024/03/01", want: "2024-03-01"},
		{input: " ", want: ""},
		{input: "March 1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidDraw)
				return
			}
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, got.Format(DateLayout))
		})
	}
}
