package market

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider("us-metro")
	data, err := p.MarketData()
	require.NoError(t, err)

	assert.Equal(t, "us-metro", data.Region)
	assert.Len(t, data.Rents, 20)
	assert.True(t, data.AveragePetFee.Equal(decimal.NewFromInt(25)))

	for _, r := range data.Rents {
		assert.True(t, r.GreaterThanOrEqual(decimal.NewFromInt(2200)))
		assert.True(t, r.LessThanOrEqual(decimal.NewFromInt(2800)))
	}
	assert.True(t, data.Median().Equal(decimal.NewFromInt(2600)))
}

func TestFileProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	content := `{"region":"test-town","rents":[1000,1100,1200],"average_pet_fee":30}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	p, err := NewFileProvider(path)
	require.NoError(t, err)

	data, err := p.MarketData()
	require.NoError(t, err)
	assert.Equal(t, "test-town", data.Region)
	assert.Len(t, data.Rents, 3)
	assert.True(t, data.AveragePetFee.Equal(decimal.NewFromInt(30)))
}

func TestFileProviderErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileProvider("/nonexistent/dataset.json")
		require.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dataset.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
		_, err := NewFileProvider(path)
		require.Error(t, err)
	})

	t.Run("empty rents", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dataset.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"region":"x","rents":[]}`), 0o600))
		_, err := NewFileProvider(path)
		require.Error(t, err)
	})
}
