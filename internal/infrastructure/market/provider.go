// Package market supplies comparable-rents datasets to the analysis engine.
package market

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/krishnashakula/LeaseIQ/internal/domain/analysis"
	pkgerrors "github.com/krishnashakula/LeaseIQ/pkg/errors"
)

// StaticProvider serves a fixed in-memory dataset.  It backs the default
// deployment and all tests; a file-based dataset can be loaded over it.
type StaticProvider struct {
	data analysis.MarketData
}

var _ analysis.MarketDataProvider = (*StaticProvider)(nil)

// defaultRents is the bundled metro-area snapshot.
var defaultRents = []int64{
	2200, 2250, 2300, 2350, 2400, 2450, 2500, 2550, 2600, 2600,
	2600, 2650, 2650, 2700, 2700, 2750, 2750, 2800, 2800, 2800,
}

// NewStaticProvider returns a provider over the bundled dataset for the
// given region label.
func NewStaticProvider(region string) *StaticProvider {
	rents := make([]decimal.Decimal, 0, len(defaultRents))
	for _, r := range defaultRents {
		rents = append(rents, decimal.NewFromInt(r))
	}
	return &StaticProvider{
		data: analysis.MarketData{
			Region:        region,
			Rents:         rents,
			AveragePetFee: decimal.NewFromInt(25),
		},
	}
}

// datasetFile is the on-disk dataset format.
type datasetFile struct {
	Region        string    `json:"region"`
	Rents         []float64 `json:"rents"`
	AveragePetFee float64   `json:"average_pet_fee"`
}

// NewFileProvider loads a JSON dataset from disk.  The file replaces the
// bundled snapshot entirely.
func NewFileProvider(path string) (*StaticProvider, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeMarketDataUnavailable,
			fmt.Sprintf("read market dataset %s", path))
	}
	var file datasetFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeMarketDataInvalid,
			fmt.Sprintf("parse market dataset %s", path))
	}
	if len(file.Rents) == 0 {
		return nil, pkgerrors.New(pkgerrors.ErrCodeMarketDataInvalid,
			fmt.Sprintf("market dataset %s contains no rents", path))
	}

	rents := make([]decimal.Decimal, 0, len(file.Rents))
	for _, r := range file.Rents {
		rents = append(rents, decimal.NewFromFloat(r))
	}
	return &StaticProvider{
		data: analysis.MarketData{
			Region:        file.Region,
			Rents:         rents,
			AveragePetFee: decimal.NewFromFloat(file.AveragePetFee),
		},
	}, nil
}

// MarketData implements analysis.MarketDataProvider.
func (p *StaticProvider) MarketData() (analysis.MarketData, error) {
	return p.data, nil
}
