package entities

// Region is one of the shipping cost buckets derived from a Brazilian state code.
type Region string

const (
	RegionSudeste     Region = "sudeste"
	RegionSul         Region = "sul"
	RegionNordeste    Region = "nordeste"
	RegionNorte       Region = "norte"
	RegionCentroOeste Region = "centroOeste"

	// DefaultRegion is used for unmapped state codes.
	DefaultRegion = RegionSudeste
)

// RegionRate is the per-unit price band and delivery window of a region.
type RegionRate struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Days string  `json:"days"`
}

// ShippingQuote is never persisted.
type ShippingQuote struct {
	State    string  `json:"state"`
	Region   Region  `json:"region"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	MinPrice float64 `json:"minPrice"`
	MaxPrice float64 `json:"maxPrice"`
	Days     string  `json:"days"`
	Fallback bool    `json:"fallback,omitempty"`
}

func DefaultShippingRates() map[Region]RegionRate {
	return map[Region]RegionRate{
		RegionSudeste:     {Min: 15.90, Max: 22.90, Days: "3 a 5"},
		RegionSul:         {Min: 18.90, Max: 25.90, Days: "4 a 6"},
		RegionNordeste:    {Min: 22.90, Max: 32.90, Days: "5 a 8"},
		RegionNorte:       {Min: 25.90, Max: 38.90, Days: "6 a 10"},
		RegionCentroOeste: {Min: 19.90, Max: 28.90, Days: "4 a 7"},
	}
}

// DefaultRegionByState covers the 26 states and the federal district.
func DefaultRegionByState() map[string]Region {
	return map[string]Region{
		"SP": RegionSudeste, "RJ": RegionSudeste, "MG": RegionSudeste, "ES": RegionSudeste,
		"PR": RegionSul, "SC": RegionSul, "RS": RegionSul,
		"BA": RegionNordeste, "SE": RegionNordeste, "AL": RegionNordeste, "PE": RegionNordeste,
		"PB": RegionNordeste, "RN": RegionNordeste, "CE": RegionNordeste, "PI": RegionNordeste, "MA": RegionNordeste,
		"AM": RegionNorte, "PA": RegionNorte, "AC": RegionNorte, "RO": RegionNorte, "RR": RegionNorte, "AP": RegionNorte, "TO": RegionNorte,
		"MT": RegionCentroOeste, "MS": RegionCentroOeste, "GO": RegionCentroOeste, "DF": RegionCentroOeste,
	}
}
