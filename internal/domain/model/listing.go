package model

// Feed provenance tags.
const (
	FeedCobrokerage = "cobrokerage"
	FeedVentura     = "ventura"
)

// Listing is the canonical boat record produced by feed normalization.
// Numeric fields use the zero value for "not present"; query comparisons
// treat missing values as 0.
type Listing struct {
	BoatID          string   `json:"boat_id"`
	YachtWorldID    string   `json:"yachtworld_id"`
	Make            string   `json:"make"`
	Model           string   `json:"model"`
	Year            int      `json:"year"`
	Price           float64  `json:"price"`
	PriceGBP        string   `json:"price_gbp"`
	PriceEUR        string   `json:"price_eur"`
	PriceUSD        string   `json:"price_usd"`
	PriceTitle      string   `json:"price_title"`
	PriceCurrency   string   `json:"price_currency"`
	LengthMetre     float64  `json:"length_metre"`
	LengthFeet      float64  `json:"length_feet"`
	CabinsCount     int      `json:"number_of_cabins_num"`
	CabinsLabel     string   `json:"number_of_cabins"`
	TaxStatus       string   `json:"tax_status"`
	MaxSpeed        string   `json:"max_speed"`
	PassengersLabel string   `json:"number_of_passengers"`
	Location        string   `json:"location"`
	Description     string   `json:"description"`
	EngineMake      string   `json:"engine_make"`
	EngineModel     string   `json:"engine_model"`
	EngineFuelType  string   `json:"engine_fuel_type"`
	EnginePower     string   `json:"engine_power"`
	EnginePowerUnit string   `json:"engine_power_unit"`
	MainImage       string   `json:"main_image"`
	Images          []string `json:"image"`
	Feed            string   `json:"feed"`
}
