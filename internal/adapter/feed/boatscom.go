package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"boatfeed/internal/domain/model"
	"boatfeed/internal/domain/port"
)

var _ port.FeedPort = (*BoatsCom)(nil)
var _ port.RawFetcher = (*BoatsCom)(nil)

const boatsComFields = "DocumentId,YachtWorldID,CabinsCountNumeric,MaximumNumberOfPassengersNumeric," +
	"EngineMakeString,EngineModel,EngineFuel,TotalEnginePowerQuantity,BoatLocation,ModelYear," +
	"GeneralBoatDescription,MaximumSpeedMeasure,TaxStatusCode,ModelExact,Images,Price," +
	"NormNominalLength,MakeStringExact"

// BoatsCom is the boats.com JSON search feed ("cobrokerage").
type BoatsCom struct {
	client *client
	apiKey string
	lang   string
	log    *slog.Logger
}

func NewBoatsCom(apiKey, lang string, timeout time.Duration, rps float64, burst int, log *slog.Logger) *BoatsCom {
	return &BoatsCom{
		client: newClient(timeout, rps, burst),
		apiKey: apiKey,
		lang:   lang,
		log:    log,
	}
}

func (f *BoatsCom) Name() string { return "boatscom" }

func (f *BoatsCom) url() string {
	return "https://services.boats.com/pls/boats/search" +
		"?fields=" + boatsComFields +
		"&rows=1000" +
		"&key=" + url.QueryEscape(f.apiKey) +
		"&currency=original"
}

func (f *BoatsCom) Fetch(ctx context.Context) ([]byte, error) {
	return f.client.get(ctx, f.url())
}

func (f *BoatsCom) FetchRaw(ctx context.Context) (int, string, []byte, error) {
	return f.client.getRaw(ctx, f.url())
}

type boatsComEnvelope struct {
	Data struct {
		Results []boatsComItem `json:"results"`
	} `json:"data"`
}

type boatsComItem struct {
	DocumentID    flexString `json:"DocumentId"`
	YachtWorldID  flexString `json:"YachtWorldID"`
	Make          string     `json:"MakeStringExact"`
	Model         string     `json:"ModelExact"`
	ModelYear     flexNumber `json:"ModelYear"`
	Price         flexString `json:"Price"`
	NominalLength flexNumber `json:"NormNominalLength"`
	CabinsCount   flexNumber `json:"CabinsCountNumeric"`
	Passengers    flexNumber `json:"MaximumNumberOfPassengersNumeric"`
	TaxStatusCode string     `json:"TaxStatusCode"`
	MaxSpeed      flexString `json:"MaximumSpeedMeasure"`
	Location      struct {
		City string `json:"BoatCityName"`
	} `json:"BoatLocation"`
	Description flexText   `json:"GeneralBoatDescription"`
	EngineMake  string     `json:"EngineMakeString"`
	EngineModel string     `json:"EngineModel"`
	EngineFuel  string     `json:"EngineFuel"`
	EnginePower flexString `json:"TotalEnginePowerQuantity"`
	Images      []struct {
		URI      string     `json:"Uri"`
		Priority flexNumber `json:"Priority"`
	} `json:"Images"`
}

func (f *BoatsCom) Normalize(payload []byte, rates *model.RateTable) ([]model.Listing, error) {
	var env boatsComEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("decode boats.com payload: %w", err)
	}

	listings := make([]model.Listing, 0, len(env.Data.Results))
	for _, item := range env.Data.Results {
		if l, ok := f.normalize(item, rates); ok {
			listings = append(listings, l)
		}
	}

	f.log.Debug("normalized boats.com feed", "raw", len(env.Data.Results), "kept", len(listings))
	return listings, nil
}

// parseBoatsComPrice splits a "123,456 EUR" style value into amount and ISO
// code. Amounts of exactly 0 or 1 are placeholder values, not real prices.
func parseBoatsComPrice(raw string) (amount float64, currency string, ok bool) {
	if len(raw) < 4 {
		return 0, "", false
	}
	currency = strings.ToUpper(raw[len(raw)-3:])
	numPart := strings.TrimSpace(strings.ReplaceAll(raw[:len(raw)-4], ",", ""))
	amount, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 0, currency, false
	}
	if amount == 0 || amount == 1 {
		return 0, currency, false
	}
	return amount, currency, true
}

func (f *BoatsCom) normalize(item boatsComItem, rates *model.RateTable) (model.Listing, bool) {
	id := string(item.YachtWorldID)
	if id == "" {
		id = string(item.DocumentID)
	}
	if id == "" {
		return model.Listing{}, false
	}

	price, curr, ok := parseBoatsComPrice(string(item.Price))
	if !ok {
		return model.Listing{}, false
	}

	var lengthMetre, lengthFeet float64
	if item.NominalLength.Valid {
		lengthMetre = item.NominalLength.Value
		lengthFeet = metresToFeet(lengthMetre)
	}

	var cabins, passengers int
	if item.CabinsCount.Valid {
		cabins = int(item.CabinsCount.Value)
	}
	if item.Passengers.Valid {
		passengers = int(item.Passengers.Value)
	}

	var mainImage string
	var images []string
	for _, img := range item.Images {
		if img.URI == "" {
			continue
		}
		if img.Priority.Valid && img.Priority.Value == 0 && mainImage == "" {
			mainImage = img.URI
		} else {
			images = append(images, img.URI)
		}
	}

	return model.Listing{
		BoatID:          id,
		YachtWorldID:    id,
		Make:            item.Make,
		Model:           item.Model,
		Year:            int(item.ModelYear.Value),
		Price:           price,
		PriceGBP:        convertPrice(price, curr, rates, model.GBP),
		PriceEUR:        convertPrice(price, curr, rates, model.EUR),
		PriceUSD:        convertPrice(price, curr, rates, model.USD),
		PriceTitle:      priceTitle(price, curr),
		PriceCurrency:   curr,
		LengthMetre:     lengthMetre,
		LengthFeet:      lengthFeet,
		CabinsCount:     cabins,
		CabinsLabel:     cabinsLabel(cabins, f.lang),
		TaxStatus:       taxStatusLabel(item.TaxStatusCode),
		MaxSpeed:        maxSpeedLabel(string(item.MaxSpeed)),
		PassengersLabel: passengersLabel(passengers, f.lang),
		Location:        item.Location.City,
		Description:     string(item.Description),
		EngineMake:      item.EngineMake,
		EngineModel:     item.EngineModel,
		EngineFuelType:  item.EngineFuel,
		EnginePower:     string(item.EnginePower),
		MainImage:       mainImage,
		Images:          images,
		Feed:            model.FeedCobrokerage,
	}, true
}
