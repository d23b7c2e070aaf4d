package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"boatfeed/internal/domain/model"
	"boatfeed/internal/domain/port"
)

var _ port.FeedPort = (*BoatWizard)(nil)
var _ port.RawFetcher = (*BoatWizard)(nil)

// BoatWizard is the BoatWizard XML bulk-export feed ("ventura").
type BoatWizard struct {
	client  *client
	eventID string
	lang    string
	log     *slog.Logger
}

func NewBoatWizard(eventID, lang string, timeout time.Duration, rps float64, burst int, log *slog.Logger) *BoatWizard {
	return &BoatWizard{
		client:  newClient(timeout, rps, burst),
		eventID: eventID,
		lang:    lang,
		log:     log,
	}
}

func (f *BoatWizard) Name() string { return "boatwizard" }

func (f *BoatWizard) url() string {
	return fmt.Sprintf("https://services.boatwizard.com/bridge/events/%s/boats?status=on",
		url.PathEscape(f.eventID))
}

func (f *BoatWizard) Fetch(ctx context.Context) ([]byte, error) {
	return f.client.get(ctx, f.url())
}

func (f *BoatWizard) FetchRaw(ctx context.Context) (int, string, []byte, error) {
	return f.client.getRaw(ctx, f.url())
}

// measureNode covers the export's value-with-attributes elements: the value
// is character data, currency and unit arrive as attributes.
type measureNode struct {
	Value      string `xml:",chardata"`
	CurrencyID string `xml:"currencyID,attr"`
	UnitCode   string `xml:"unitCode,attr"`
}

func (m measureNode) float() (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(m.Value), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

type wizardExport struct {
	Boats []wizardNode `xml:"VehicleRemarketing"`
}

type wizardNode struct {
	DocumentID string `xml:"VehicleRemarketingHeader>DocumentIdentificationGroup>DocumentIdentification>DocumentID"`

	LineItem struct {
		ChargeAmount measureNode `xml:"PricingABIE>Price>ChargeAmount"`

		TaxStatusCode string `xml:"Tax>TaxStatusCode"`
		City          string `xml:"Location>LocationAddress>CityName"`

		Boat struct {
			Make        string      `xml:"MakeString"`
			Model       string      `xml:"Model"`
			ModelYear   string      `xml:"ModelYear"`
			Cabins      string      `xml:"NumberOfCabinsNumeric"`
			Passengers  string      `xml:"MaximumNumberOfPassengersNumeric"`
			MaxSpeed    measureNode `xml:"MaximumSpeedMeasure"`
			Description string      `xml:"GeneralBoatDescription"`

			Lengths []struct {
				Code     string      `xml:"BoatLengthCode"`
				Measure  measureNode `xml:"BoatLengthMeasure"`
				UnitCode string      `xml:"BoatLengthMeasureUnitCode"`
			} `xml:"BoatLengthGroup"`
		} `xml:"VehicleRemarketingBoat"`

		Engine struct {
			Make     string      `xml:"MakeString"`
			Model    string      `xml:"Model"`
			FuelType string      `xml:"FuelTypeCode"`
			Power    measureNode `xml:"PowerMeasure>MechanicalEnergyMeasure"`
		} `xml:"VehicleRemarketingEngineLineItem>VehicleRemarketingEngine"`

		Images []struct {
			URI      string `xml:"URI"`
			Priority string `xml:"UsagePreference>PriorityRankingNumeric"`
		} `xml:"ImageAttachmentExtended"`
	} `xml:"VehicleRemarketingBoatLineItem"`
}

func (f *BoatWizard) Normalize(payload []byte, rates *model.RateTable) ([]model.Listing, error) {
	var export wizardExport
	if err := xml.Unmarshal(payload, &export); err != nil {
		return nil, fmt.Errorf("decode boatwizard payload: %w", err)
	}

	listings := make([]model.Listing, 0, len(export.Boats))
	for _, node := range export.Boats {
		if l, ok := f.normalize(node, rates); ok {
			listings = append(listings, l)
		}
	}

	f.log.Debug("normalized boatwizard feed", "raw", len(export.Boats), "kept", len(listings))
	return listings, nil
}

func (f *BoatWizard) normalize(node wizardNode, rates *model.RateTable) (model.Listing, bool) {
	id := strings.TrimSpace(node.DocumentID)
	if id == "" {
		return model.Listing{}, false
	}

	item := node.LineItem
	boat := item.Boat

	price, ok := item.ChargeAmount.float()
	if !ok || price <= 0 {
		return model.Listing{}, false
	}
	curr := strings.ToUpper(strings.TrimSpace(item.ChargeAmount.CurrencyID))

	var lengthMetre, lengthFeet float64
	for _, lg := range boat.Lengths {
		if lg.Code != "Length Overall" {
			continue
		}
		value, ok := lg.Measure.float()
		if !ok {
			continue
		}
		unit := lg.Measure.UnitCode
		if unit == "" {
			unit = lg.UnitCode
		}
		if strings.Contains(strings.ToLower(unit), "ft") {
			lengthFeet = value
			lengthMetre = feetToMetres(value)
		} else {
			lengthMetre = value
			lengthFeet = metresToFeet(value)
		}
	}

	cabins := atoiOrZero(boat.Cabins)
	passengers := atoiOrZero(boat.Passengers)

	maxSpeed := ""
	if v := strings.TrimSpace(boat.MaxSpeed.Value); v != "" {
		parts := []string{v}
		if boat.MaxSpeed.UnitCode != "" {
			parts = append(parts, boat.MaxSpeed.UnitCode)
		}
		maxSpeed = maxSpeedLabel(strings.Join(parts, " "))
	}

	var mainImage string
	var images []string
	for _, img := range item.Images {
		uri := strings.TrimSpace(img.URI)
		if uri == "" {
			continue
		}
		if strings.TrimSpace(img.Priority) == "0" && mainImage == "" {
			mainImage = uri
		} else {
			images = append(images, uri)
		}
	}

	return model.Listing{
		BoatID:          id,
		Make:            boat.Make,
		Model:           boat.Model,
		Year:            atoiOrZero(boat.ModelYear),
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
		MaxSpeed:        maxSpeed,
		PassengersLabel: passengersLabel(passengers, f.lang),
		Location:        item.City,
		Description:     boat.Description,
		EngineMake:      item.Engine.Make,
		EngineModel:     item.Engine.Model,
		EngineFuelType:  item.Engine.FuelType,
		EnginePower:     strings.TrimSpace(item.Engine.Power.Value),
		EnginePowerUnit: item.Engine.Power.UnitCode,
		MainImage:       mainImage,
		Images:          images,
		Feed:            model.FeedVentura,
	}, true
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
