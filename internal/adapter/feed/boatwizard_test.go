package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boatfeed/internal/domain/model"
)

const wizardPayload = `<?xml version="1.0" encoding="UTF-8"?>
<BoatExport>
  <VehicleRemarketing>
    <VehicleRemarketingHeader>
      <DocumentIdentificationGroup>
        <DocumentIdentification>
          <DocumentID>bw-100</DocumentID>
        </DocumentIdentification>
      </DocumentIdentificationGroup>
    </VehicleRemarketingHeader>
    <VehicleRemarketingBoatLineItem>
      <PricingABIE>
        <Price>
          <ChargeAmount currencyID="EUR">850000.00</ChargeAmount>
        </Price>
      </PricingABIE>
      <Tax>
        <TaxStatusCode>Not Paid</TaxStatusCode>
      </Tax>
      <Location>
        <LocationAddress>
          <CityName>Denia</CityName>
        </LocationAddress>
      </Location>
      <VehicleRemarketingBoat>
        <MakeString>Ventura</MakeString>
        <Model>V55</Model>
        <ModelYear>2019</ModelYear>
        <NumberOfCabinsNumeric>3</NumberOfCabinsNumeric>
        <MaximumNumberOfPassengersNumeric>12</MaximumNumberOfPassengersNumeric>
        <MaximumSpeedMeasure unitCode="knots">32</MaximumSpeedMeasure>
        <GeneralBoatDescription>Flagship cruiser.</GeneralBoatDescription>
        <BoatLengthGroup>
          <BoatLengthCode>Length Overall</BoatLengthCode>
          <BoatLengthMeasure unitCode="ft">55</BoatLengthMeasure>
        </BoatLengthGroup>
        <BoatLengthGroup>
          <BoatLengthCode>Length at Waterline</BoatLengthCode>
          <BoatLengthMeasure unitCode="ft">48</BoatLengthMeasure>
        </BoatLengthGroup>
      </VehicleRemarketingBoat>
      <VehicleRemarketingEngineLineItem>
        <VehicleRemarketingEngine>
          <MakeString>Volvo Penta</MakeString>
          <Model>IPS950</Model>
          <FuelTypeCode>diesel</FuelTypeCode>
          <PowerMeasure>
            <MechanicalEnergyMeasure unitCode="horsepower">725</MechanicalEnergyMeasure>
          </PowerMeasure>
        </VehicleRemarketingEngine>
      </VehicleRemarketingEngineLineItem>
      <ImageAttachmentExtended>
        <URI>https://img.example/v-main.jpg</URI>
        <UsagePreference>
          <PriorityRankingNumeric>0</PriorityRankingNumeric>
        </UsagePreference>
      </ImageAttachmentExtended>
      <ImageAttachmentExtended>
        <URI>https://img.example/v-2.jpg</URI>
        <UsagePreference>
          <PriorityRankingNumeric>1</PriorityRankingNumeric>
        </UsagePreference>
      </ImageAttachmentExtended>
    </VehicleRemarketingBoatLineItem>
  </VehicleRemarketing>
  <VehicleRemarketing>
    <VehicleRemarketingHeader>
      <DocumentIdentificationGroup>
        <DocumentIdentification>
          <DocumentID>bw-200</DocumentID>
        </DocumentIdentification>
      </DocumentIdentificationGroup>
    </VehicleRemarketingHeader>
    <VehicleRemarketingBoatLineItem>
      <PricingABIE>
        <Price>
          <ChargeAmount currencyID="GBP">495000</ChargeAmount>
        </Price>
      </PricingABIE>
      <VehicleRemarketingBoat>
        <MakeString>Ventura</MakeString>
        <Model>V40</Model>
        <BoatLengthGroup>
          <BoatLengthCode>Length Overall</BoatLengthCode>
          <BoatLengthMeasure unitCode="meters">12.2</BoatLengthMeasure>
        </BoatLengthGroup>
      </VehicleRemarketingBoat>
    </VehicleRemarketingBoatLineItem>
  </VehicleRemarketing>
  <VehicleRemarketing>
    <VehicleRemarketingHeader>
      <DocumentIdentificationGroup>
        <DocumentIdentification>
          <DocumentID>bw-300</DocumentID>
        </DocumentIdentification>
      </DocumentIdentificationGroup>
    </VehicleRemarketingHeader>
    <VehicleRemarketingBoatLineItem>
      <PricingABIE>
        <Price>
          <ChargeAmount currencyID="EUR">0</ChargeAmount>
        </Price>
      </PricingABIE>
    </VehicleRemarketingBoatLineItem>
  </VehicleRemarketing>
  <VehicleRemarketing>
    <VehicleRemarketingBoatLineItem>
      <PricingABIE>
        <Price>
          <ChargeAmount currencyID="EUR">100000</ChargeAmount>
        </Price>
      </PricingABIE>
    </VehicleRemarketingBoatLineItem>
  </VehicleRemarketing>
</BoatExport>`

func TestBoatWizardNormalize(t *testing.T) {
	feed := NewBoatWizard("event-1", "en", time.Second, 5, 10, testLogger())

	rates := model.NewRateTable()
	rates.Set(model.EUR, model.GBP, 0.85)
	rates.Set(model.EUR, model.USD, 1.1)

	listings, err := feed.Normalize([]byte(wizardPayload), rates)
	require.NoError(t, err)

	// The zero-price and the id-less records are dropped.
	require.Len(t, listings, 2)

	l := listings[0]
	assert.Equal(t, "bw-100", l.BoatID)
	assert.Equal(t, "", l.YachtWorldID)
	assert.Equal(t, "Ventura", l.Make)
	assert.Equal(t, "V55", l.Model)
	assert.Equal(t, 2019, l.Year)
	assert.Equal(t, float64(850000), l.Price)
	assert.Equal(t, "722,500", l.PriceGBP)
	assert.Equal(t, "850,000", l.PriceEUR)
	assert.Equal(t, "935,000", l.PriceUSD)
	assert.Equal(t, "&euro;850,000", l.PriceTitle)
	assert.Equal(t, "EUR", l.PriceCurrency)

	// Length Overall in feet converts to metres; the waterline group is
	// ignored.
	assert.Equal(t, float64(55), l.LengthFeet)
	assert.Equal(t, float64(17), l.LengthMetre)

	assert.Equal(t, 3, l.CabinsCount)
	assert.Equal(t, "3 Cabins", l.CabinsLabel)
	assert.Equal(t, "tax not paid", l.TaxStatus)
	assert.Equal(t, "32 knots", l.MaxSpeed)
	assert.Equal(t, "12 Passengers", l.PassengersLabel)
	assert.Equal(t, "Denia", l.Location)
	assert.Equal(t, "Flagship cruiser.", l.Description)
	assert.Equal(t, "Volvo Penta", l.EngineMake)
	assert.Equal(t, "IPS950", l.EngineModel)
	assert.Equal(t, "diesel", l.EngineFuelType)
	assert.Equal(t, "725", l.EnginePower)
	assert.Equal(t, "horsepower", l.EnginePowerUnit)
	assert.Equal(t, "https://img.example/v-main.jpg", l.MainImage)
	assert.Equal(t, []string{"https://img.example/v-2.jpg"}, l.Images)
	assert.Equal(t, model.FeedVentura, l.Feed)

	// Metre-denominated lengths convert the other way.
	l2 := listings[1]
	assert.Equal(t, "bw-200", l2.BoatID)
	assert.Equal(t, 12.2, l2.LengthMetre)
	assert.Equal(t, float64(40), l2.LengthFeet)
	assert.Equal(t, "495,000", l2.PriceGBP)
}

func TestBoatWizardNormalizeBadPayload(t *testing.T) {
	feed := NewBoatWizard("event-1", "en", time.Second, 5, 10, testLogger())

	_, err := feed.Normalize([]byte(`{"not":"xml"}`), nil)
	require.Error(t, err)
}
