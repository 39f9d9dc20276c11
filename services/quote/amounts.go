// Package quote computes line and event amounts from the pricing fields of the
// upstream booking API. Every function here is total: missing or malformed
// fields count as zero and nothing returns an error.
package quote

import (
	"math"

	"venuedesk/payload"
)

// TaxRateSource tells which formula produced an item's tax rate.
type TaxRateSource string

const (
	TaxFromUnitPrice TaxRateSource = "unitPrice"
	TaxFromTotals    TaxRateSource = "totals"
	TaxNone          TaxRateSource = "none"
)

// Rates closer than this are considered equal when comparing formulas.
const taxRateTolerance = 0.0001

// ItemAmounts are the derived amounts of one room or service line.
type ItemAmounts struct {
	Price    float64 `json:"price"`
	Net      float64 `json:"net"`
	Gross    float64 `json:"gross"`
	Discount float64 `json:"discount"`
	Taxable  float64 `json:"taxable"`
	TaxRate  float64 `json:"taxRate"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`

	TaxRateSource TaxRateSource `json:"taxRateSource"`
	// TaxRateMismatch flags inconsistent upstream pricing: the two tax
	// formulas disagree, or the tax-included price is below the base price.
	// The chosen rate is not altered.
	TaxRateMismatch bool `json:"taxRateMismatch,omitempty"`
}

// CalculateItemAmounts derives net, discount, tax and total for a line item
// booked quantity times.
func CalculateItemAmounts(item map[string]any, quantity float64) ItemAmounts {
	priceTNI := payload.Float(item["priceTNI"])
	priceTI := payload.Float(item["priceTI"])

	price := priceTNI
	if price == 0 {
		price = priceTI
	}

	net, ok := payload.Number(item["netAmount"])
	if !ok {
		net = price * quantity
	}

	gross, ok := payload.FirstNumber(item, "grossAmount", "groosAmount")
	if !ok {
		gross = net
	}

	discount := net * (payload.Float(item["discountPercentage"]) / 100)

	unitRateOK := priceTNI > 0 && priceTI > 0 && priceTI > priceTNI
	totalsRateOK := net > 0 && gross > net

	a := ItemAmounts{
		Price:         price,
		Net:           net,
		Gross:         gross,
		Discount:      discount,
		TaxRateSource: TaxNone,
	}
	switch {
	case unitRateOK:
		a.TaxRate = (priceTI - priceTNI) / priceTNI
		a.TaxRateSource = TaxFromUnitPrice
		if totalsRateOK && math.Abs(a.TaxRate-(gross-net)/net) > taxRateTolerance {
			a.TaxRateMismatch = true
		}
	case totalsRateOK:
		a.TaxRate = (gross - net) / net
		a.TaxRateSource = TaxFromTotals
	}
	if priceTNI > 0 && priceTI > 0 && priceTI < priceTNI {
		a.TaxRateMismatch = true
	}

	a.Taxable = math.Max(0, net-discount)
	a.Tax = a.Taxable * a.TaxRate
	a.Total = a.Taxable + a.Tax
	return a
}

// ServiceQuantity is the booked quantity of a service line, defaulting to 1.
func ServiceQuantity(service map[string]any) float64 {
	for _, k := range []string{"quantity", "serviceQuantity"} {
		if q := payload.Float(service[k]); q != 0 {
			return q
		}
	}
	return 1
}

// counts reports whether a line contributes to totals.
func (a ItemAmounts) counts() bool {
	return a.Net > 0 || a.Price > 0
}
