// Package catalog implements in-memory filtering over listings already
// fetched from the database. Filtering is pure: it never mutates its
// input, keeps the input order, and applying the same query twice gives
// the same result. All active predicates are ANDed.
package catalog

import (
	"strings"

	"github.com/vismay-farm/agri-market/internal/repository"
)

// Query describes what the viewer is filtering for.
//
// Text is matched case-insensitively as a substring of a listing's name
// or description (plus the seller's location for crops). TargetValue,
// when positive, keeps listings whose value sits inside a ±20% band
// around it, both bounds inclusive: the barter flow matches equipment
// of roughly equivalent value rather than exact price. ExcludeOwner,
// when non-zero, drops the viewer's own listings so browse-to-barter
// and browse-to-buy views never offer a farmer their own inventory.
type Query struct {
	Text         string
	TargetValue  float64
	ExcludeOwner uint64
}

// valueBandLow and valueBandHigh bound the tolerance band around the
// target value.
const (
	valueBandLow  = 0.8
	valueBandHigh = 1.2
)

// InValueBand reports whether value falls within the inclusive ±20%
// band around target.
func InValueBand(value, target float64) bool {
	return value >= valueBandLow*target && value <= valueBandHigh*target
}

// Machines returns the machines matching q, preserving input order.
func Machines(items []*repository.MachineDetail, q Query) []*repository.MachineDetail {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	out := make([]*repository.MachineDetail, 0, len(items))
	for _, m := range items {
		if q.ExcludeOwner != 0 && m.OwnerID == q.ExcludeOwner {
			continue
		}
		if text != "" &&
			!strings.Contains(strings.ToLower(m.Name), text) &&
			!strings.Contains(strings.ToLower(m.Description), text) {
			continue
		}
		if q.TargetValue > 0 && !InValueBand(m.Value, q.TargetValue) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Crops returns the crops matching q, preserving input order. Unlike
// machines, the text predicate also matches the seller's location so
// buyers can search for produce near them.
func Crops(items []*repository.CropDetail, q Query) []*repository.CropDetail {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	out := make([]*repository.CropDetail, 0, len(items))
	for _, c := range items {
		if q.ExcludeOwner != 0 && c.SellerID == q.ExcludeOwner {
			continue
		}
		if text != "" &&
			!strings.Contains(strings.ToLower(c.Name), text) &&
			!strings.Contains(strings.ToLower(c.Description), text) &&
			!strings.Contains(strings.ToLower(c.Seller.Location), text) {
			continue
		}
		if q.TargetValue > 0 && !InValueBand(c.Price, q.TargetValue) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ValueBandLabel buckets an equipment value into the label shown next
// to listings in the web UI.
func ValueBandLabel(value float64) string {
	switch {
	case value < 10000:
		return "Below ₹10,000"
	case value < 25000:
		return "₹10,000 - ₹25,000"
	case value < 50000:
		return "₹25,000 - ₹50,000"
	case value < 75000:
		return "₹50,000 - ₹75,000"
	case value < 100000:
		return "₹75,000 - ₹1,00,000"
	default:
		return "Above ₹1,00,000"
	}
}
