package services

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/saoodchoudhary/rbmesports/models"
)

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders an amount the way the join modal shows it, e.g. "₹500" or "₹49.5".
func FormatINR(amount float64) string {
	return inrPrinter.Sprintf("₹%v", number.Decimal(amount, number.MaxFractionDigits(2)))
}

// CalculateQuote derives the payable amount for a tournament and an optional
// backend-validated coupon. Free tournaments are always payable 0.
func CalculateQuote(t models.Tournament, coupon *models.CouponResult) models.Quote {
	base := t.BaseAmount()
	q := models.Quote{
		BaseAmount: base,
		Payable:    base,
	}
	if coupon != nil && !t.IsFree {
		q.Payable = coupon.FinalAmount
		q.Discount = coupon.DiscountAmount
	}
	if q.Payable < 0 {
		q.Payable = 0
	}
	q.HasDiscount = q.Discount > 0
	q.Original = FormatINR(q.BaseAmount)
	q.Total = FormatINR(q.Payable)
	return q
}
