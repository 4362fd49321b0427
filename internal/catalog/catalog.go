// Package catalog holds the supported phone models and their financing
// rules: stock image, allowed plan cadence, and down payment rate.
package catalog

import "github.com/shopspring/decimal"

var phoneImageURLs = map[string]string{
	"iPhone XR":         "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-xr-new.jpg",
	"iPhone XS":         "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-xs-new.jpg",
	"iPhone XS Max":     "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-xs-max-new1.jpg",
	"iPhone 11":         "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-11.jpg",
	"iPhone 11 Pro":     "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-11-pro.jpg",
	"iPhone 11 Pro Max": "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-11-pro-max.jpg",
	"iPhone 12":         "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-12.jpg",
	"iPhone 12 mini":    "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-12-mini.jpg",
	"iPhone 12 Pro":     "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-12-pro--.jpg",
	"iPhone 12 Pro Max": "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-12-pro-max-.jpg",
	"iPhone 13":         "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-13.jpg",
	"iPhone 13 mini":    "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-13-mini.jpg",
	"iPhone 13 Pro":     "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-13-pro.jpg",
	"iPhone 13 Pro Max": "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-13-pro-max.jpg",
	"iPhone 14":         "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-14.jpg",
	"iPhone 14 Plus":    "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-14-plus.jpg",
	"iPhone 14 Pro":     "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-14-pro.jpg",
	"iPhone 14 Pro Max": "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-14-pro-max.jpg",
	"iPhone 15":         "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-15.jpg",
	"iPhone 15 Plus":    "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-15-plus-.jpg",
	"iPhone 15 Pro":     "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-15-pro.jpg",
	"iPhone 15 Pro Max": "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-15-pro-max.jpg",
	"iPhone 16":         "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-16.jpg",
	"iPhone 16 Plus":    "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-16-plus.jpg",
	"iPhone 16 Pro":     "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-16-pro.jpg",
	"iPhone 16 Pro Max": "https://fdn2.gsmarena.com/vv/bigpic/apple-iphone-16-pro-max.jpg",
	"iPhone 17":         "https://placehold.co/600x600?text=iPhone+17",
	"iPhone 17 Pro":     "https://placehold.co/600x600?text=iPhone+17+Pro",
	"iPhone 17 Pro Max": "https://placehold.co/600x600?text=iPhone+17+Pro+Max",
}

// Older models are financed on weekly plans only.
var weeklyOnlyModels = map[string]struct{}{
	"iPhone XR":         {},
	"iPhone XS":         {},
	"iPhone XS Max":     {},
	"iPhone 11":         {},
	"iPhone 11 Pro":     {},
	"iPhone 11 Pro Max": {},
}

// Oldest and newest models carry a higher down payment.
var sixtyPercentDownModels = map[string]struct{}{
	"iPhone XR":         {},
	"iPhone XS":         {},
	"iPhone XS Max":     {},
	"iPhone 17":         {},
	"iPhone 17 Pro":     {},
	"iPhone 17 Pro Max": {},
}

var (
	standardDownRate = decimal.RequireFromString("0.4")
	elevatedDownRate = decimal.RequireFromString("0.6")
)

// IsSupported reports whether the phone model can be financed
func IsSupported(model string) bool {
	_, ok := phoneImageURLs[model]
	return ok
}

// ImageURL returns the stock image for a supported model
func ImageURL(model string) string {
	return phoneImageURLs[model]
}

// IsWeeklyOnly reports whether the model must be billed weekly
func IsWeeklyOnly(model string) bool {
	_, ok := weeklyOnlyModels[model]
	return ok
}

// DownPaymentRate returns the fraction of the phone price collected up front
func DownPaymentRate(model string) decimal.Decimal {
	if _, ok := sixtyPercentDownModels[model]; ok {
		return elevatedDownRate
	}
	return standardDownRate
}

// Models returns every supported model name
func Models() []string {
	names := make([]string, 0, len(phoneImageURLs))
	for name := range phoneImageURLs {
		names = append(names, name)
	}
	return names
}
