package providers

import "dealscout/internal/models"

// Fixture catalog backing the mock providers. This plays the role a seeded
// database would in a real deployment: a stable pool of products the demo
// and the tests can search against.

var catalog = []models.Product{
	{ID: "ab-flux-lite", Title: "AuraBeat Flux Lite", Category: "audio", Features: []string{"wireless", "bluetooth", "earbuds"}},
	{ID: "ab-flux-pro", Title: "AuraBeat Flux Pro", Category: "audio", Features: []string{"wireless", "noise_cancelling", "bluetooth", "earbuds", "waterproof"}},
	{ID: "hx-breeze-pure", Title: "Helix Breeze Pure", Category: "home", Features: []string{"air_purifier", "hepa", "quiet"}},
	{ID: "hx-glide-360", Title: "Helix Glide 360", Category: "home", Features: []string{"robot", "vacuum", "mapping", "mopping"}},
	{ID: "km-pulse-buds", Title: "Kimura Pulse Buds", Category: "audio", Features: []string{"wireless", "bluetooth", "earbuds", "noise_cancelling"}},
	{ID: "km-tab-8", Title: "Kimura Tab 8", Category: "computers", Features: []string{"tablet", "lightweight"}},
	{ID: "nb-aero-14", Title: "Northbyte Aero 14", Category: "computers", Features: []string{"laptop", "lightweight", "long_battery", "usb_c"}},
	{ID: "nb-slate-10", Title: "Northbyte Slate 10", Category: "computers", Features: []string{"tablet", "stylus", "lightweight"}},
	{ID: "nc-robovac-s5", Title: "NimbusClean RoboVac S5", Category: "home", Features: []string{"robot", "vacuum", "pet"}},
	{ID: "nc-robovac-s8", Title: "NimbusClean RoboVac S8", Category: "home", Features: []string{"robot", "vacuum", "pet", "mapping", "self_empty"}},
	{ID: "om-arc-32", Title: "OmniMax Arc 32", Category: "monitors", Features: []string{"4k", "curved", "hdr"}},
	{ID: "pv-core-24", Title: "PixelView Core 24", Category: "monitors", Features: []string{"ips", "thin_bezel"}},
	{ID: "pv-ultra-27", Title: "PixelView Ultra 27", Category: "monitors", Features: []string{"4k", "ips", "wide_gamut", "usb_c"}},
	{ID: "sn-quietmax-700", Title: "Sonara QuietMax 700", Category: "audio", Features: []string{"wireless", "noise_cancelling", "bluetooth", "over_ear", "long_battery"}},
	{ID: "sn-tune-300", Title: "Sonara Tune 300", Category: "audio", Features: []string{"wireless", "bluetooth", "over_ear"}},
	{ID: "vx-studio-one", Title: "Vexa Studio One", Category: "audio", Features: []string{"noise_cancelling", "wired", "over_ear", "studio"}},
}

// basePrices anchor the mock retailer quotes, in USD.
var basePrices = map[string]float64{
	"ab-flux-lite":    59.99,
	"ab-flux-pro":     149.50,
	"hx-breeze-pure":  139.00,
	"hx-glide-360":    279.99,
	"km-pulse-buds":   119.00,
	"km-tab-8":        229.00,
	"nb-aero-14":      999.00,
	"nb-slate-10":     449.00,
	"nc-robovac-s5":   229.00,
	"nc-robovac-s8":   329.00,
	"om-arc-32":       449.00,
	"pv-core-24":      129.00,
	"pv-ultra-27":     379.00,
	"sn-quietmax-700": 189.99,
	"sn-tune-300":     89.99,
	"vx-studio-one":   249.00,
}

// Catalog returns a copy of the fixture product pool.
func Catalog() []models.Product {
	out := make([]models.Product, len(catalog))
	for i, p := range catalog {
		out[i] = p
		out[i].Features = append([]string(nil), p.Features...)
	}
	return out
}
