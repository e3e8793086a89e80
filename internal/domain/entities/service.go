package entities

// Service catalog with prices in colones.
//
// The catalog is fixed at build time. Prices are copied onto the reservation
// at creation; later catalog edits never touch existing records.
var serviceCatalog = map[string]int{
	"Corte de cabello": 5000,
	"Corte + barba":    7000,
	"Solo barba":       5000,
	"Solo cejas":       2000,
}

// PriceForService returns the catalog price for a servicio.
//
// Unknown services price at zero instead of being rejected. The legacy app
// behaved this way and downstream reporting depends on those zero-priced rows.
func PriceForService(servicio string) int {
	return serviceCatalog[servicio]
}

// KnownService reports whether servicio is part of the catalog.
func KnownService(servicio string) bool {
	_, ok := serviceCatalog[servicio]
	return ok
}

// Services returns a copy of the catalog for presentation.
func Services() map[string]int {
	out := make(map[string]int, len(serviceCatalog))
	for k, v := range serviceCatalog {
		out[k] = v
	}
	return out
}
