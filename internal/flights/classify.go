package flights

import "strings"

// Flight classification tags
const (
	TypeCargo      = "carga"
	TypeCommercial = "comercial"
	TypeUnknown    = "desconocido"
)

// cargoPrefixes are ICAO airline designators of cargo operators
var cargoPrefixes = map[string]bool{
	"FDX": true, // FedEx
	"UPS": true,
	"DHL": true,
	"DAE": true, // DHL Aero Expreso
	"AMX": true,
	"GTI": true, // Atlas Air
	"CLX": true, // Cargolux
	"ABX": true,
	"CKS": true, // Kalitta
	"MAA": true, // MasAir
	"TPA": true,
}

// Classify tags a flight by its callsign prefix
func Classify(callsign string) string {
	cs := strings.ToUpper(strings.TrimSpace(callsign))
	if cs == "" || cs == "N/A" {
		return TypeUnknown
	}
	if len(cs) >= 3 && cargoPrefixes[cs[:3]] {
		return TypeCargo
	}
	return TypeCommercial
}
