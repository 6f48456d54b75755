package sqlite

import "ghost-flight/internal/models"

// DefaultAirports is the ICAO table loaded into a fresh database.
var DefaultAirports = []models.Airport{
	{Code: "MMMX", Name: "Ciudad de México - AICM", Lat: 19.4361, Lon: -99.0719},
	{Code: "MMGL", Name: "Guadalajara", Lat: 20.5218, Lon: -103.3104},
	{Code: "MMUN", Name: "Monterrey", Lat: 25.9066, Lon: -97.4251},
	{Code: "MMMY", Name: "Cancún", Lat: 21.0365, Lon: -86.8771},
	{Code: "MMQT", Name: "Chetumal", Lat: 19.8517, Lon: -90.5131},
	{Code: "MMCB", Name: "Chetumal (alternativo)", Lat: 18.5042, Lon: -88.3267},
	{Code: "MMTO", Name: "Toluca", Lat: 20.5833, Lon: -100.3833},
	{Code: "MMHO", Name: "Huatulco", Lat: 16.8517, Lon: -99.8233},
	{Code: "MMPR", Name: "Palenque", Lat: 17.9897, Lon: -92.9361},
	{Code: "MMSP", Name: "Tapachula", Lat: 16.5805, Lon: -93.0538},
	{Code: "MMMD", Name: "Ciudad Victoria", Lat: 25.7833, Lon: -100.1},
	{Code: "MMMT", Name: "Mazatlán", Lat: 24.5611, Lon: -104.5911},
	{Code: "MMES", Name: "Aguascalientes", Lat: 20.7036, Lon: -103.3531},
	{Code: "MMLO", Name: "Loreto", Lat: 18.1122, Lon: -96.8728},
	{Code: "MMZL", Name: "Zamora", Lat: 19.9847, Lon: -102.2833},
	{Code: "MMCS", Name: "Colima", Lat: 20.6533, Lon: -103.325},
	{Code: "MMVA", Name: "Valle de Bravo", Lat: 18.7758, Lon: -99.1017},
	{Code: "MMOX", Name: "Oaxaca", Lat: 17.0667, Lon: -96.7167},
	{Code: "MMSD", Name: "Mérida", Lat: 20.9167, Lon: -89.6167},
	{Code: "MMTB", Name: "Tapachula (Base)", Lat: 16.7567, Lon: -93.1294},
	{Code: "MMZC", Name: "Cozumel", Lat: 21.0333, Lon: -86.8667},
	{Code: "MMTM", Name: "Tapachula (Alterno)", Lat: 16.75, Lon: -93.1167},
	{Code: "MMTX", Name: "Tuxtepec", Lat: 18.45, Lon: -95.2333},
	{Code: "MMAN", Name: "San Luis Potosí", Lat: 19.0833, Lon: -98.2833},
	{Code: "MMBJ", Name: "Bajío", Lat: 19.3333, Lon: -99.15},
}

// DefaultZones are the restricted areas loaded into a fresh database.
var DefaultZones = []models.RestrictedZone{
	{Name: "Palacio Nacional", Lat: 19.4326, Lon: -99.1332, RadiusKm: 3},
	{Name: "Campo Militar 1", Lat: 19.4517, Lon: -99.2390, RadiusKm: 5},
	{Name: "Base Aérea Santa Lucía", Lat: 19.7458, Lon: -99.0158, RadiusKm: 15},
	{Name: "Laguna Verde", Lat: 19.7206, Lon: -96.4064, RadiusKm: 10},
}
