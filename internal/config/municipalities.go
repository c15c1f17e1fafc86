package config

// DefaultMunicipalities is the feed filter allow-list used when MUNICIPALITIES
// is not set: district capitals plus the autonomous region capitals.
var DefaultMunicipalities = []string{
	"Aveiro",
	"Beja",
	"Braga",
	"Bragança",
	"Castelo Branco",
	"Coimbra",
	"Évora",
	"Faro",
	"Guarda",
	"Leiria",
	"Lisboa",
	"Portalegre",
	"Porto",
	"Santarém",
	"Setúbal",
	"Viana do Castelo",
	"Vila Real",
	"Viseu",
	"Funchal",
	"Ponta Delgada",
	"Angra do Heroísmo",
}
