package models

// Institute is one of the fixed IFTO campuses a team can represent.
type Institute string

// Institutes is the closed 11-entry campus list consumed by validation,
// the registration flow and the admin filters.
var Institutes = []Institute{
	"IFTO Campus Araguaína",
	"IFTO Campus Araguatins",
	"IFTO Campus Colinas do Tocantins",
	"IFTO Campus Dianópolis",
	"IFTO Campus Gurupi",
	"IFTO Campus Palmas",
	"IFTO Campus Paraíso do Tocantins",
	"IFTO Campus Porto Nacional",
	"IFTO Campus Avançado Formoso do Araguaia",
	"IFTO Campus Avançado Lagoa da Confusão",
	"IFTO Campus Avançado Pedro Afonso",
}

// Valid reports whether i is one of the known campuses.
func (i Institute) Valid() bool {
	for _, known := range Institutes {
		if i == known {
			return true
		}
	}
	return false
}
